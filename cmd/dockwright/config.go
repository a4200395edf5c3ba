// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dockwright/dockwright/internal/config"
)

// newConfigCommand creates the `dockwright config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, opts *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dockwright configuration",
		Long: `Manage dockwright configuration.

Configuration is stored in:
  - Linux: ~/.config/dockwright/config.cue
  - macOS: ~/Library/Application Support/dockwright/config.cue
  - Windows: %APPDATA%\dockwright\config.cue

A config.cue in the working directory is used when the user file is absent.
Environment variables override file values: DOCKWRIGHT_OUTPUT=json,
DOCKWRIGHT_TIMEOUTS_BUILD=1200.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := app.loadConfigWithPath(cmd.Context(), *opts)
			if err != nil {
				if opts.verbose {
					renderIssue(app.stderr, issueFor(err), config.ColorSchemeAuto)
				}
				return err
			}

			if source == "" {
				source = SubtitleStyle.Render("(using defaults)")
			}
			fmt.Fprintf(app.stderr, "%s: %s\n", CmdStyle.Render("Config file"), source)
			return config.Render(app.stdout, cfg, strings.ToLower(format))
		},
	}
	showCmd.Flags().StringVar(&format, "format", config.RenderCUE,
		"output format: "+strings.Join(config.RenderFormats(), ", "))
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Config file already exists: %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created config file: %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				fmt.Fprintln(app.stdout, opts.configPath)
				return nil
			}
			path, err := config.ConfigPath("")
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}
