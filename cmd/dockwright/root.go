// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/issue"
)

const (
	groupOperations = "operations"
	groupAliases    = "aliases"
	groupWorkflows  = "workflows"

	flagConfig  = "dw-config"
	flagOutput  = "dw-output"
	flagDryRun  = "dw-dry-run"
	flagVerbose = "dw-verbose"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree. Table entries become subcommands.
func newRootCommand(app *App, table *alias.Table, opts *globalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Run container-engine commands through short aliases",
		Long: TitleStyle.Render("dockwright") + SubtitleStyle.Render(" - container-engine commands as aliases and MCP tools") + `

dockwright validates every parameter before the engine runs, builds a single
argv without a shell, enforces per-class timeouts, and reports results as
an envelope of content and metadata.

` + SubtitleStyle.Render("Examples:") + `
  dockwright dps                    List running containers
  dockwright dstop -t 0 web         Stop a container immediately
  dockwright dbr -t app:dev -p 8080:80
                                    Build an image, then run it
  dockwright --dw-output json dps   Print the result envelope as JSON
  dockwright serve                  Serve every command as an MCP tool
  dockwright link ~/.local/bin      Call aliases directly (dps, dpsa, ...)`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, flagConfig, "", "config file (default is $XDG_CONFIG_HOME/dockwright/config.cue)")
	root.PersistentFlags().StringVar(&opts.output, flagOutput, "", "result encoding: text, json or yaml (default from config)")
	root.PersistentFlags().BoolVar(&opts.dryRun, flagDryRun, false, "print the engine command instead of running it")
	root.PersistentFlags().BoolVar(&opts.verbose, flagVerbose, false, "enable debug logging and detailed error help")

	root.AddGroup(
		&cobra.Group{ID: groupAliases, Title: "Aliases:"},
		&cobra.Group{ID: groupWorkflows, Title: "Workflows:"},
		&cobra.Group{ID: groupOperations, Title: "Operations:"},
	)
	for _, e := range table.Entries() {
		root.AddCommand(newEntryCommand(app, table, e, opts))
	}

	root.AddCommand(newServeCommand(app, opts))
	root.AddCommand(newAliasesCommand(app, opts))
	root.AddCommand(newLinkCommand(app, opts))
	root.AddCommand(newConfigCommand(app, opts))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process arguments and exits with the command's
// exit code.
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(context.Background(), app, os.Args); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// run executes argv (argv[0] included). When argv[0] names a table entry, as it does
// through a link created by `dockwright link`, that entry runs directly.
func run(ctx context.Context, app *App, argv []string) error {
	args := argv[1:]

	// --dw-config must be known before the command tree exists
	pre, _, _ := splitGlobalFlags(globalOptions{}, args)
	table := app.commandTable(ctx, pre)

	if name := invokedAs(argv[0]); name != config.AppName {
		if _, err := table.Resolve(name); err == nil {
			args = append([]string{name}, args...)
		}
	}

	opts := &globalOptions{}
	root := newRootCommand(app, table, opts)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	return fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
}

// handleError prints errors that were not already reported as an envelope.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// invokedAs returns the program name without directory and Windows extension.
func invokedAs(arg0 string) string {
	return strings.TrimSuffix(filepath.Base(arg0), ".exe")
}

// splitGlobalFlags removes --dw-* flags from a raw token list. Entry commands
// receive every token unparsed, so their global flags are extracted here. Tokens
// after "--" are left untouched.
func splitGlobalFlags(base globalOptions, args []string) (globalOptions, []string, error) {
	opts := base
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "--dw-") {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch name {
		case flagDryRun, flagVerbose:
			b := true
			if hasValue {
				switch value {
				case "true", "1":
				case "false", "0":
					b = false
				default:
					return opts, nil, fmt.Errorf("invalid value %q for --%s", value, name)
				}
			}
			if name == flagDryRun {
				opts.dryRun = b
			} else {
				opts.verbose = b
			}
		case flagConfig, flagOutput:
			if !hasValue {
				if i+1 >= len(args) {
					return opts, nil, fmt.Errorf("flag needs an argument: --%s", name)
				}
				i++
				value = args[i]
			}
			if name == flagConfig {
				opts.configPath = value
			} else {
				opts.output = value
			}
		default:
			return opts, nil, fmt.Errorf("unknown flag: --%s", name)
		}
	}
	return opts, rest, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
