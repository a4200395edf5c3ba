// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/issue"
)

type (
	// linkResult counts what a link run did.
	linkResult struct {
		created  []string
		existing []string
		skipped  []string
	}
)

// newLinkCommand creates the `dockwright link` command.
func newLinkCommand(app *App, opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "link <dir>",
		Short: "Create alias symlinks so aliases run as standalone commands",
		Long: `Create one symlink per alias and workflow in <dir>, each pointing at the
dockwright executable. Invoked through a link, dockwright runs the alias named
by the link:

  dockwright link ~/.local/bin
  dps            # same as 'dockwright dps'

Existing files are left alone unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate executable: %w", err)
			}
			if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
				exe = resolved
			}

			res, err := linkAliases(args[0], exe, s.table.Aliases(), force)
			if err != nil {
				return err
			}

			for _, name := range res.skipped {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Skipped ")+CmdStyle.Render(name)+SubtitleStyle.Render(" (file exists, use --force to replace)"))
			}
			fmt.Fprintf(app.stdout, "%s Linked %d aliases into %s (%d already present)\n",
				SuccessStyle.Render("✓"), len(res.created), args[0], len(res.existing))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace existing files")
	return cmd
}

// linkAliases creates dir/<alias> -> exe for every entry. A link already pointing
// at exe is left as is; other files are replaced only with force.
func linkAliases(dir, exe string, entries []*alias.Entry, force bool) (linkResult, error) {
	var res linkResult

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, linkError(dir, err)
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Alias)

		info, err := os.Lstat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return res, linkError(path, err)
		case info.Mode()&fs.ModeSymlink != 0 && pointsTo(path, exe):
			res.existing = append(res.existing, e.Alias)
			continue
		case info.IsDir():
			res.skipped = append(res.skipped, e.Alias)
			continue
		case !force:
			res.skipped = append(res.skipped, e.Alias)
			continue
		default:
			if err := os.Remove(path); err != nil {
				return res, linkError(path, err)
			}
		}

		if err := os.Symlink(exe, path); err != nil {
			return res, linkError(path, err)
		}
		res.created = append(res.created, e.Alias)
	}
	return res, nil
}

func pointsTo(link, exe string) bool {
	dest, err := os.Readlink(link)
	return err == nil && dest == exe
}

func linkError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("create alias link").
		WithResource(path).
		WithSuggestion("Check that the directory is writable").
		WithSuggestion("On Windows, creating symlinks requires Developer Mode or an elevated shell").
		Wrap(err).
		BuildError()
}
