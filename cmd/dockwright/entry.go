// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/dispatch"
	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/issue"
	"github.com/dockwright/dockwright/internal/normalize"
	"github.com/dockwright/dockwright/internal/operation"
	"github.com/dockwright/dockwright/internal/response"
)

// newEntryCommand creates the subcommand for one table entry. Flag parsing is left
// to the normalizer so that unknown tokens and passthrough arguments behave the
// same for the CLI and the MCP surface.
func newEntryCommand(app *App, table *alias.Table, e *alias.Entry, opts *globalOptions) *cobra.Command {
	groupID := groupAliases
	switch {
	case e.IsWorkflow():
		groupID = groupWorkflows
	case e.IsOperation():
		groupID = groupOperations
	}

	name := e.Alias
	def := table.Definition(e)
	cmd := &cobra.Command{
		Use:                name,
		Short:              e.Summary,
		Long:               dispatch.Usage(table, e),
		GroupID:            groupID,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntry(cmd, app, name, *opts, splitEntryArgs(def, args))
		},
	}
	return cmd
}

// entryArgs is the raw token list of one entry command. Global flags are only
// recognized in head; tail is the passthrough command of an exec-like operation.
type entryArgs struct {
	head, tail []string
}

// splitEntryArgs cuts args where the first positional of an exec-like operation
// starts, so that "dexec web app --dw-verbose" passes --dw-verbose to app.
func splitEntryArgs(def *operation.Definition, args []string) entryArgs {
	if def == nil || def.Passthrough == "" {
		return entryArgs{head: args}
	}
	fs := normalize.FlagSet(def)
	fs.String(flagConfig, "", "")
	fs.String(flagOutput, "", "")
	fs.Bool(flagDryRun, false, "")
	fs.Bool(flagVerbose, false, "")
	if err := fs.Parse(args); err != nil {
		// The normalizer reports the bad token.
		return entryArgs{head: args}
	}
	i := len(args) - len(fs.Args())
	return entryArgs{head: args[:i], tail: args[i:]}
}

// runEntry dispatches one invocation and writes its envelope. Text output of a
// failure goes to stderr; structured encodings always go to stdout.
func runEntry(cmd *cobra.Command, app *App, name string, base globalOptions, args entryArgs) error {
	opts, rest, err := splitGlobalFlags(base, args.head)
	if err != nil {
		return err
	}
	rest = append(rest, args.tail...)

	s, err := app.newSession(cmd.Context(), opts)
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, opts.verbose))
		if opts.verbose {
			renderIssue(app.stderr, issueFor(err), config.ColorSchemeAuto)
		}
		return silentExit(cmd, dispatch.ExitValidation, err)
	}

	out := s.dispatcher.Run(cmd.Context(), name, normalize.Tokens(rest...))

	w := app.stdout
	if out.Envelope.IsError && s.format == response.FormatText {
		w = app.stderr
	}
	if err := response.Encode(w, out.Envelope, s.format); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if out.Err == nil || errors.Is(out.Err, normalize.ErrHelp) {
		return nil
	}
	if s.verbose {
		renderIssue(app.stderr, issueFor(out.Err), s.cfg.UI.ColorScheme)
	}
	return silentExit(cmd, out.ExitCode, out.Err)
}

// silentExit returns an ExitError after the failure was already reported.
func silentExit(cmd *cobra.Command, code int, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code, Err: err}
}

// issueFor returns the catalog page for an error: the page attached to an
// ActionableError, else the page of its fault kind.
func issueFor(err error) *issue.Issue {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if page := ae.Page(); page != nil {
			return page
		}
	}
	return issue.ForKind(fault.KindOf(err))
}

// renderIssue writes the catalog page for a failure. Rendering errors are ignored;
// the envelope already carries the one-line hint.
func renderIssue(w io.Writer, iss *issue.Issue, scheme config.ColorScheme) {
	if iss == nil {
		return
	}
	rendered, err := iss.Render(glamourStyle(scheme))
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}
