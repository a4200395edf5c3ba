// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dockwright/dockwright/internal/alias"
)

// newAliasesCommand creates the `dockwright aliases` command.
func newAliasesCommand(app *App, opts *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "List aliases and workflows",
		Long: `List aliases and workflows with the operation they run.

Aliases from the configuration file are included. Use --all to list plain
operations too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			entries := s.table.Aliases()
			if all {
				entries = s.table.Entries()
			}
			fmt.Fprintln(app.stdout, renderAliasTable(entries))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include plain operations")
	return cmd
}

// renderAliasTable renders entries as a bordered table.
func renderAliasTable(entries []*alias.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Alias, target(e), bindings(e), e.Summary})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers("NAME", "RUNS", "BINDS", "SUMMARY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableCellStyle.Foreground(ColorHighlight)
			default:
				return tableCellStyle
			}
		}).
		String()
}

// target names what an entry runs: the operation, or the workflow steps.
func target(e *alias.Entry) string {
	if !e.IsWorkflow() {
		return string(e.Operation)
	}
	steps := make([]string, 0, len(e.Steps))
	for _, s := range e.Steps {
		steps = append(steps, string(s.Operation))
	}
	return strings.Join(steps, " → ")
}

// bindings lists the alias-bound parameters as key=value pairs.
func bindings(e *alias.Entry) string {
	if len(e.Fixed) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(e.Fixed))
	for _, k := range slices.Sorted(maps.Keys(e.Fixed)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Fixed[k]))
	}
	return strings.Join(pairs, " ")
}
