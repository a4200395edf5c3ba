// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/normalize"
)

// Usage renders the help text of an entry: summary, usage line, bound parameters,
// workflow steps and flags.
func Usage(table *alias.Table, e *alias.Entry) string {
	def := table.Definition(e)
	var sb strings.Builder
	sb.WriteString(e.Summary)
	sb.WriteString("\n\nUsage:\n  ")
	sb.WriteString(strings.Replace(def.Usage(), string(def.Name), e.Alias, 1))
	sb.WriteString("\n")

	if len(e.Fixed) > 0 {
		sb.WriteString("\nRuns ")
		sb.WriteString(string(e.Operation))
		sb.WriteString(" with:\n")
		for _, k := range slices.Sorted(maps.Keys(e.Fixed)) {
			fmt.Fprintf(&sb, "  %s=%v\n", k, e.Fixed[k])
		}
	} else if !e.IsWorkflow() && !e.IsOperation() {
		fmt.Fprintf(&sb, "\nAlias of %s.\n", e.Operation)
	}

	if e.IsWorkflow() {
		sb.WriteString("\nSteps (stops at the first failure):\n")
		for i, s := range e.Steps {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, s.Operation)
		}
	}

	if flags := normalize.FlagSet(def).FlagUsages(); flags != "" {
		sb.WriteString("\nFlags:\n")
		sb.WriteString(flags)
	}
	return strings.TrimRight(sb.String(), "\n")
}
