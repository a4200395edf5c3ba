// SPDX-License-Identifier: MPL-2.0

package container

import (
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Spec is a fully resolved invocation of the engine CLI. Argv[0] is the binary;
	// every element reaches the subprocess as one argument. A Spec is built fresh for
	// each call and never modified afterwards.
	Spec struct {
		// Argv is the binary followed by its arguments.
		Argv []string
		// Timeout bounds the subprocess runtime.
		Timeout time.Duration
		// Label names the operation for logs and envelopes.
		Label string
		// Stdin is written to the subprocess and closed. Only login uses it.
		Stdin string
		// RequiresDaemon triggers the liveness probe before execution.
		RequiresDaemon bool
	}

	// Result is the captured outcome of a successful (exit code zero) execution.
	Result struct {
		Stdout   string
		Stderr   string
		ExitCode int
		Duration time.Duration
	}
)

// String renders the argv as a shell-quoted line for display. Stdin content is never
// shown. The result is informational only; Specs are always executed without a shell.
func (s Spec) String() string {
	parts := make([]string, 0, len(s.Argv))
	for _, a := range s.Argv {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			// Only NUL bytes are unquotable.
			q = strings.ReplaceAll(a, "\x00", `\x00`)
		}
		parts = append(parts, q)
	}
	line := strings.Join(parts, " ")
	if s.Stdin != "" {
		line += " <<< '***'"
	}
	return line
}
