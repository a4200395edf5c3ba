// SPDX-License-Identifier: MPL-2.0

package response

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/issue"
	"github.com/dockwright/dockwright/internal/operation"
)

type (
	// Clock is the time source used to stamp envelopes.
	Clock interface {
		Now() time.Time
	}

	// Formatter builds envelopes. It holds no per-call state and is safe for
	// concurrent use.
	Formatter struct {
		clock Clock
		getwd func() (string, error)
		hint  func(fault.Kind) string
	}

	// FormatterOption configures a Formatter.
	FormatterOption func(*Formatter)

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// WithClock overrides the time source.
func WithClock(c Clock) FormatterOption {
	return func(f *Formatter) {
		f.clock = c
	}
}

// WithWorkingDir overrides how the working directory is read.
func WithWorkingDir(getwd func() (string, error)) FormatterOption {
	return func(f *Formatter) {
		f.getwd = getwd
	}
}

// WithHints overrides the per-kind hint lookup. A nil function disables hints.
func WithHints(hint func(fault.Kind) string) FormatterOption {
	return func(f *Formatter) {
		f.hint = hint
	}
}

// NewFormatter creates a Formatter using the system clock, os.Getwd and the
// issue catalog hints.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		clock: systemClock{},
		getwd: os.Getwd,
		hint:  issue.HintFor,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Success wraps the stdout of a finished command.
func (f *Formatter) Success(def *operation.Definition, p operation.Params, res container.Result, started time.Time) Envelope {
	return f.envelope(string(def.Name), SuccessContent(def, p, res.Stdout), false, started)
}

// Failure wraps an error. Errors outside the taxonomy are reported as CommandFailed.
func (f *Formatter) Failure(op string, err error, started time.Time) Envelope {
	return f.envelope(op, f.FailureContent(err), true, started)
}

// Text wraps content that was not produced by a command, e.g. a dry-run listing
// or the combined output of a workflow.
func (f *Formatter) Text(op, content string, isError bool, started time.Time) Envelope {
	return f.envelope(op, content, isError, started)
}

// SuccessContent returns the success text for an operation: its rendering of
// stdout, the trimmed stdout, or a completion message when there is no output.
func SuccessContent(def *operation.Definition, p operation.Params, stdout string) string {
	if def.Render != nil {
		if out := def.Render(p, stdout); out != "" {
			return out
		}
	}
	if out := strings.TrimSpace(stdout); out != "" {
		return strings.TrimRight(stdout, " \t\r\n")
	}
	if def.Done != "" {
		return def.Done
	}
	return fmt.Sprintf("%s completed successfully", def.Name)
}

// FailureContent returns "<Kind>: <message>", then the hint for the kind, then the
// raw stderr when it differs from the message.
func (f *Formatter) FailureContent(err error) string {
	fe := fault.As(err)
	if fe == nil {
		fe = fault.New(fault.CommandFailed, "unknown error")
	}
	var sb strings.Builder
	sb.WriteString(string(fe.Kind))
	sb.WriteString(": ")
	sb.WriteString(fe.Message)
	if f.hint != nil {
		if h := f.hint(fe.Kind); h != "" {
			sb.WriteString("\nHint: ")
			sb.WriteString(h)
		}
	}
	if stderr := strings.TrimSpace(fe.Stderr); stderr != "" && stderr != fe.Message {
		sb.WriteString("\n\n")
		sb.WriteString(stderr)
	}
	return sb.String()
}

func (f *Formatter) envelope(op, content string, isError bool, started time.Time) Envelope {
	now := f.clock.Now()
	elapsed := now.Sub(started)
	if started.IsZero() || elapsed < 0 {
		elapsed = 0
	}
	wd, err := f.getwd()
	if err != nil {
		slog.Debug("cannot read working directory", "error", err)
		wd = ""
	}
	return Envelope{
		Content: content,
		IsError: isError,
		Metadata: Metadata{
			Operation:        op,
			Duration:         elapsed.Milliseconds(),
			Timestamp:        now,
			WorkingDirectory: wd,
		},
	}
}
