// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/normalize"
	"github.com/dockwright/dockwright/internal/operation"
	"github.com/dockwright/dockwright/internal/response"
)

const (
	// ExitSuccess is returned when every command succeeded.
	ExitSuccess = 0
	// ExitValidation is returned for errors detected before any command ran.
	ExitValidation = 1
	// ExitTimeout is returned when a command was terminated at its deadline.
	ExitTimeout = 124
)

type (
	// Runner executes command specs. *container.Executor is the production runner.
	Runner interface {
		Execute(ctx context.Context, spec container.Spec) (container.Result, error)
	}

	// Dispatcher runs table entries through the pipeline. It is safe for concurrent
	// use; each call owns its subprocess and buffers.
	Dispatcher struct {
		table     *alias.Table
		builder   *container.Builder
		runner    Runner
		formatter *response.Formatter
		clock     response.Clock
		logger    *slog.Logger
		dryRun    bool
	}

	// Option configures a Dispatcher.
	Option func(*Dispatcher)

	// Outcome is the result of one dispatch.
	Outcome struct {
		// Envelope is the caller-facing result.
		Envelope response.Envelope
		// ExitCode is the process exit code for CLI callers.
		ExitCode int
		// FailedStep is the 1-based index of the failed workflow step, or 0.
		FailedStep int
		// Err is the failure, or normalize.ErrHelp when usage was requested.
		Err error
	}

	wallClock struct{}
)

func (wallClock) Now() time.Time { return time.Now() }

// WithDryRun makes the dispatcher render command lines instead of executing them.
func WithDryRun(enabled bool) Option {
	return func(d *Dispatcher) {
		d.dryRun = enabled
	}
}

// WithClock overrides the time source used for call start times.
func WithClock(c response.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// New creates a Dispatcher.
func New(table *alias.Table, builder *container.Builder, runner Runner, formatter *response.Formatter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:     table,
		builder:   builder,
		runner:    runner,
		formatter: formatter,
		clock:     wallClock{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the dispatch table.
func (d *Dispatcher) Table() *alias.Table {
	return d.table
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fe := fault.As(err)
	switch {
	case fe.Kind.IsValidation():
		return ExitValidation
	case fe.Kind == fault.Timeout:
		return ExitTimeout
	case fe.ExitCode > 0:
		return fe.ExitCode
	default:
		return ExitValidation
	}
}

// Run resolves name, normalizes in and runs the resulting operation or workflow.
func (d *Dispatcher) Run(ctx context.Context, name string, in normalize.Input) Outcome {
	started := d.clock.Now()

	e, err := d.table.Resolve(name)
	if err != nil {
		return d.fail(name, err, started)
	}
	def := d.table.Definition(e)
	p, err := normalize.Normalize(def, in, e.FixedParams())
	if errors.Is(err, normalize.ErrHelp) {
		return Outcome{Envelope: d.formatter.Text(name, Usage(d.table, e), false, started), Err: err}
	}
	if err != nil {
		return d.fail(string(def.Name), err, started)
	}
	d.logger.Debug("dispatch", "name", name, "operation", def.Name, "workflow", e.IsWorkflow())

	if e.IsWorkflow() {
		return d.runWorkflow(ctx, e, p, started)
	}

	spec, err := d.builder.Build(def, p)
	if err != nil {
		return d.fail(string(def.Name), err, started)
	}
	if d.dryRun {
		return Outcome{Envelope: d.formatter.Text(string(def.Name), spec.String(), false, started)}
	}
	res, err := d.runner.Execute(ctx, spec)
	if err != nil {
		return d.fail(string(def.Name), err, started)
	}
	return Outcome{Envelope: d.formatter.Success(def, p, res, started)}
}

func (d *Dispatcher) runWorkflow(ctx context.Context, e *alias.Entry, p operation.Params, started time.Time) Outcome {
	n := len(e.Steps)
	contents := make([]string, 0, n)
	for i, step := range e.Steps {
		def, _ := d.table.Operation(step.Operation)
		content, err := d.runStep(ctx, def, step.Source(p))
		if err != nil {
			d.logger.Warn("workflow step failed", "workflow", e.Alias, "step", i+1, "operation", step.Operation)
			header := fmt.Sprintf("step %d/%d (%s) failed", i+1, n, step.Operation)
			if i > 0 {
				header += fmt.Sprintf("; %d earlier step(s) were kept", i)
			}
			env := d.formatter.Text(e.Alias, header+"\n"+d.formatter.FailureContent(err), true, started)
			return Outcome{Envelope: env, ExitCode: ExitCode(err), FailedStep: i + 1, Err: err}
		}
		contents = append(contents, fmt.Sprintf("[%d/%d] %s: %s", i+1, n, step.Operation, content))
	}
	return Outcome{Envelope: d.formatter.Text(e.Alias, strings.Join(contents, "\n"), false, started)}
}

// runStep normalizes, builds and executes one workflow step and returns its success
// content.
func (d *Dispatcher) runStep(ctx context.Context, def *operation.Definition, input map[string]any) (string, error) {
	p, err := normalize.Normalize(def, normalize.Object(input), nil)
	if err != nil {
		return "", err
	}
	spec, err := d.builder.Build(def, p)
	if err != nil {
		return "", err
	}
	if d.dryRun {
		return spec.String(), nil
	}
	res, err := d.runner.Execute(ctx, spec)
	if err != nil {
		return "", err
	}
	return response.SuccessContent(def, p, res.Stdout), nil
}

// Reject formats an error raised outside the pipeline, e.g. undecodable protocol
// arguments, as a failed outcome.
func (d *Dispatcher) Reject(name string, err error) Outcome {
	return d.fail(name, err, d.clock.Now())
}

func (d *Dispatcher) fail(op string, err error, started time.Time) Outcome {
	return Outcome{
		Envelope: d.formatter.Failure(op, err, started),
		ExitCode: ExitCode(err),
		Err:      err,
	}
}
