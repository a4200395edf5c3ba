// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dockwright/dockwright/internal/fault"
)

const (
	// exitNotFound is the conventional exit code when the executable is missing.
	exitNotFound = 127

	defaultWaitDelay = 2 * time.Second
)

// localeEnv pins engine output to untranslated messages so classification works.
var localeEnv = []string{"LC_ALL=C", "LANG=C"}

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// ExecutorOption configures an Executor.
	ExecutorOption func(*Executor)

	// Executor runs Specs as subprocesses. It holds no per-call state and is safe
	// for concurrent use.
	Executor struct {
		execCommand  ExecCommandFunc
		docker       string
		allowed      []string
		probeTimeout time.Duration
		waitDelay    time.Duration
		logger       *slog.Logger
		newID        func() string
	}
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) ExecutorOption {
	return func(e *Executor) {
		e.execCommand = fn
	}
}

// WithProbeBinary sets the docker executable used for the liveness probe. It is
// always allowed.
func WithProbeBinary(name string) ExecutorOption {
	return func(e *Executor) {
		if name != "" {
			e.docker = name
		}
	}
}

// WithAllowedBinaries replaces the set of executables a Spec may name as argv[0].
func WithAllowedBinaries(names ...string) ExecutorOption {
	return func(e *Executor) {
		e.allowed = slices.Clone(names)
	}
}

// WithProbeTimeout sets the liveness probe deadline.
func WithProbeTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.probeTimeout = d
		}
	}
}

// WithWaitDelay bounds how long I/O may linger after a timed-out process is killed.
func WithWaitDelay(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.waitDelay = d
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithInvocationIDs sets the invocation id generator used in logs.
func WithInvocationIDs(fn func() string) ExecutorOption {
	return func(e *Executor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewExecutor creates an Executor allowing docker and docker-compose.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		execCommand:  exec.CommandContext,
		docker:       DefaultDockerBinary,
		allowed:      []string{DefaultDockerBinary, DefaultComposeBinary},
		probeTimeout: DefaultTimeouts().Probe,
		waitDelay:    defaultWaitDelay,
		logger:       slog.Default(),
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Allowed reports whether name may be executed.
func (e *Executor) Allowed(name string) bool {
	return name == e.docker || slices.Contains(e.allowed, name)
}

// Execute runs spec. A nil error means the process exited with code zero; every
// failure is a *fault.Error. Nothing is retried.
func (e *Executor) Execute(ctx context.Context, spec Spec) (Result, error) {
	log := e.logger.With("op", spec.Label, "invocation", e.newID())
	started := time.Now()

	if len(spec.Argv) == 0 || !e.Allowed(spec.Argv[0]) {
		bin := ""
		if len(spec.Argv) > 0 {
			bin = spec.Argv[0]
		}
		err := fault.New(fault.CommandFailed, "binary %q is not allowed", bin)
		log.Warn("command rejected", "binary", bin)
		return Result{}, err
	}

	if spec.RequiresDaemon {
		if err := e.Probe(ctx); err != nil {
			log.Warn("daemon probe failed", "duration", time.Since(started), "error", err)
			return Result{}, err
		}
	}

	res, err := e.run(ctx, spec.Argv, spec.Stdin, spec.Timeout)
	if err != nil {
		fe := fault.As(err)
		log.Warn("command failed",
			"duration", res.Duration, "outcome", fe.Kind.String(), "exit_code", fe.ExitCode)
		return res, err
	}
	log.Info("command finished", "duration", res.Duration, "outcome", "ok", "exit_code", res.ExitCode)
	return res, nil
}

// Probe checks that the engine daemon answers "docker version" within the probe
// timeout. Failures are DaemonUnavailable.
func (e *Executor) Probe(ctx context.Context) error {
	argv := []string{e.docker, "version", "--format", "{{.Server.Version}}"}
	res, err := e.run(ctx, argv, "", e.probeTimeout)
	if err == nil && strings.TrimSpace(res.Stdout) != "" {
		return nil
	}

	fe := &fault.Error{
		Kind:     fault.DaemonUnavailable,
		Message:  "container engine daemon is not reachable",
		ExitCode: 1,
		Cause:    err,
	}
	if cause := fault.As(err); cause != nil {
		fe.Stderr = cause.Stderr
		if cause.ExitCode > 0 {
			fe.ExitCode = cause.ExitCode
		}
		if cause.Kind == fault.Timeout {
			fe.Message = fmt.Sprintf("container engine daemon did not answer within %s", e.probeTimeout)
		}
	}
	return fe
}

func (e *Executor) run(ctx context.Context, argv []string, stdin string, timeout time.Duration) (Result, error) {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := e.execCommand(runCtx, argv[0], argv[1:]...)
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = append(env, localeEnv...)
	cmd.WaitDelay = e.waitDelay
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}
	if err == nil {
		return res, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		return res, &fault.Error{
			Kind:     fault.Timeout,
			Message:  fmt.Sprintf("command timed out after %s and was terminated", timeout),
			Stderr:   res.Stderr,
			ExitCode: -1,
			Cause:    err,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		fe := Classify(res.Stderr, res.ExitCode)
		fe.Cause = err
		return res, fe
	}

	code := 1
	if errors.Is(err, exec.ErrNotFound) {
		code = exitNotFound
	}
	res.ExitCode = code
	return res, &fault.Error{
		Kind:     fault.CommandFailed,
		Message:  err.Error(),
		ExitCode: code,
		Cause:    err,
	}
}
