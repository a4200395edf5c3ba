// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"log/slog"
	"os/exec"
	"slices"
	"sync"
	"time"
)

const (
	// DefaultDockerBinary is the docker CLI executable.
	DefaultDockerBinary = "docker"
	// DefaultComposeBinary is the standalone compose executable.
	DefaultComposeBinary = "docker-compose"

	composeProbeTimeout = 10 * time.Second
)

type (
	// ComposeResolverOption configures a ComposeResolver.
	ComposeResolverOption func(*ComposeResolver)

	// ComposeResolver decides once per process how compose is invoked: the standalone
	// binary when "docker-compose --version" succeeds, otherwise the "docker compose"
	// plugin. Concurrent first calls share one probe.
	ComposeResolver struct {
		docker      string
		compose     string
		execCommand ExecCommandFunc
		argv        func() []string
	}
)

// WithComposeBinaries sets the docker and standalone compose executables.
func WithComposeBinaries(docker, compose string) ComposeResolverOption {
	return func(r *ComposeResolver) {
		if docker != "" {
			r.docker = docker
		}
		if compose != "" {
			r.compose = compose
		}
	}
}

// WithComposeExecCommand sets a custom exec command function for testing.
func WithComposeExecCommand(fn ExecCommandFunc) ComposeResolverOption {
	return func(r *ComposeResolver) {
		r.execCommand = fn
	}
}

// NewComposeResolver creates a resolver. The probe runs lazily on the first Argv call.
func NewComposeResolver(opts ...ComposeResolverOption) *ComposeResolver {
	r := &ComposeResolver{
		docker:      DefaultDockerBinary,
		compose:     DefaultComposeBinary,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.argv = sync.OnceValue(r.probe)
	return r
}

// Argv returns the compose argv prefix: ["docker-compose"] or ["docker", "compose"].
func (r *ComposeResolver) Argv() []string {
	return slices.Clone(r.argv())
}

// Binaries returns every executable name the resolver may emit as argv[0].
func (r *ComposeResolver) Binaries() []string {
	return []string{r.docker, r.compose}
}

func (r *ComposeResolver) probe() []string {
	ctx, cancel := context.WithTimeout(context.Background(), composeProbeTimeout)
	defer cancel()

	cmd := r.execCommand(ctx, r.compose, "--version")
	if err := cmd.Run(); err != nil {
		slog.Debug("standalone compose unavailable, using docker compose plugin", "binary", r.compose, "error", err)
		return []string{r.docker, "compose"}
	}
	slog.Debug("using standalone compose", "binary", r.compose)
	return []string{r.compose}
}
