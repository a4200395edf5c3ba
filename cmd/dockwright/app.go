// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/dispatch"
	"github.com/dockwright/dockwright/internal/issue"
	"github.com/dockwright/dockwright/internal/operation"
	"github.com/dockwright/dockwright/internal/response"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; every Cobra handler receives an App reference and builds a
	// session from it.
	App struct {
		Config ConfigProvider
		runner dispatch.Runner
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// Runner replaces the engine executor built from configuration.
		Runner dispatch.Runner
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalOptions are the --dw-* flags.
	globalOptions struct {
		configPath string
		output     string
		dryRun     bool
		verbose    bool
	}

	// session is the per-invocation wiring derived from configuration and flags.
	session struct {
		cfg        *config.Config
		logger     *slog.Logger
		table      *alias.Table
		dispatcher *dispatch.Dispatcher
		format     response.Format
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		runner: deps.Runner,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

func (a *App) loadConfig(ctx context.Context, opts globalOptions) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
}

// loadConfigWithPath also reports the file that was read when the provider can.
func (a *App) loadConfigWithPath(ctx context.Context, opts globalOptions) (*config.Config, string, error) {
	if pp, ok := a.Config.(config.PathProvider); ok {
		return pp.LoadWithPath(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	}
	cfg, err := a.loadConfig(ctx, opts)
	return cfg, "", err
}

// newSession loads configuration and builds the pipeline for one invocation.
// Flags take precedence over configuration.
func (a *App) newSession(ctx context.Context, opts globalOptions) (*session, error) {
	cfg, err := a.loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	verbose := opts.verbose || cfg.UI.Verbose
	logger := newLogger(a.stderr, cfg.Log, verbose)
	slog.SetDefault(logger)

	table, err := buildTable(cfg)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if opts.output != "" {
		output = opts.output
	}
	format, err := response.ParseFormat(output)
	if err != nil {
		return nil, err
	}

	timeouts := timeoutsFrom(cfg.Timeouts)
	compose := container.NewComposeResolver(container.WithComposeBinaries(cfg.DockerBinary, cfg.ComposeBinary))
	builder := container.NewBuilder(
		container.WithDockerBinary(cfg.DockerBinary),
		container.WithComposeCommand(compose.Argv),
		container.WithTimeouts(timeouts),
	)

	runner := a.runner
	if runner == nil {
		runner = container.NewExecutor(
			container.WithProbeBinary(cfg.DockerBinary),
			container.WithAllowedBinaries(compose.Binaries()...),
			container.WithProbeTimeout(timeouts.Probe),
			container.WithLogger(logger),
		)
	}

	d := dispatch.New(table, builder, runner, response.NewFormatter(),
		dispatch.WithDryRun(opts.dryRun),
		dispatch.WithLogger(logger),
	)

	return &session{
		cfg:        cfg,
		logger:     logger,
		table:      table,
		dispatcher: d,
		format:     format,
		verbose:    verbose,
	}, nil
}

// buildTable extends the built-in table with the aliases from configuration.
func buildTable(cfg *config.Config) (*alias.Table, error) {
	extra := make([]alias.Entry, 0, len(cfg.Aliases))
	for _, a := range cfg.Aliases {
		extra = append(extra, alias.Entry{
			Alias:     a.Name,
			Operation: operation.Name(a.Operation),
			Fixed:     a.Params,
		})
	}

	table, err := alias.Default(extra...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load aliases").
			WithSuggestion("Alias names must not shadow built-in commands; run 'dockwright aliases' to list them").
			WithSuggestion("Bound params must be fields of the target operation").
			Wrap(err).
			BuildError()
	}
	return table, nil
}

func timeoutsFrom(t config.TimeoutsConfig) container.Timeouts {
	return container.Timeouts{
		Default:        seconds(t.Default),
		Long:           seconds(t.Long),
		Build:          seconds(t.Build),
		MaxLongRunning: seconds(t.MaxLongRunning),
		Probe:          seconds(t.Probe),
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// commandTable returns the table used to register subcommands. Configuration errors
// are reported once here and fall back to the built-in table; running a command
// surfaces them again as its failure.
func (a *App) commandTable(ctx context.Context, opts globalOptions) *alias.Table {
	cfg, err := a.loadConfig(ctx, opts)
	if err == nil {
		var table *alias.Table
		if table, err = buildTable(cfg); err == nil {
			return table
		}
	}
	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, opts.verbose))

	table, err := alias.Default()
	if err != nil {
		// the built-in table is validated by its tests
		panic(err)
	}
	return table
}
