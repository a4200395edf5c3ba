// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"github.com/dockwright/dockwright/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "dockwright"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (DOCKWRIGHT_OUTPUT=json).
	EnvPrefix = "DOCKWRIGHT"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the dockwright configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigPath returns the default config file location.
func ConfigPath(configDirPath string) (string, error) {
	cfgDir, err := configDirWithOverride(configDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("docker_binary", defaults.DockerBinary)
	v.SetDefault("compose_binary", defaults.ComposeBinary)
	v.SetDefault("timeouts.default", defaults.Timeouts.Default)
	v.SetDefault("timeouts.long", defaults.Timeouts.Long)
	v.SetDefault("timeouts.build", defaults.Timeouts.Build)
	v.SetDefault("timeouts.max_long_running", defaults.Timeouts.MaxLongRunning)
	v.SetDefault("timeouts.probe", defaults.Timeouts.Probe)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("output", defaults.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	var aliases []AliasConfig

	// If a custom config file path is set via --dw-config, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'dockwright config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		found, err := loadCUEIntoViper(v, opts.ConfigFilePath)
		if err != nil {
			return nil, "", loadError(opts.ConfigFilePath, err)
		}
		aliases = found
		resolvedPath = opts.ConfigFilePath
	} else {
		cuePath, err := ConfigPath(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		localCuePath := ConfigFileName + "." + ConfigFileExt
		for _, candidate := range []string{cuePath, localCuePath} {
			if !fileExists(candidate) {
				continue
			}
			found, err := loadCUEIntoViper(v, candidate)
			if err != nil {
				return nil, "", loadError(candidate, err)
			}
			aliases = found
			resolvedPath = candidate
			break
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Aliases = aliases
	if cfg.Aliases == nil {
		cfg.Aliases = []AliasConfig{}
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check DOCKWRIGHT_* environment overrides").
			WithSuggestion("Each alias name must be unique").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'dockwright config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Aliases are decoded separately and returned:
// Viper lowercases map keys, and alias params are case-sensitive field names.
func loadCUEIntoViper(v *viper.Viper, path string) ([]AliasConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkFileSize(data, path); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var aliases []AliasConfig
	if av := unified.LookupPath(cue.ParsePath("aliases")); av.Exists() {
		if err := av.Decode(&aliases); err != nil {
			return nil, formatCUEError(err, path)
		}
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err, path)
	}
	delete(configMap, "aliases")

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}

	return aliases, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file unless one exists. It returns
// the path and whether a file was written.
func CreateDefaultConfig(configDirPath string) (string, bool, error) {
	cfgPath, err := ConfigPath(configDirPath)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// dockwright configuration\n")
	sb.WriteString("// Environment variables DOCKWRIGHT_<KEY> override these values.\n\n")

	sb.WriteString(fmt.Sprintf("docker_binary:  %q\n", cfg.DockerBinary))
	sb.WriteString(fmt.Sprintf("compose_binary: %q\n", cfg.ComposeBinary))
	sb.WriteString(fmt.Sprintf("output:         %q\n", cfg.Output))

	sb.WriteString("\n// Deadlines in seconds.\n")
	sb.WriteString("timeouts: {\n")
	sb.WriteString(fmt.Sprintf("\tdefault:          %d\n", cfg.Timeouts.Default))
	sb.WriteString(fmt.Sprintf("\tlong:             %d\n", cfg.Timeouts.Long))
	sb.WriteString(fmt.Sprintf("\tbuild:            %d\n", cfg.Timeouts.Build))
	sb.WriteString(fmt.Sprintf("\tmax_long_running: %d\n", cfg.Timeouts.MaxLongRunning))
	sb.WriteString(fmt.Sprintf("\tprobe:            %d\n", cfg.Timeouts.Probe))
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	sb.WriteString(fmt.Sprintf("\tlevel:  %q\n", cfg.Log.Level))
	sb.WriteString(fmt.Sprintf("\tformat: %q\n", cfg.Log.Format))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose:      %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	if len(cfg.Aliases) == 0 {
		sb.WriteString("\n// aliases: [{name: \"dweb\", operation: \"docker-logs\", params: {containerName: \"web\", tail: 100}}]\n")
		return sb.String()
	}

	sb.WriteString("\naliases: [\n")
	for _, a := range cfg.Aliases {
		if len(a.Params) == 0 {
			sb.WriteString(fmt.Sprintf("\t{name: %q, operation: %q},\n", a.Name, a.Operation))
			continue
		}
		// JSON literals are valid CUE
		params, err := json.Marshal(a.Params)
		if err != nil {
			params = []byte("{}")
		}
		sb.WriteString(fmt.Sprintf("\t{name: %q, operation: %q, params: %s},\n", a.Name, a.Operation, params))
	}
	sb.WriteString("]\n")

	return sb.String()
}
