// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs every engine invocation.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// LogFormatText is human-readable colored output.
	LogFormatText LogFormat = "text"
	// LogFormatJSON emits one JSON object per record.
	LogFormatJSON LogFormat = "json"
	// LogFormatLogfmt emits key=value records.
	LogFormatLogfmt LogFormat = "logfmt"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned when a LogFormat value is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidOutput is returned when the output encoding is not recognized.
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidTimeout is returned when a timeout is not a positive number of seconds.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidAlias is the sentinel error wrapped by InvalidAliasError.
	ErrInvalidAlias = errors.New("invalid alias")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// LogFormat selects the log record encoding.
	LogFormat string

	// InvalidValueError is returned when an enumerated setting holds an unknown value.
	// It wraps the setting's sentinel for errors.Is() compatibility.
	InvalidValueError struct {
		Key      string
		Value    string
		Valid    []string
		sentinel error
	}

	// InvalidAliasError is returned when a user alias entry is malformed.
	InvalidAliasError struct {
		Index  int
		Name   string
		Reason string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DockerBinary is the engine CLI invoked for every non-compose operation.
		DockerBinary string `json:"docker_binary" yaml:"docker_binary" toml:"docker_binary" mapstructure:"docker_binary"`
		// ComposeBinary is the standalone compose CLI probed before the docker plugin.
		ComposeBinary string `json:"compose_binary" yaml:"compose_binary" toml:"compose_binary" mapstructure:"compose_binary"`
		// Timeouts are the per-class deadlines in seconds.
		Timeouts TimeoutsConfig `json:"timeouts" yaml:"timeouts" toml:"timeouts" mapstructure:"timeouts"`
		// Log configures the stderr logger.
		Log LogConfig `json:"log" yaml:"log" toml:"log" mapstructure:"log"`
		// UI configures the user interface
		UI UIConfig `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
		// Output is the default result encoding (text, json or yaml).
		Output string `json:"output" yaml:"output" toml:"output" mapstructure:"output"`
		// Aliases extend the built-in alias table.
		Aliases []AliasConfig `json:"aliases" yaml:"aliases" toml:"aliases" mapstructure:"-"`
	}

	// TimeoutsConfig holds the subprocess deadlines in seconds.
	TimeoutsConfig struct {
		Default        int `json:"default" yaml:"default" toml:"default" mapstructure:"default"`
		Long           int `json:"long" yaml:"long" toml:"long" mapstructure:"long"`
		Build          int `json:"build" yaml:"build" toml:"build" mapstructure:"build"`
		MaxLongRunning int `json:"max_long_running" yaml:"max_long_running" toml:"max_long_running" mapstructure:"max_long_running"`
		Probe          int `json:"probe" yaml:"probe" toml:"probe" mapstructure:"probe"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level  LogLevel  `json:"level" yaml:"level" toml:"level" mapstructure:"level"`
		Format LogFormat `json:"format" yaml:"format" toml:"format" mapstructure:"format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
	}

	// AliasConfig binds a new name to an operation with pre-set parameters.
	AliasConfig struct {
		Name      string         `json:"name" yaml:"name" toml:"name"`
		Operation string         `json:"operation" yaml:"operation" toml:"operation"`
		Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	}
)

// Error implements the error interface for InvalidValueError.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (valid: %s)", e.Key, e.Value, strings.Join(e.Valid, ", "))
}

// Unwrap returns the setting's sentinel for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return e.sentinel }

// Error implements the error interface for InvalidAliasError.
func (e *InvalidAliasError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("aliases[%d]: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("aliases[%d] (%s): %s", e.Index, e.Name, e.Reason)
}

// Unwrap returns ErrInvalidAlias for errors.Is() compatibility.
func (e *InvalidAliasError) Unwrap() error { return ErrInvalidAlias }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Key: "ui.color_scheme", Value: string(cs), Valid: []string{"auto", "dark", "light"},
			sentinel: ErrInvalidColorScheme,
		}}
	}
}

// IsValid returns whether the LogLevel is known.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Key: "log.level", Value: string(l), Valid: []string{"debug", "info", "warn", "error"},
			sentinel: ErrInvalidLogLevel,
		}}
	}
}

// IsValid returns whether the LogFormat is known.
func (f LogFormat) IsValid() (bool, []error) {
	switch f {
	case LogFormatText, LogFormatJSON, LogFormatLogfmt:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Key: "log.format", Value: string(f), Valid: []string{"text", "json", "logfmt"},
			sentinel: ErrInvalidLogFormat,
		}}
	}
}

// IsValid reports whether every deadline is a positive number of seconds.
func (t TimeoutsConfig) IsValid() (bool, []error) {
	var errs []error
	for _, f := range []struct {
		key string
		v   int
	}{
		{"timeouts.default", t.Default},
		{"timeouts.long", t.Long},
		{"timeouts.build", t.Build},
		{"timeouts.max_long_running", t.MaxLongRunning},
		{"timeouts.probe", t.Probe},
	} {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be a positive number of seconds, got %d", ErrInvalidTimeout, f.key, f.v))
		}
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields. Alias names must be unique
// within the file; clashes with built-in names are reported when the table is built.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.DockerBinary) == "" {
		errs = append(errs, fmt.Errorf("%w: docker_binary must not be empty", ErrInvalidConfig))
	}
	if valid, fieldErrs := c.Timeouts.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		errs = append(errs, &InvalidValueError{
			Key: "output", Value: c.Output, Valid: []string{"text", "json", "yaml"},
			sentinel: ErrInvalidOutput,
		})
	}

	seen := make(map[string]int, len(c.Aliases))
	for i, a := range c.Aliases {
		switch {
		case a.Name == "":
			errs = append(errs, &InvalidAliasError{Index: i, Reason: "name is required"})
		case a.Operation == "":
			errs = append(errs, &InvalidAliasError{Index: i, Name: a.Name, Reason: "operation is required"})
		default:
			if first, dup := seen[a.Name]; dup {
				errs = append(errs, &InvalidAliasError{Index: i, Name: a.Name, Reason: fmt.Sprintf("duplicate of aliases[%d]", first)})
			}
			seen[a.Name] = i
		}
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DockerBinary:  "docker",
		ComposeBinary: "docker-compose",
		Timeouts: TimeoutsConfig{
			Default:        60,
			Long:           300,
			Build:          600,
			MaxLongRunning: 3600,
			Probe:          10,
		},
		Log: LogConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Output:  "text",
		Aliases: []AliasConfig{},
	}
}
