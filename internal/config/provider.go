// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions are the explicit inputs of one load. Zero values select the
	// platform config directory, then ./config.cue.
	LoadOptions struct {
		// ConfigFilePath is the --dw-config file; when set no other file is read.
		ConfigFilePath string
		// ConfigDirPath replaces the platform config directory.
		ConfigDirPath string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// PathProvider is a Provider that also reports the file it read.
	PathProvider interface {
		Provider
		// LoadWithPath returns the configuration and the file it was read from, or
		// "" when only defaults and environment overrides applied.
		LoadWithPath(ctx context.Context, opts LoadOptions) (*Config, string, error)
	}

	fileProvider struct{}
)

// configDirOverride replaces ConfigDir in tests; os.UserHomeDir does not honor
// HOME on every platform.
var configDirOverride string

// NewProvider returns the file-backed provider.
func NewProvider() PathProvider {
	return fileProvider{}
}

// Load reads configuration from the requested source.
func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	return cfg, err
}

// LoadWithPath is Load that also reports the file that was read.
func (fileProvider) LoadWithPath(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}

// SetConfigDirOverride makes ConfigDir return dir until Reset.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}
