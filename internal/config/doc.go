// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/dockwright/config.cue (~/.config on Linux
// when unset, ~/Library/Application Support on macOS, %APPDATA% on Windows), from
// ./config.cue, or from an explicit path. Environment variables prefixed DOCKWRIGHT_
// override file values (DOCKWRIGHT_TIMEOUTS_BUILD=900).
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they are
// merged over the defaults.
package config
