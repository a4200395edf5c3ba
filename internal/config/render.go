// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Render formats for `config show`.
const (
	RenderCUE  = "cue"
	RenderJSON = "json"
	RenderYAML = "yaml"
	RenderTOML = "toml"
)

// RenderFormats lists the accepted Render formats.
func RenderFormats() []string {
	return []string{RenderCUE, RenderJSON, RenderYAML, RenderTOML}
}

// Render writes the configuration in the given format.
func Render(w io.Writer, cfg *Config, format string) error {
	switch format {
	case RenderCUE, "":
		_, err := io.WriteString(w, GenerateCUE(cfg))
		return err
	case RenderJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case RenderYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case RenderTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown config format %q (valid: cue, json, yaml, toml)", format)
	}
}
