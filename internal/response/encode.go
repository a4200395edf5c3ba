// SPDX-License-Identifier: MPL-2.0

package response

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FormatText writes the content only.
	FormatText Format = "text"
	// FormatJSON writes the whole envelope as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes the whole envelope as YAML.
	FormatYAML Format = "yaml"
)

// Format selects how an envelope is written to a terminal or pipe.
type Format string

// Formats returns the accepted output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat parses an output format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Encode writes env to w in the given format.
func Encode(w io.Writer, env Envelope, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		if env.Content == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, env.Content)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON returns the compact JSON encoding of env, the form carried by tool results.
func (e Envelope) JSON() (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
