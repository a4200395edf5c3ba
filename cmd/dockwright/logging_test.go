// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dockwright/dockwright/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     config.LogLevel
		verbose   bool
		wantDebug bool
		wantInfo  bool
	}{
		{"info", config.LogLevelInfo, false, false, true},
		{"error", config.LogLevelError, false, false, false},
		{"verbose overrides level", config.LogLevelError, true, true, true},
		{"debug", config.LogLevelDebug, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, config.LogConfig{Level: tt.level, Format: config.LogFormatLogfmt}, tt.verbose)
			logger.Debug("debug record")
			logger.Info("info record")

			if got := strings.Contains(buf.String(), "debug record"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v\n%s", got, tt.wantDebug, buf.String())
			}
			if got := strings.Contains(buf.String(), "info record"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v\n%s", got, tt.wantInfo, buf.String())
			}
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: config.LogLevelInfo, Format: config.LogFormatJSON}, false)
	logger.Info("engine call", "operation", "docker-containers")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log record is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "engine call" || record["operation"] != "docker-containers" {
		t.Errorf("record = %v", record)
	}
}

func TestGlamourStyle(t *testing.T) {
	t.Parallel()

	if got := glamourStyle(config.ColorSchemeLight); got != "light" {
		t.Errorf("glamourStyle(light) = %q", got)
	}
	if got := glamourStyle(config.ColorSchemeDark); got != "dark" {
		t.Errorf("glamourStyle(dark) = %q", got)
	}
	if got := glamourStyle(config.ColorSchemeAuto); got != "dark" && got != "light" {
		t.Errorf("glamourStyle(auto) = %q", got)
	}
}
