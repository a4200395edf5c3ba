// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dockwright/dockwright/internal/issue"
	"github.com/dockwright/dockwright/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), content)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.DockerBinary != "docker" || cfg.ComposeBinary != "docker-compose" {
		t.Errorf("binaries = %q, %q", cfg.DockerBinary, cfg.ComposeBinary)
	}
	if cfg.Timeouts != (TimeoutsConfig{Default: 60, Long: 300, Build: 600, MaxLongRunning: 3600, Probe: 10}) {
		t.Errorf("timeouts = %+v", cfg.Timeouts)
	}
	if cfg.Output != "text" || cfg.Log.Level != LogLevelInfo || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("defaults are invalid: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on Linux")
	}

	testutil.SetConfigHome(t, "/tmp/test-xdg-config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	SetConfigDirOverride("/tmp/override")
	defer Reset()
	if dir, _ := ConfigDir(); dir != "/tmp/override" {
		t.Errorf("override ignored: %s", dir)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want none", path)
	}
	if cfg.DockerBinary != "docker" || cfg.Timeouts.Build != 600 || len(cfg.Aliases) != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_FileValues(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
docker_binary: "/usr/local/bin/docker"
timeouts: build: 900
log: level: "debug"
output: "json"
aliases: [
	{name: "dweb", operation: "docker-logs", params: {containerName: "web", tail: 100}},
	{name: "dup", operation: "docker-compose-up"},
]
`)
	cfg, path, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}
	if cfg.DockerBinary != "/usr/local/bin/docker" || cfg.Output != "json" || cfg.Log.Level != LogLevelDebug {
		t.Errorf("cfg = %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.Timeouts.Build != 900 || cfg.Timeouts.Default != 60 {
		t.Errorf("timeouts = %+v", cfg.Timeouts)
	}

	if len(cfg.Aliases) != 2 {
		t.Fatalf("aliases = %+v", cfg.Aliases)
	}
	dweb := cfg.Aliases[0]
	if dweb.Name != "dweb" || dweb.Operation != "docker-logs" {
		t.Errorf("alias = %+v", dweb)
	}
	// parameter names keep their case
	if dweb.Params["containerName"] != "web" {
		t.Errorf("params = %#v", dweb.Params)
	}
	if got := fmt.Sprint(dweb.Params["tail"]); got != "100" {
		t.Errorf("tail = %s", got)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"zero timeout", `timeouts: build: 0`, "timeouts.build"},
		{"unknown output", `output: "xml"`, "output"},
		{"unknown key", `engine: "podman"`, "engine"},
		{"bad alias name", `aliases: [{name: "Bad Name", operation: "docker-ps"}]`, "aliases[0].name"},
		{"syntax", `docker_binary: `, "config.cue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: writeConfig(t, tt.content)})
			if err == nil {
				t.Fatal("expected an error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T", err)
			}
			if ae.Operation != "load configuration" || !ae.HasSuggestions() {
				t.Errorf("error context = %+v", ae)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_DuplicateAliases(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `aliases: [
	{name: "dweb", operation: "docker-logs"},
	{name: "dweb", operation: "docker-top"},
]`)
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if !errors.Is(err, ErrInvalidAlias) || !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidAlias, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate of aliases[0]") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue")})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !strings.Contains(ae.Error(), "config file not found") {
		t.Fatalf("expected not-found ActionableError, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, path, `compose_binary: "podman-compose"`)
	cfg, resolved, err := NewProvider().LoadWithPath(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatal(err)
	}
	if resolved != path || cfg.ComposeBinary != "podman-compose" {
		t.Errorf("resolved %q cfg %+v", resolved, cfg)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DOCKWRIGHT_TIMEOUTS_BUILD", "1200")
	t.Setenv("DOCKWRIGHT_OUTPUT", "yaml")
	t.Setenv("DOCKWRIGHT_UI_VERBOSE", "true")

	dir := writeConfig(t, `timeouts: build: 900`)
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeouts.Build != 1200 || cfg.Output != "yaml" || !cfg.UI.Verbose {
		t.Errorf("environment not applied: %+v", cfg)
	}

	t.Setenv("DOCKWRIGHT_OUTPUT", "xml")
	_, err = NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if !errors.Is(err, ErrInvalidOutput) {
		t.Errorf("expected ErrInvalidOutput, got %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, created, err := CreateDefaultConfig(dir)
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %q, %v, %v", path, created, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	// the generated file passes the schema and round-trips to the defaults
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Timeouts != DefaultConfig().Timeouts || cfg.DockerBinary != "docker" {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, created, err := CreateDefaultConfig(dir); err != nil || created {
		t.Errorf("second call created=%v err=%v", created, err)
	}
}

func TestGenerateCUE_AliasesRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Aliases = []AliasConfig{
		{Name: "dweb", Operation: "docker-logs", Params: map[string]any{"containerName": "web", "follow": false}},
		{Name: "dtop", Operation: "docker-top"},
	}
	dir := writeConfig(t, GenerateCUE(cfg))
	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated CUE does not load: %v", err)
	}
	if len(loaded.Aliases) != 2 || loaded.Aliases[0].Params["containerName"] != "web" || loaded.Aliases[0].Params["follow"] != false {
		t.Errorf("aliases = %+v", loaded.Aliases)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"":                 nil,
		"output":           {"output"},
		"timeouts.build":   {"timeouts", "build"},
		"aliases[0].name":  {"aliases", "0", "name"},
		"aliases[12]":      {"aliases", "12"},
		"aliases[0].p.x1y": {"aliases", "0", "p", "x1y"},
	}
	for want, path := range tests {
		if got := formatPath(path); got != want {
			t.Errorf("formatPath(%v) = %q, want %q", path, got, want)
		}
	}
}
