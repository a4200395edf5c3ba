// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/dockwright/dockwright/internal/config"
	"github.com/dockwright/dockwright/internal/operation"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestSplitGlobalFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantOpts globalOptions
		wantRest []string
		wantErr  bool
	}{
		{
			name:     "no global flags",
			args:     []string{"-a", "web"},
			wantRest: []string{"-a", "web"},
		},
		{
			name:     "separate and inline values",
			args:     []string{"--dw-output", "json", "web", "--dw-config=/tmp/c.cue"},
			wantOpts: globalOptions{output: "json", configPath: "/tmp/c.cue"},
			wantRest: []string{"web"},
		},
		{
			name:     "booleans",
			args:     []string{"--dw-dry-run", "-t", "0", "--dw-verbose=false"},
			wantOpts: globalOptions{dryRun: true},
			wantRest: []string{"-t", "0"},
		},
		{
			name:     "tokens after double dash are kept",
			args:     []string{"nginx", "--", "--dw-dry-run"},
			wantRest: []string{"nginx", "--", "--dw-dry-run"},
		},
		{name: "missing value", args: []string{"--dw-output"}, wantErr: true},
		{name: "unknown dw flag", args: []string{"--dw-bogus"}, wantErr: true},
		{name: "bad boolean", args: []string{"--dw-dry-run=maybe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, rest, err := splitGlobalFlags(globalOptions{}, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitGlobalFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if opts != tt.wantOpts {
				t.Errorf("opts = %+v, want %+v", opts, tt.wantOpts)
			}
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestSplitGlobalFlags_KeepsBase(t *testing.T) {
	t.Parallel()

	base := globalOptions{output: "yaml", verbose: true}
	opts, _, err := splitGlobalFlags(base, []string{"--dw-dry-run"})
	if err != nil {
		t.Fatal(err)
	}
	want := globalOptions{output: "yaml", verbose: true, dryRun: true}
	if opts != want {
		t.Errorf("opts = %+v, want %+v", opts, want)
	}
}

func TestSplitEntryArgs(t *testing.T) {
	t.Parallel()

	ops := operation.Builtin()
	lookup := func(name operation.Name) *operation.Definition {
		def, _ := ops.Lookup(name)
		return def
	}

	tests := []struct {
		name     string
		def      *operation.Definition
		args     []string
		wantHead []string
		wantTail []string
	}{
		{"no passthrough", lookup(operation.Stop), []string{"web", "--dw-verbose"}, []string{"web", "--dw-verbose"}, nil},
		{"flags then command", lookup(operation.Exec), []string{"-u", "root", "--dw-verbose", "web", "id", "--dw-dry-run"}, []string{"-u", "root", "--dw-verbose"}, []string{"web", "id", "--dw-dry-run"}},
		{"separate flag value", lookup(operation.Exec), []string{"--dw-output", "json", "web", "ls"}, []string{"--dw-output", "json"}, []string{"web", "ls"}},
		{"positional first", lookup(operation.Run), []string{"alpine", "--dw-verbose"}, []string{}, []string{"alpine", "--dw-verbose"}},
		{"unknown flag left to the normalizer", lookup(operation.Exec), []string{"--bogus", "web", "--dw-verbose"}, []string{"--bogus", "web", "--dw-verbose"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := splitEntryArgs(tt.def, tt.args)
			if !slices.Equal(got.head, tt.wantHead) || !slices.Equal(got.tail, tt.wantTail) {
				t.Errorf("splitEntryArgs() = head %q tail %q, want head %q tail %q", got.head, got.tail, tt.wantHead, tt.wantTail)
			}
		})
	}
}

func TestInvokedAs(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"dockwright":                "dockwright",
		"/usr/local/bin/dps":        "dps",
		"./bin/dockwright":          "dockwright",
		"bin/dpsa.exe":              "dpsa",
		"/home/user/.local/bin/dbr": "dbr",
	}
	for in, want := range tests {
		if got := invokedAs(in); got != want {
			t.Errorf("invokedAs(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRun_ConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output = "json"
	ta := newTestApp(t, cfg, nil)
	if err := ta.run(t, "dockwright", "config", "show", "--format", "json"); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	var got config.Config
	if err := json.Unmarshal(ta.stdout.Bytes(), &got); err != nil {
		t.Fatalf("config show output is not JSON: %v\n%s", err, ta.stdout.String())
	}
	if got.Output != "json" || got.DockerBinary != "docker" {
		t.Errorf("config show = %+v", got)
	}
	if !strings.Contains(ta.stderr.String(), "Config file") {
		t.Errorf("stderr = %q, want the config source", ta.stderr.String())
	}
}

func TestRun_ConfigPathExplicit(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, nil, nil)
	if err := ta.run(t, "dockwright", "--dw-config", "/etc/dockwright.cue", "config", "path"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got := strings.TrimSpace(ta.stdout.String()); got != "/etc/dockwright.cue" {
		t.Errorf("config path = %q", got)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	_, err := buildTable(&config.Config{Aliases: []config.AliasConfig{{Name: "dps", Operation: "docker-stop"}}})
	if err == nil {
		t.Fatal("expected an error")
	}
	got := formatErrorForDisplay(err, false)
	if !strings.Contains(got, "load aliases") {
		t.Errorf("formatErrorForDisplay() = %q, want the operation", got)
	}
}
