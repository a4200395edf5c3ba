// SPDX-License-Identifier: MPL-2.0

package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
	"github.com/dockwright/dockwright/internal/testutil"
)

func newTestFormatter(clock *testutil.FakeClock) *Formatter {
	return NewFormatter(
		WithClock(clock),
		WithWorkingDir(func() (string, error) { return "/work/shop", nil }),
	)
}

func lookup(t *testing.T, name operation.Name) *operation.Definition {
	t.Helper()
	def, ok := operation.Builtin().Lookup(name)
	if !ok {
		t.Fatalf("unknown operation %s", name)
	}
	return def
}

func TestFormatter_SuccessStampsMetadata(t *testing.T) {
	t.Parallel()

	clock := testutil.NewFakeClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	f := newTestFormatter(clock)
	started := clock.Now()
	clock.Advance(1500 * time.Millisecond)

	env := f.Success(lookup(t, operation.Version), operation.Params{}, container.Result{Stdout: "Client: 27.3.1\n"}, started)
	if env.IsError {
		t.Error("IsError = true for a successful command")
	}
	if env.Content != "Client: 27.3.1" {
		t.Errorf("Content = %q", env.Content)
	}
	want := Metadata{
		Operation:        "docker-version",
		Duration:         1500,
		Timestamp:        started.Add(1500 * time.Millisecond),
		WorkingDirectory: "/work/shop",
	}
	if env.Metadata != want {
		t.Errorf("Metadata = %+v, want %+v", env.Metadata, want)
	}
	if env.Metadata.Elapsed() != 1500*time.Millisecond {
		t.Errorf("Elapsed() = %s", env.Metadata.Elapsed())
	}
}

func TestSuccessContent(t *testing.T) {
	t.Parallel()

	header := "CONTAINER ID   IMAGE   COMMAND   STATUS   PORTS   NAMES\n"
	tests := []struct {
		name   string
		op     operation.Name
		p      operation.Params
		stdout string
		want   string
	}{
		{"empty running listing", operation.Containers, operation.Params{}, header, "No running containers found"},
		{"empty full listing", operation.Containers, operation.Params{"all": true}, header, "No containers found"},
		{"non-empty listing", operation.Containers, operation.Params{}, header + "abc123   nginx   ...\n", strings.TrimSuffix(header, "\n") + "\nabc123   nginx   ..."},
		{"empty image listing", operation.Images, operation.Params{}, "", "No images found"},
		{"done message", operation.Logout, operation.Params{}, "", "Logged out"},
		{"completed successfully", operation.Top, operation.Params{}, "", "docker-top completed successfully"},
		{"stdout passthrough", operation.Stop, operation.Params{}, "web\n", "web"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SuccessContent(lookup(t, tt.op), tt.p, tt.stdout); got != tt.want {
				t.Errorf("SuccessContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_Failure(t *testing.T) {
	t.Parallel()

	clock := testutil.NewFakeClock(time.Time{})
	f := newTestFormatter(clock)

	err := &fault.Error{
		Kind:     fault.ContainerNotFound,
		Message:  "No such container: web",
		Stderr:   "Error response from daemon: No such container: web\n",
		ExitCode: 1,
	}
	env := f.Failure("docker-stop", err, clock.Now())
	if !env.IsError {
		t.Fatal("IsError = false for a failure")
	}
	lines := strings.Split(env.Content, "\n")
	if lines[0] != "ContainerNotFound: No such container: web" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Hint: ") || !strings.Contains(lines[1], "container name") {
		t.Errorf("hint line = %q", lines[1])
	}
	if !strings.Contains(env.Content, "Error response from daemon") {
		t.Errorf("stderr missing from content:\n%s", env.Content)
	}
	if env.Metadata.Operation != "docker-stop" {
		t.Errorf("Operation = %q", env.Metadata.Operation)
	}
}

func TestFormatter_FailureContentVariants(t *testing.T) {
	t.Parallel()

	f := NewFormatter(WithHints(nil))
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fault.Missing("imageName"), `MissingRequiredField: required field "imageName" is missing`},
		{"stderr equal to message", &fault.Error{Kind: fault.CommandFailed, Message: "boom", Stderr: "boom\n"}, "CommandFailed: boom"},
		{"foreign error", errors.New("exec format error"), "CommandFailed: exec format error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := f.FailureContent(tt.err); got != tt.want {
				t.Errorf("FailureContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_WorkingDirError(t *testing.T) {
	t.Parallel()

	f := NewFormatter(WithWorkingDir(func() (string, error) { return "", errors.New("removed") }))
	env := f.Text("dps", "ok", false, time.Time{})
	if env.Metadata.WorkingDirectory != "" || env.Metadata.Duration != 0 {
		t.Errorf("Metadata = %+v", env.Metadata)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	env := Envelope{
		Content: "docker login <<< '***' & done",
		IsError: true,
		Metadata: Metadata{
			Operation:        "docker-login",
			Duration:         42,
			Timestamp:        time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			WorkingDirectory: "/work",
		},
	}

	t.Run("json keys", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := Encode(&buf, env, FormatJSON); err != nil {
			t.Fatal(err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatal(err)
		}
		meta, _ := decoded["metadata"].(map[string]any)
		if decoded["isError"] != true || meta["duration"] != float64(42) || meta["timestamp"] != "2025-03-01T10:00:00Z" {
			t.Errorf("decoded = %v", decoded)
		}
		if !strings.Contains(buf.String(), "<<<") {
			t.Errorf("HTML characters must not be escaped: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := Encode(&buf, env, FormatYAML); err != nil {
			t.Fatal(err)
		}
		var decoded Envelope
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatal(err)
		}
		if decoded.Metadata.WorkingDirectory != "/work" || !decoded.IsError {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := Encode(&buf, env, FormatText); err != nil {
			t.Fatal(err)
		}
		if buf.String() != env.Content+"\n" {
			t.Errorf("text = %q", buf.String())
		}
	})

	t.Run("compact json", func(t *testing.T) {
		t.Parallel()
		s, err := env.JSON()
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(s, "\n") || !strings.HasPrefix(s, `{"content":`) {
			t.Errorf("JSON() = %s", s)
		}
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML, "text": FormatText} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
