// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
	"github.com/dockwright/dockwright/internal/testutil/operationtest"
)

func lookup(t *testing.T, name operation.Name) *operation.Definition {
	t.Helper()
	def, ok := operation.Builtin().Lookup(name)
	if !ok {
		t.Fatalf("operation %s not registered", name)
	}
	return def
}

func TestNormalize_TokenAndObjectFormsAgree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		op     operation.Name
		tokens []string
		object map[string]any
		want   operation.Params
	}{
		{
			name: "empty listing",
			op:   operation.Containers,
			want: operation.Params{},
		},
		{
			name:   "short cluster",
			op:     operation.Containers,
			tokens: []string{"-aq"},
			object: map[string]any{"all": true, "quiet": true},
			want:   operation.Params{"all": true, "quiet": true},
		},
		{
			name:   "stop with zero grace period",
			op:     operation.Stop,
			tokens: []string{"-t", "0", "web"},
			object: map[string]any{"time": float64(0), "containers": []any{"web"}},
			want:   operation.Params{"time": 0, "containers": []string{"web"}},
		},
		{
			name: "run with command",
			op:   operation.Run,
			tokens: []string{
				"-d", "-p", "8080:80", "-e", "B=2", "-e", "A=1", "--name", "web",
				"nginx:1.27", "sh", "-c", "echo hi",
			},
			object: map[string]any{
				"detach":           true,
				"ports":            []any{"8080:80"},
				"environment":      map[string]any{"A": "1", "B": float64(2)},
				"name":             "web",
				"imageName":        "nginx:1.27",
				"containerCommand": []any{"sh", "-c", "echo hi"},
			},
			want: operation.Params{
				"detach":           true,
				"ports":            []string{"8080:80"},
				"environment":      map[string]string{"A": "1", "B": "2"},
				"name":             "web",
				"imageName":        "nginx:1.27",
				"containerCommand": []string{"sh", "-c", "echo hi"},
			},
		},
		{
			name:   "exec passthrough",
			op:     operation.Exec,
			tokens: []string{"-i", "web", "ls", "-la"},
			object: map[string]any{"interactive": true, "containerName": "web", "command": "ls -la"},
			want:   operation.Params{"interactive": true, "containerName": "web", "command": []string{"ls", "-la"}},
		},
		{
			name:   "default true switch is elided",
			op:     operation.ComposeUp,
			tokens: []string{"api"},
			object: map[string]any{"detach": true, "services": "api"},
			want:   operation.Params{"services": []string{"api"}},
		},
		{
			name:   "default true switch disabled",
			op:     operation.ComposeUp,
			tokens: []string{"--detach=false"},
			object: map[string]any{"detach": "false"},
			want:   operation.Params{"detach": false},
		},
		{
			name:   "network action positionals",
			op:     operation.Network,
			tokens: []string{"connect", "backend", "web"},
			object: map[string]any{"action": "connect", "networkName": "backend", "containerName": "web"},
			want:   operation.Params{"action": "connect", "networkName": "backend", "containerName": "web"},
		},
		{
			name:   "logs with tail",
			op:     operation.Logs,
			tokens: []string{"-n", "100", "-t", "web"},
			object: map[string]any{"tail": "100", "timestamps": true, "containerName": "web"},
			want:   operation.Params{"tail": 100, "timestamps": true, "containerName": "web"},
		},
		{
			name:   "build args",
			op:     operation.Build,
			tokens: []string{"-t", "app:1", "--build-arg", "V=1", "--no-cache", "."},
			object: map[string]any{"tag": "app:1", "buildArgs": []any{"V=1"}, "noCache": true, "context": "."},
			want: operation.Params{
				"tag":       []string{"app:1"},
				"buildArgs": map[string]string{"V": "1"},
				"noCache":   true,
				"context":   ".",
			},
		},
		{
			name:   "remove many",
			op:     operation.Remove,
			tokens: []string{"-fv", "a", "b"},
			object: map[string]any{"force": true, "volumes": true, "containers": []any{"a", "b"}},
			want:   operation.Params{"force": true, "volumes": true, "containers": []string{"a", "b"}},
		},
		{
			name:   "common timeout fields",
			op:     operation.Pull,
			tokens: []string{"--exec-timeout", "900", "--long-running", "alpine"},
			object: map[string]any{"execTimeout": float64(900), "longRunning": true, "imageName": "alpine"},
			want:   operation.Params{"execTimeout": 900, "longRunning": true, "imageName": "alpine"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def := lookup(t, tt.op)

			fromTokens, err := Normalize(def, Tokens(tt.tokens...), nil)
			if err != nil {
				t.Fatalf("token form: %v", err)
			}
			fromObject, err := Normalize(def, Object(tt.object), nil)
			if err != nil {
				t.Fatalf("object form: %v", err)
			}
			if !reflect.DeepEqual(fromTokens, tt.want) {
				t.Errorf("token form = %#v, want %#v", fromTokens, tt.want)
			}
			if !reflect.DeepEqual(fromObject, tt.want) {
				t.Errorf("object form = %#v, want %#v", fromObject, tt.want)
			}

			// Canonical params fed back as an object normalize to themselves.
			again, err := Normalize(def, Object(fromTokens.Object()), nil)
			if err != nil {
				t.Fatalf("re-normalize: %v", err)
			}
			if !reflect.DeepEqual(again, tt.want) {
				t.Errorf("re-normalized = %#v, want %#v", again, tt.want)
			}
		})
	}
}

func TestNormalize_EveryOperationFormsAgree(t *testing.T) {
	t.Parallel()

	for _, def := range operation.Builtin().All() {
		for _, requiredOnly := range []bool{false, true} {
			name := string(def.Name) + "/all fields"
			if requiredOnly {
				name = string(def.Name) + "/required fields"
			}
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				want := operationtest.SampleParams(t, def, requiredOnly)
				tokens := operationtest.Tokens(def, want)

				fromTokens, err := Normalize(def, Tokens(tokens...), nil)
				if err != nil {
					t.Fatalf("token form %q: %v", tokens, err)
				}
				fromObject, err := Normalize(def, Object(want.Object()), nil)
				if err != nil {
					t.Fatalf("object form: %v", err)
				}
				if !reflect.DeepEqual(fromTokens, fromObject) {
					t.Errorf("token form = %#v\nobject form = %#v", fromTokens, fromObject)
				}
				if !reflect.DeepEqual(fromObject, want) {
					t.Errorf("object form = %#v, want %#v", fromObject, want)
				}
			})
		}
	}
}

func TestNormalize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		op    operation.Name
		in    Input
		kind  fault.Kind
		field string
	}{
		{"non-numeric stop time", operation.Stop, Tokens("-t", "abc", "web"), fault.InvalidEnum, "time"},
		{"negative tail", operation.Logs, Tokens("--tail", "-1", "web"), fault.InvalidEnum, "tail"},
		{"fractional tail", operation.Logs, Object(map[string]any{"tail": 1.5, "containerName": "web"}), fault.InvalidEnum, "tail"},
		{"missing containers", operation.Stop, Tokens(), fault.MissingRequiredField, "containers"},
		{"missing image", operation.Run, Object(map[string]any{}), fault.MissingRequiredField, "imageName"},
		{"blank image", operation.Run, Object(map[string]any{"imageName": "  "}), fault.MissingRequiredField, "imageName"},
		{"unknown flag", operation.Containers, Tokens("--bogus"), fault.InvalidEnum, ""},
		{"unknown key", operation.Containers, Object(map[string]any{"bogus": 1}), fault.InvalidEnum, "bogus"},
		{"unexpected positional", operation.Top, Tokens("a", "b"), fault.InvalidEnum, ""},
		{"enum", operation.Network, Tokens("explode"), fault.InvalidEnum, "action"},
		{"conditional requirement", operation.Network, Tokens("create"), fault.MissingRequiredField, "networkName"},
		{"bad port", operation.Run, Tokens("-p", "nope", "nginx"), fault.InvalidEnum, "ports"},
		{"bad memory", operation.Run, Tokens("-m", "lots", "nginx"), fault.InvalidEnum, "memory"},
		{"bad image", operation.Pull, Tokens("Not/Valid"), fault.InvalidEnum, "imageName"},
		{"env without value", operation.Run, Tokens("-e", "PATH", "nginx"), fault.InvalidEnum, "environment"},
		{"wrong type", operation.Containers, Object(map[string]any{"all": []any{}}), fault.InvalidEnum, "all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(lookup(t, tt.op), tt.in, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			fe := fault.As(err)
			if fe.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", fe.Kind, tt.kind, err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestNormalize_Help(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"-h", "--help"} {
		_, err := Normalize(lookup(t, operation.Containers), Tokens(tok), nil)
		if !errors.Is(err, ErrHelp) {
			t.Errorf("%s: expected ErrHelp, got %v", tok, err)
		}
	}
}

func TestNormalize_FixedParams(t *testing.T) {
	t.Parallel()

	def := lookup(t, operation.Containers)
	fixed := map[string]any{"all": true}

	tests := []struct {
		name string
		in   Input
		want operation.Params
	}{
		{"bound value applied", Tokens(), operation.Params{"all": true}},
		{"caller adds other fields", Tokens("-q"), operation.Params{"all": true, "quiet": true}},
		{"caller repeats bound value", Tokens("--all", "-q"), operation.Params{"all": true, "quiet": true}},
		{"object repeats bound value", Object(map[string]any{"all": "true"}), operation.Params{"all": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(def, tt.in, fixed)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize_FixedParamConflictRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		op    operation.Name
		in    Input
		fixed map[string]any
		field string
	}{
		{"switch turned off", operation.Containers, Tokens("--all=false"), map[string]any{"all": true}, "all"},
		{"positional action", operation.Network, Tokens("foo"), map[string]any{"action": "ls"}, "action"},
		{"other valid action", operation.Network, Tokens("create", "backend"), map[string]any{"action": "ls"}, "action"},
		{"object scope", operation.Cleanup, Object(map[string]any{"scope": "images"}), map[string]any{"scope": "system"}, "scope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(lookup(t, tt.op), tt.in, tt.fixed)
			fe := fault.As(err)
			if fe == nil || fe.Kind != fault.InvalidEnum || fe.Field != tt.field {
				t.Fatalf("err = %v, want InvalidEnum for %q", err, tt.field)
			}
		})
	}
}

func TestNormalize_StringsPassThroughUnchanged(t *testing.T) {
	t.Parallel()

	def := lookup(t, operation.Login)
	want := operation.Params{"username": "bob", "password": " s3cret "}

	fromTokens, err := Normalize(def, Tokens("-u", "bob", "-p", " s3cret "), nil)
	if err != nil {
		t.Fatalf("token form: %v", err)
	}
	fromObject, err := Normalize(def, Object(map[string]any{"username": "bob", "password": " s3cret "}), nil)
	if err != nil {
		t.Fatalf("object form: %v", err)
	}
	if !reflect.DeepEqual(fromTokens, want) {
		t.Errorf("token form = %#v, want %#v", fromTokens, want)
	}
	if !reflect.DeepEqual(fromObject, want) {
		t.Errorf("object form = %#v, want %#v", fromObject, want)
	}

	format := "{{ .Name }}\t{{ .ID }} "
	p, err := Normalize(lookup(t, operation.Inspect), Tokens("--format", format, "web"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String("format"); got != format {
		t.Errorf("format = %q, want %q", got, format)
	}
}

func TestNormalize_BlankRequiredStringIsMissing(t *testing.T) {
	t.Parallel()

	_, err := Normalize(lookup(t, operation.Login), Object(map[string]any{"username": "bob", "password": "   "}), nil)
	if fe := fault.As(err); fe == nil || fe.Kind != fault.MissingRequiredField || fe.Field != "password" {
		t.Errorf("err = %v, want MissingRequiredField for password", err)
	}

	// Conditionally required fields follow the same rule.
	_, err = Normalize(lookup(t, operation.Network), Object(map[string]any{"action": "create", "networkName": " "}), nil)
	if fe := fault.As(err); fe == nil || fe.Kind != fault.MissingRequiredField || fe.Field != "networkName" {
		t.Errorf("err = %v, want MissingRequiredField for networkName", err)
	}
}

func TestNormalize_PassthroughKeepsEmptyArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		op    operation.Name
		in    Input
		field string
		want  []string
	}{
		{"exec tokens", operation.Exec, Tokens("web", "sh", "-c", ""), "command", []string{"sh", "-c", ""}},
		{"exec object", operation.Exec, Object(map[string]any{"containerName": "web", "command": []any{"sh", "-c", ""}}), "command", []string{"sh", "-c", ""}},
		{"run tokens", operation.Run, Tokens("alpine", "printf", "%s|", "", "x"), "containerCommand", []string{"printf", "%s|", "", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := Normalize(lookup(t, tt.op), tt.in, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.List(tt.field); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s = %q, want %q", tt.field, got, tt.want)
			}
		})
	}

	// Other list fields still drop empty entries.
	p, err := Normalize(lookup(t, operation.Stop), Object(map[string]any{"containers": []any{"web", ""}}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.List("containers"); !reflect.DeepEqual(got, []string{"web"}) {
		t.Errorf("containers = %q, want [web]", got)
	}
}

func TestFlagSet_SkipsPositionals(t *testing.T) {
	t.Parallel()

	fs := FlagSet(lookup(t, operation.Run))
	if fs.Lookup("image-name") != nil {
		t.Error("positional imageName must not be a flag")
	}
	if fs.Lookup("container-command") != nil {
		t.Error("passthrough containerCommand must not be a flag")
	}
	if fl := fs.ShorthandLookup("p"); fl == nil || fl.Name != "publish" {
		t.Error("expected -p to map to --publish")
	}
}
