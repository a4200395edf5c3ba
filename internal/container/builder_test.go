// SPDX-License-Identifier: MPL-2.0

package container

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dockwright/dockwright/internal/normalize"
	"github.com/dockwright/dockwright/internal/operation"
	"github.com/dockwright/dockwright/internal/testutil/operationtest"
)

func build(t *testing.T, b *Builder, name operation.Name, p operation.Params) Spec {
	t.Helper()
	def, ok := operation.Builtin().Lookup(name)
	if !ok {
		t.Fatalf("unknown operation %s", name)
	}
	spec, err := b.Build(def, p)
	if err != nil {
		t.Fatalf("Build(%s) error: %v", name, err)
	}
	return spec
}

func TestBuilder_EveryOperationHasOneRule(t *testing.T) {
	t.Parallel()

	r := operation.Builtin()
	for _, name := range r.Names() {
		if !HasRule(name) {
			t.Errorf("no argv rule for %s", name)
		}
	}
	if len(rules) != len(r.Names()) {
		t.Errorf("rules = %d, operations = %d", len(rules), len(r.Names()))
	}
}

func TestBuilder_Argv(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	tests := []struct {
		name string
		op   operation.Name
		p    operation.Params
		want []string
	}{
		{"ps default", operation.Containers, operation.Params{},
			[]string{"docker", "ps", "--format", PsFormat}},
		{"ps all filtered", operation.Containers, operation.Params{"all": true, "filter": []string{"status=exited", "name=web"}},
			[]string{"docker", "ps", "-a", "--filter", "status=exited", "--filter", "name=web", "--format", PsFormat}},
		{"ps quiet", operation.Containers, operation.Params{"quiet": true},
			[]string{"docker", "ps", "-q"}},
		{"stop with time", operation.Stop, operation.Params{"time": 0, "containers": []string{"web"}},
			[]string{"docker", "stop", "-t", "0", "web"}},
		{"run full", operation.Run, operation.Params{
			"imageName":        "nginx:1.27",
			"detach":           true,
			"remove":           true,
			"name":             "web",
			"ports":            []string{"8080:80", "8443:443"},
			"volumes":          []string{"/data:/data"},
			"environment":      map[string]string{"B": "2", "A": "1"},
			"network":          "backend",
			"memory":           "512m",
			"cpus":             "0.5",
			"restart":          "always",
			"containerCommand": []string{"nginx", "-g", "daemon off;"},
		}, []string{
			"docker", "run", "-d", "--rm", "--name", "web",
			"-p", "8080:80", "-p", "8443:443", "-v", "/data:/data",
			"-e", "A=1", "-e", "B=2", "--network", "backend",
			"-m", "512m", "--cpus", "0.5", "--restart", "always",
			"nginx:1.27", "nginx", "-g", "daemon off;",
		}},
		{"exec", operation.Exec, operation.Params{"containerName": "web", "command": []string{"ls", "-la"}, "interactive": true, "user": "root"},
			[]string{"docker", "exec", "-i", "-u", "root", "web", "ls", "-la"}},
		{"logs", operation.Logs, operation.Params{"containerName": "web", "tail": 100, "timestamps": true},
			[]string{"docker", "logs", "--tail", "100", "-t", "web"}},
		{"rm", operation.Remove, operation.Params{"containers": []string{"a", "b"}, "force": true, "volumes": true},
			[]string{"docker", "rm", "-f", "-v", "a", "b"}},
		{"stats", operation.Stats, operation.Params{},
			[]string{"docker", "stats", "--no-stream"}},
		{"images", operation.Images, operation.Params{"all": true},
			[]string{"docker", "images", "-a", "--format", ImagesFormat}},
		{"build", operation.Build, operation.Params{
			"tag":       []string{"app:1", "app:latest"},
			"buildArgs": map[string]string{"VERSION": "1", "COMMIT": "abc"},
			"noCache":   true,
		}, []string{
			"docker", "build", "-t", "app:1", "-t", "app:latest",
			"--build-arg", "COMMIT=abc", "--build-arg", "VERSION=1", "--no-cache", ".",
		}},
		{"tag", operation.Tag, operation.Params{"source": "app:1", "target": "ghcr.io/acme/app:1"},
			[]string{"docker", "tag", "app:1", "ghcr.io/acme/app:1"}},
		{"network ls", operation.Network, operation.Params{"action": "ls"},
			[]string{"docker", "network", "ls"}},
		{"network create", operation.Network, operation.Params{"action": "create", "networkName": "n1", "driver": "bridge"},
			[]string{"docker", "network", "create", "--driver", "bridge", "n1"}},
		{"network disconnect", operation.Network, operation.Params{"action": "disconnect", "networkName": "n1", "containerName": "web", "force": true},
			[]string{"docker", "network", "disconnect", "-f", "n1", "web"}},
		{"volume prune", operation.Volume, operation.Params{"action": "prune", "all": true},
			[]string{"docker", "volume", "prune", "-f", "-a"}},
		{"compose up defaults to detached", operation.ComposeUp, operation.Params{"file": "dev.yml"},
			[]string{"docker", "compose", "-f", "dev.yml", "up", "-d"}},
		{"compose up attached", operation.ComposeUp, operation.Params{"detach": false, "services": []string{"api"}},
			[]string{"docker", "compose", "up", "api"}},
		{"compose down", operation.ComposeDown, operation.Params{"projectName": "shop", "volumes": true, "rmi": "local"},
			[]string{"docker", "compose", "-p", "shop", "down", "-v", "--rmi", "local"}},
		{"compose logs", operation.ComposeLogs, operation.Params{"tail": 10},
			[]string{"docker", "compose", "logs", "--no-color", "--tail", "10"}},
		{"logout", operation.Logout, operation.Params{},
			[]string{"docker", "logout"}},
		{"search", operation.Search, operation.Params{"term": "redis", "limit": 5},
			[]string{"docker", "search", "--limit", "5", "redis"}},
		{"cleanup images", operation.Cleanup, operation.Params{"scope": "images", "all": true},
			[]string{"docker", "image", "prune", "-f", "-a"}},
		{"cleanup system", operation.Cleanup, operation.Params{"scope": "system", "volumes": true},
			[]string{"docker", "system", "prune", "-f", "--volumes"}},
		{"reset full", operation.Reset, operation.Params{"level": "full"},
			[]string{"docker", "system", "prune", "-a", "-f", "--volumes"}},
		{"version", operation.Version, operation.Params{},
			[]string{"docker", "version"}},
		{"disk usage", operation.DiskUsage, operation.Params{"verbose": true},
			[]string{"docker", "system", "df", "-v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := build(t, b, tt.op, tt.p)
			if !slices.Equal(spec.Argv, tt.want) {
				t.Errorf("argv =\n  %q\nwant\n  %q", spec.Argv, tt.want)
			}
		})
	}
}

func TestBuilder_IsPure(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	p := operation.Params{
		"imageName":   "nginx",
		"environment": map[string]string{"Z": "1", "A": "2", "M": "3"},
		"ports":       []string{"80:80"},
	}
	first := build(t, b, operation.Run, p)
	for range 20 {
		again := build(t, b, operation.Run, p)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Build is not deterministic:\n%v\n%v", first, again)
		}
	}
}

func TestBuilder_InjectionStaysOneArgument(t *testing.T) {
	t.Parallel()

	def, _ := operation.Builtin().Lookup(operation.Stop)
	hostile := "web; rm -rf / && echo $(whoami) `id` | tee /tmp/x"
	p, err := normalize.Normalize(def, normalize.Object(map[string]any{"containers": []any{hostile}}), nil)
	if err != nil {
		t.Fatal(err)
	}
	spec := build(t, NewBuilder(), operation.Stop, p)
	want := []string{"docker", "stop", hostile}
	if !slices.Equal(spec.Argv, want) {
		t.Errorf("argv = %q, want %q", spec.Argv, want)
	}
}

func TestBuilder_EveryFreeTextValueStaysOneArgument(t *testing.T) {
	t.Parallel()

	const metachars = "; rm -rf / && echo $(whoami) `id` | tee /tmp/x > /dev/null"
	b := NewBuilder()

	for _, def := range operation.Builtin().All() {
		t.Run(string(def.Name), func(t *testing.T) {
			t.Parallel()

			// One value per free-text field; the expected argv element for each.
			p := operationtest.SampleParams(t, def, false)
			expected := make(map[string]string)
			for _, f := range def.AllFields() {
				if len(f.Enum) > 0 {
					continue
				}
				v := f.Name + metachars
				switch {
				case f.Kind == operation.KindString && f.Check == nil:
					p[f.Name] = v
					expected[v] = f.Name
				case f.Kind == operation.KindList && f.Check == nil:
					p[f.Name] = []string{v}
					expected[v] = f.Name
				case f.Kind == operation.KindMap:
					p[f.Name] = map[string]string{"K": v}
					expected["K="+v] = f.Name
				}
			}

			// Exercise every branch of action-style operations.
			variants := []operation.Params{p}
			for _, f := range def.Fields {
				if f.Kind != operation.KindString || len(f.Enum) == 0 {
					continue
				}
				variants = variants[:0]
				for _, member := range f.Enum {
					vp := p.Clone()
					vp[f.Name] = member
					variants = append(variants, vp)
				}
				break
			}

			emitted := make(map[string]bool)
			for _, vp := range variants {
				np, err := normalize.Normalize(def, normalize.Object(vp.Object()), nil)
				if err != nil {
					t.Fatalf("Normalize(%v) error: %v", vp, err)
				}
				spec := build(t, b, def.Name, np)
				for _, arg := range spec.Argv {
					if !strings.Contains(arg, metachars) {
						continue
					}
					field, ok := expected[arg]
					if !ok {
						t.Errorf("argv element %q is not one whole caller value", arg)
						continue
					}
					emitted[field] = true
				}
				if field, ok := expected[spec.Stdin]; ok {
					emitted[field] = true
				}
			}
			for _, field := range expected {
				if !emitted[field] {
					t.Errorf("field %s never reached the command line", field)
				}
			}
		})
	}
}

func TestBuilder_LoginUsesStdin(t *testing.T) {
	t.Parallel()

	spec := build(t, NewBuilder(), operation.Login, operation.Params{
		"username": "bob", "password": "s3cret", "registry": "ghcr.io",
	})
	want := []string{"docker", "login", "-u", "bob", "--password-stdin", "ghcr.io"}
	if !slices.Equal(spec.Argv, want) {
		t.Errorf("argv = %q", spec.Argv)
	}
	if slices.Contains(spec.Argv, "s3cret") {
		t.Error("password must not appear in argv")
	}
	if spec.Stdin != "s3cret" {
		t.Errorf("stdin = %q", spec.Stdin)
	}
}

func TestBuilder_ComposeAndDockerBinaries(t *testing.T) {
	t.Parallel()

	b := NewBuilder(
		WithDockerBinary("/usr/local/bin/docker"),
		WithComposeCommand(func() []string { return []string{"docker-compose"} }),
	)
	if got := build(t, b, operation.ComposePs, operation.Params{}).Argv; !slices.Equal(got, []string{"docker-compose", "ps"}) {
		t.Errorf("compose argv = %q", got)
	}
	if got := build(t, b, operation.Top, operation.Params{"containerName": "web"}).Argv; got[0] != "/usr/local/bin/docker" {
		t.Errorf("docker argv = %q", got)
	}
}

func TestBuilder_TimeoutsAndProbe(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	tests := []struct {
		op   operation.Name
		p    operation.Params
		want time.Duration
	}{
		{operation.Containers, operation.Params{}, 60 * time.Second},
		{operation.Pull, operation.Params{"imageName": "alpine"}, 300 * time.Second},
		{operation.ComposeUp, operation.Params{}, 300 * time.Second},
		{operation.Build, operation.Params{}, 600 * time.Second},
		{operation.Build, operation.Params{"execTimeout": 30}, 30 * time.Second},
		{operation.Build, operation.Params{"execTimeout": 7200}, 600 * time.Second},
		{operation.Build, operation.Params{"execTimeout": 1800, "longRunning": true}, 1800 * time.Second},
		{operation.Build, operation.Params{"execTimeout": 7200, "longRunning": true}, time.Hour},
		{operation.Build, operation.Params{"longRunning": true}, time.Hour},
	}
	for _, tt := range tests {
		def, _ := operation.Builtin().Lookup(tt.op)
		spec, err := b.Build(def, tt.p)
		if err != nil {
			t.Fatal(err)
		}
		if spec.Timeout != tt.want {
			t.Errorf("%s %v: timeout = %s, want %s", tt.op, tt.p, spec.Timeout, tt.want)
		}
		if spec.Label != string(tt.op) || !spec.RequiresDaemon {
			t.Errorf("%s: label %q requiresDaemon %v", tt.op, spec.Label, spec.RequiresDaemon)
		}
	}

	if build(t, b, operation.Version, operation.Params{}).RequiresDaemon {
		t.Error("docker-version must not require the daemon probe")
	}
}

func TestBuilder_UnknownOperation(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().Build(&operation.Definition{Name: "docker-teleport"}, operation.Params{})
	if err == nil {
		t.Fatal("expected error for operation without a rule")
	}
}

func TestSpec_String(t *testing.T) {
	t.Parallel()

	s := Spec{Argv: []string{"docker", "run", "-e", "GREETING=hello world", "alpine", "echo", "$HOME"}}
	want := `docker run -e 'GREETING=hello world' alpine echo '$HOME'`
	if got := s.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}

	login := Spec{Argv: []string{"docker", "login", "-u", "bob", "--password-stdin"}, Stdin: "secret"}
	if got := login.String(); got != "docker login -u bob --password-stdin <<< '***'" {
		t.Errorf("String() = %s", got)
	}
}
