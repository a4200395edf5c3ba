// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"github.com/dockwright/dockwright/internal/operation"
)

// Workflows returns the built-in compound entries: build-then-run, pull-then-run and
// compose restart (down then up).
func Workflows() []Entry {
	return []Entry{buildRun(), pullRun(), composeRestart()}
}

func buildRun() Entry {
	fields := []operation.Field{
		{Name: "tag", Kind: operation.KindString, Short: "t", Required: true, Usage: "image name and tag to build and run", Check: operation.CheckImageRef},
		{Name: "file", Kind: operation.KindString, Short: "f", Usage: "name of the Dockerfile"},
		{Name: "context", Kind: operation.KindString, Usage: "build context (defaults to the working directory)"},
		{Name: "buildArgs", Kind: operation.KindMap, Flag: "build-arg", Usage: "set build-time variables (KEY=VALUE)", Check: operation.CheckEnvKey},
		{Name: "noCache", Kind: operation.KindBool, Usage: "do not use cache when building the image"},
	}
	return Entry{
		Alias: "dbr",
		Workflow: &operation.Definition{
			Name:        "dbr",
			Summary:     "Build an image, then run a container from it",
			Fields:      append(fields, runFields()...),
			Positionals: []string{"context"},
		},
		Steps: []Step{
			{Operation: operation.Build, Source: func(p operation.Params) map[string]any {
				in := pick(p, "file", "context", "buildArgs", "noCache")
				in["tag"] = []string{p.String("tag")}
				return in
			}},
			{Operation: operation.Run, Source: func(p operation.Params) map[string]any {
				in := pick(p, runFieldNames()...)
				in["imageName"] = p.String("tag")
				return in
			}},
		},
	}
}

func pullRun() Entry {
	fields := []operation.Field{
		{Name: "imageName", Kind: operation.KindString, Required: true, Usage: "image to pull and run", Check: operation.CheckImageRef},
		{Name: "platform", Kind: operation.KindString, Usage: "set platform if server is multi-platform capable"},
	}
	fields = append(fields, runFields()...)
	fields = append(fields, operation.Field{Name: "containerCommand", Kind: operation.KindList, Usage: "command and arguments passed to the container"})
	return Entry{
		Alias: "dpr",
		Workflow: &operation.Definition{
			Name:        "dpr",
			Summary:     "Pull an image, then run a container from it",
			Fields:      fields,
			Positionals: []string{"imageName"},
			Passthrough: "containerCommand",
		},
		Steps: []Step{
			{Operation: operation.Pull, Source: func(p operation.Params) map[string]any {
				return pick(p, "imageName", "platform")
			}},
			{Operation: operation.Run, Source: func(p operation.Params) map[string]any {
				return pick(p, append(runFieldNames(), "imageName", "containerCommand")...)
			}},
		},
	}
}

func composeRestart() Entry {
	return Entry{
		Alias: "dcrestart",
		Workflow: &operation.Definition{
			Name:    "dcrestart",
			Summary: "Recreate compose services (down, then up)",
			Fields: []operation.Field{
				{Name: "file", Kind: operation.KindString, Short: "f", Usage: "compose configuration file"},
				{Name: "projectName", Kind: operation.KindString, Short: "p", Usage: "project name"},
				{Name: "removeOrphans", Kind: operation.KindBool, Usage: "remove containers for services not defined in the compose file"},
				{Name: "build", Kind: operation.KindBool, Usage: "build images before starting containers"},
			},
		},
		Steps: []Step{
			{Operation: operation.ComposeDown, Source: func(p operation.Params) map[string]any {
				return pick(p, "file", "projectName", "removeOrphans")
			}},
			{Operation: operation.ComposeUp, Source: func(p operation.Params) map[string]any {
				return pick(p, "file", "projectName", "removeOrphans", "build")
			}},
		},
	}
}

// runFields are the docker-run options a workflow forwards to its run step.
func runFields() []operation.Field {
	return []operation.Field{
		{Name: "name", Kind: operation.KindString, Usage: "assign a name to the container"},
		{Name: "detach", Kind: operation.KindBool, Short: "d", Usage: "run container in background and print container ID"},
		{Name: "remove", Kind: operation.KindBool, Flag: "rm", Usage: "automatically remove the container when it exits"},
		{Name: "ports", Kind: operation.KindList, Short: "p", Flag: "publish", Usage: "publish a container's port(s) to the host", Check: operation.CheckPort},
		{Name: "volumes", Kind: operation.KindList, Short: "v", Flag: "volume", Usage: "bind mount a volume"},
		{Name: "environment", Kind: operation.KindMap, Short: "e", Flag: "env", Usage: "set environment variables (KEY=VALUE)", Check: operation.CheckEnvKey},
		{Name: "network", Kind: operation.KindString, Usage: "connect the container to a network"},
	}
}

func runFieldNames() []string {
	var names []string
	for _, f := range runFields() {
		names = append(names, f.Name)
	}
	return names
}

// pick copies the present keys (and the common timeout fields) into a step input.
func pick(p operation.Params, keys ...string) map[string]any {
	in := make(map[string]any, len(keys)+2)
	for _, k := range append(keys, operation.FieldExecTimeout, operation.FieldLongRunning) {
		if v, ok := p[k]; ok {
			in[k] = v
		}
	}
	return in
}
