// SPDX-License-Identifier: MPL-2.0

package operation

const (
	// Containers lists containers.
	Containers Name = "docker-containers"
	// Run creates and starts a container.
	Run Name = "docker-run"
	// Exec runs a command in a running container.
	Exec Name = "docker-exec"
	// Logs fetches container logs.
	Logs Name = "docker-logs"
	// Start starts stopped containers.
	Start Name = "docker-start"
	// Stop stops running containers.
	Stop Name = "docker-stop"
	// Restart restarts containers.
	Restart Name = "docker-restart"
	// Kill sends a signal to containers.
	Kill Name = "docker-kill"
	// Remove removes containers.
	Remove Name = "docker-remove"
	// Inspect shows low-level information on engine objects.
	Inspect Name = "docker-inspect"
	// Stats shows a one-shot resource usage snapshot.
	Stats Name = "docker-stats"
	// Top lists the processes of a container.
	Top Name = "docker-top"
)

func containerDefinitions() []Definition {
	envField := Field{Name: "environment", Kind: KindMap, Short: "e", Flag: "env", Usage: "set environment variables (KEY=VALUE)", Check: CheckEnvKey}
	userField := Field{Name: "user", Kind: KindString, Short: "u", Usage: "username or UID"}
	workdirField := Field{Name: "workdir", Kind: KindString, Short: "w", Usage: "working directory inside the container"}
	containersField := Field{Name: "containers", Kind: KindList, Required: true, Usage: "container names or IDs"}
	timeField := Field{Name: "time", Kind: KindInt, Short: "t", Usage: "seconds to wait before killing the container"}

	return []Definition{
		{
			Name:    Containers,
			Summary: "List containers",
			Fields: []Field{
				{Name: "all", Kind: KindBool, Short: "a", Usage: "show all containers (default shows just running)"},
				{Name: "filter", Kind: KindList, Short: "f", Usage: "filter output based on conditions provided"},
				{Name: "quiet", Kind: KindBool, Short: "q", Usage: "only display container IDs"},
			},
			Render: listing(emptyContainers),
		},
		{
			Name:    Run,
			Summary: "Create and run a new container from an image",
			Fields: []Field{
				{Name: "imageName", Kind: KindString, Required: true, Usage: "image to run", Check: CheckImageRef},
				{Name: "detach", Kind: KindBool, Short: "d", Usage: "run container in background and print container ID"},
				{Name: "remove", Kind: KindBool, Flag: "rm", Usage: "automatically remove the container when it exits"},
				{Name: "name", Kind: KindString, Usage: "assign a name to the container"},
				{Name: "ports", Kind: KindList, Short: "p", Flag: "publish", Usage: "publish a container's port(s) to the host", Check: CheckPort},
				{Name: "volumes", Kind: KindList, Short: "v", Flag: "volume", Usage: "bind mount a volume"},
				envField,
				{Name: "network", Kind: KindString, Usage: "connect the container to a network"},
				userField,
				workdirField,
				{Name: "memory", Kind: KindString, Short: "m", Usage: "memory limit", Check: CheckMemory},
				{Name: "cpus", Kind: KindString, Usage: "number of CPUs", Check: CheckCPUs},
				{Name: "privileged", Kind: KindBool, Usage: "give extended privileges to this container"},
				{Name: "entrypoint", Kind: KindString, Usage: "overwrite the default entrypoint of the image"},
				{Name: "label", Kind: KindList, Short: "l", Usage: "set metadata on the container"},
				{Name: "restart", Kind: KindString, Usage: "restart policy (no, always, unless-stopped, on-failure[:N])", Check: CheckRestartPolicy},
				{Name: "containerCommand", Kind: KindList, Usage: "command and arguments passed to the container"},
			},
			Positionals: []string{"imageName"},
			Passthrough: "containerCommand",
			Done:        "Container run",
		},
		{
			Name:    Exec,
			Summary: "Execute a command in a running container",
			Fields: []Field{
				{Name: "containerName", Kind: KindString, Required: true, Usage: "container name or ID"},
				{Name: "command", Kind: KindList, Required: true, Usage: "command and arguments to execute"},
				{Name: "interactive", Kind: KindBool, Short: "i", Usage: "keep STDIN open"},
				{Name: "detach", Kind: KindBool, Short: "d", Usage: "run command in the background"},
				userField,
				workdirField,
				envField,
			},
			Positionals: []string{"containerName"},
			Passthrough: "command",
			Done:        "Command executed",
		},
		{
			Name:    Logs,
			Summary: "Fetch the logs of a container",
			Fields: []Field{
				{Name: "containerName", Kind: KindString, Required: true, Usage: "container name or ID"},
				{Name: "tail", Kind: KindInt, Short: "n", Usage: "number of lines to show from the end of the logs"},
				{Name: "since", Kind: KindString, Usage: "show logs since timestamp or relative duration"},
				{Name: "until", Kind: KindString, Usage: "show logs before timestamp or relative duration"},
				{Name: "timestamps", Kind: KindBool, Short: "t", Usage: "show timestamps"},
				{Name: "details", Kind: KindBool, Usage: "show extra details provided to logs"},
			},
			Positionals: []string{"containerName"},
			Done:        "No log output",
		},
		{
			Name:        Start,
			Summary:     "Start one or more stopped containers",
			Fields:      []Field{containersField, {Name: "attach", Kind: KindBool, Short: "a", Usage: "attach STDOUT/STDERR"}},
			Positionals: []string{"containers"},
			Done:        "Containers started",
		},
		{
			Name:        Stop,
			Summary:     "Stop one or more running containers",
			Fields:      []Field{containersField, timeField},
			Positionals: []string{"containers"},
			Done:        "Containers stopped",
		},
		{
			Name:        Restart,
			Summary:     "Restart one or more containers",
			Fields:      []Field{containersField, timeField},
			Positionals: []string{"containers"},
			Done:        "Containers restarted",
		},
		{
			Name:    Kill,
			Summary: "Kill one or more running containers",
			Fields: []Field{
				containersField,
				{Name: "signal", Kind: KindString, Short: "s", Usage: "signal to send to the container"},
			},
			Positionals: []string{"containers"},
			Done:        "Containers killed",
		},
		{
			Name:    Remove,
			Summary: "Remove one or more containers",
			Fields: []Field{
				containersField,
				{Name: "force", Kind: KindBool, Short: "f", Usage: "force the removal of a running container"},
				{Name: "volumes", Kind: KindBool, Short: "v", Usage: "remove anonymous volumes associated with the container"},
			},
			Positionals: []string{"containers"},
			Done:        "Containers removed",
		},
		{
			Name:    Inspect,
			Summary: "Return low-level information on engine objects",
			Fields: []Field{
				{Name: "targets", Kind: KindList, Required: true, Usage: "names or IDs of the objects"},
				{Name: "type", Kind: KindString, Enum: []string{"container", "image", "network", "volume"}, Usage: "only inspect objects of the given type"},
				{Name: "format", Kind: KindString, Short: "f", Usage: "format output using a Go template"},
			},
			Positionals: []string{"targets"},
		},
		{
			Name:    Stats,
			Summary: "Display a snapshot of container resource usage",
			Fields: []Field{
				{Name: "containers", Kind: KindList, Usage: "container names or IDs"},
				{Name: "all", Kind: KindBool, Short: "a", Usage: "show all containers (default shows just running)"},
			},
			Positionals: []string{"containers"},
			Render:      listing(emptyContainers),
		},
		{
			Name:        Top,
			Summary:     "Display the running processes of a container",
			Fields:      []Field{{Name: "containerName", Kind: KindString, Required: true, Usage: "container name or ID"}},
			Positionals: []string{"containerName"},
		},
	}
}
