// SPDX-License-Identifier: MPL-2.0

package operation

const (
	// ComposeUp creates and starts compose services.
	ComposeUp Name = "docker-compose-up"
	// ComposeDown stops and removes compose services.
	ComposeDown Name = "docker-compose-down"
	// ComposePs lists compose services.
	ComposePs Name = "docker-compose-ps"
	// ComposeLogs shows compose service logs.
	ComposeLogs Name = "docker-compose-logs"
	// ComposeRestart restarts compose services.
	ComposeRestart Name = "docker-compose-restart"
)

func composeDefinitions() []Definition {
	project := func(extra ...Field) []Field {
		fields := []Field{
			{Name: "file", Kind: KindString, Short: "f", Usage: "compose configuration file"},
			{Name: "projectName", Kind: KindString, Short: "p", Usage: "project name"},
		}
		return append(fields, extra...)
	}
	services := Field{Name: "services", Kind: KindList, Usage: "service names"}
	removeOrphans := Field{Name: "removeOrphans", Kind: KindBool, Usage: "remove containers for services not defined in the compose file"}

	return []Definition{
		{
			Name:    ComposeUp,
			Summary: "Create and start compose services",
			Binary:  BinaryCompose,
			Timeout: TimeoutLong,
			Fields: project(
				Field{Name: "detach", Kind: KindBool, Short: "d", Default: true, Usage: "run containers in the background"},
				Field{Name: "build", Kind: KindBool, Usage: "build images before starting containers"},
				removeOrphans,
				services,
			),
			Positionals: []string{"services"},
			Done:        "Services started",
		},
		{
			Name:    ComposeDown,
			Summary: "Stop and remove compose services",
			Binary:  BinaryCompose,
			Timeout: TimeoutLong,
			Fields: project(
				Field{Name: "volumes", Kind: KindBool, Short: "v", Usage: "remove named volumes and anonymous volumes"},
				removeOrphans,
				Field{Name: "rmi", Kind: KindString, Enum: []string{"local", "all"}, Usage: "remove images used by services"},
			),
			Done: "Services stopped",
		},
		{
			Name:    ComposePs,
			Summary: "List compose services",
			Binary:  BinaryCompose,
			Timeout: TimeoutLong,
			Fields: project(
				Field{Name: "all", Kind: KindBool, Short: "a", Usage: "show all stopped containers"},
				services,
			),
			Positionals: []string{"services"},
		},
		{
			Name:    ComposeLogs,
			Summary: "View output from compose services",
			Binary:  BinaryCompose,
			Timeout: TimeoutLong,
			Fields: project(
				Field{Name: "tail", Kind: KindInt, Usage: "number of lines to show from the end of the logs"},
				Field{Name: "timestamps", Kind: KindBool, Short: "t", Usage: "show timestamps"},
				services,
			),
			Positionals: []string{"services"},
			Done:        "No log output",
		},
		{
			Name:        ComposeRestart,
			Summary:     "Restart compose services",
			Binary:      BinaryCompose,
			Timeout:     TimeoutLong,
			Fields:      project(services),
			Positionals: []string{"services"},
			Done:        "Services restarted",
		},
	}
}
