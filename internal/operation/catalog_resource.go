// SPDX-License-Identifier: MPL-2.0

package operation

const (
	// Network manages networks through a sub-action.
	Network Name = "docker-network"
	// Volume manages volumes through a sub-action.
	Volume Name = "docker-volume"
)

func networkDefinitions() []Definition {
	return []Definition{
		{
			Name:    Network,
			Summary: "Manage networks (ls, create, rm, inspect, connect, disconnect, prune)",
			Fields: []Field{
				{Name: "action", Kind: KindString, Required: true, Enum: []string{"ls", "create", "rm", "inspect", "connect", "disconnect", "prune"}, Usage: "network action"},
				{Name: "networkName", Kind: KindString, Usage: "network name or ID"},
				{Name: "containerName", Kind: KindString, Usage: "container to connect or disconnect"},
				{Name: "driver", Kind: KindString, Short: "d", Usage: "driver to manage the network"},
				{Name: "subnet", Kind: KindString, Usage: "subnet in CIDR format"},
				{Name: "force", Kind: KindBool, Short: "f", Usage: "force the container to disconnect"},
			},
			Positionals: []string{"action", "networkName", "containerName"},
			Requires: func(p Params) []string {
				switch p.String("action") {
				case "create", "rm", "inspect":
					return []string{"networkName"}
				case "connect", "disconnect":
					return []string{"networkName", "containerName"}
				}
				return nil
			},
			Done: "Network command completed",
		},
	}
}

func volumeDefinitions() []Definition {
	return []Definition{
		{
			Name:    Volume,
			Summary: "Manage volumes (ls, create, rm, inspect, prune)",
			Fields: []Field{
				{Name: "action", Kind: KindString, Required: true, Enum: []string{"ls", "create", "rm", "inspect", "prune"}, Usage: "volume action"},
				{Name: "volumeName", Kind: KindString, Usage: "volume name"},
				{Name: "driver", Kind: KindString, Short: "d", Usage: "volume driver name"},
				{Name: "force", Kind: KindBool, Short: "f", Usage: "force the removal of one or more volumes"},
				{Name: "all", Kind: KindBool, Short: "a", Usage: "prune all unused volumes, not just anonymous ones"},
			},
			Positionals: []string{"action", "volumeName"},
			Requires: func(p Params) []string {
				switch p.String("action") {
				case "rm", "inspect":
					return []string{"volumeName"}
				}
				return nil
			},
			Render: func(p Params, stdout string) string {
				if p.String("action") == "ls" {
					return listing(constant(msgNoVolumes))(p, stdout)
				}
				return stdout
			},
			Done: "Volume command completed",
		},
	}
}
