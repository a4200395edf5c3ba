// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"fmt"

	"github.com/dockwright/dockwright/internal/operation"
)

// DefaultEntries returns the built-in aliases and workflows.
func DefaultEntries() []Entry {
	entries := []Entry{
		// containers
		{Alias: "dps", Operation: operation.Containers, Summary: "List running containers"},
		{Alias: "dpsa", Operation: operation.Containers, Fixed: map[string]any{"all": true}, Summary: "List all containers"},
		{Alias: "drun", Operation: operation.Run},
		{Alias: "dexec", Operation: operation.Exec},
		{Alias: "dlogs", Operation: operation.Logs},
		{Alias: "dstart", Operation: operation.Start},
		{Alias: "dstop", Operation: operation.Stop},
		{Alias: "drestart", Operation: operation.Restart},
		{Alias: "dkill", Operation: operation.Kill},
		{Alias: "drm", Operation: operation.Remove},
		{Alias: "dinspect", Operation: operation.Inspect},
		{Alias: "dstats", Operation: operation.Stats},
		{Alias: "dtop", Operation: operation.Top},

		// images
		{Alias: "dimages", Operation: operation.Images},
		{Alias: "dpull", Operation: operation.Pull},
		{Alias: "dpush", Operation: operation.Push},
		{Alias: "dbuild", Operation: operation.Build},
		{Alias: "drmi", Operation: operation.RemoveImage},
		{Alias: "dtag", Operation: operation.Tag},
		{Alias: "dhistory", Operation: operation.History},

		// networks and volumes
		{Alias: "dnet", Operation: operation.Network},
		{Alias: "dnetls", Operation: operation.Network, Fixed: map[string]any{"action": "ls"}, Summary: "List networks"},
		{Alias: "dvol", Operation: operation.Volume},
		{Alias: "dvolls", Operation: operation.Volume, Fixed: map[string]any{"action": "ls"}, Summary: "List volumes"},

		// compose
		{Alias: "dcup", Operation: operation.ComposeUp},
		{Alias: "dcdown", Operation: operation.ComposeDown},
		{Alias: "dcps", Operation: operation.ComposePs},
		{Alias: "dclogs", Operation: operation.ComposeLogs},
		{Alias: "dcr", Operation: operation.ComposeRestart},

		// registry and system
		{Alias: "dlogin", Operation: operation.Login},
		{Alias: "dlogout", Operation: operation.Logout},
		{Alias: "dsearch", Operation: operation.Search},
		{Alias: "dclean", Operation: operation.Cleanup},
		{Alias: "dprune", Operation: operation.Cleanup, Fixed: map[string]any{"scope": "system"}, Summary: "Remove all unused engine objects"},
		{Alias: "dreset", Operation: operation.Reset},
		{Alias: "dinfo", Operation: operation.Info},
		{Alias: "dversion", Operation: operation.Version},
		{Alias: "ddf", Operation: operation.DiskUsage},
	}
	return append(entries, Workflows()...)
}

// Default returns the table of built-in operations, aliases and workflows, extended
// by extra entries (user aliases).
func Default(extra ...Entry) (*Table, error) {
	entries := append(DefaultEntries(), extra...)
	t, err := NewTable(operation.Builtin(), entries...)
	if err != nil {
		return nil, fmt.Errorf("build alias table: %w", err)
	}
	return t, nil
}
