// SPDX-License-Identifier: MPL-2.0

package operation

const (
	// Login authenticates against a registry.
	Login Name = "docker-login"
	// Logout removes stored registry credentials.
	Logout Name = "docker-logout"
	// Search searches a registry for images.
	Search Name = "docker-search"
	// Cleanup prunes one class of unused objects.
	Cleanup Name = "docker-cleanup"
	// Reset prunes the engine at a chosen level.
	Reset Name = "docker-reset"
	// Info shows system-wide information.
	Info Name = "docker-info"
	// Version shows client and server versions.
	Version Name = "docker-version"
	// DiskUsage shows engine disk usage.
	DiskUsage Name = "docker-disk-usage"
)

func registryDefinitions() []Definition {
	registry := Field{Name: "registry", Kind: KindString, Usage: "registry server (defaults to Docker Hub)"}
	return []Definition{
		{
			Name:    Login,
			Summary: "Log in to a registry",
			Timeout: TimeoutLong,
			Fields: []Field{
				{Name: "username", Kind: KindString, Short: "u", Required: true, Usage: "username"},
				{Name: "password", Kind: KindString, Short: "p", Required: true, Usage: "password or token (sent on stdin)"},
				registry,
			},
			Positionals: []string{"registry"},
			Done:        "Login succeeded",
		},
		{
			Name:        Logout,
			Summary:     "Log out from a registry",
			Fields:      []Field{registry},
			Positionals: []string{"registry"},
			Done:        "Logged out",
		},
		{
			Name:    Search,
			Summary: "Search a registry for images",
			Timeout: TimeoutLong,
			Fields: []Field{
				{Name: "term", Kind: KindString, Required: true, Usage: "search term"},
				{Name: "limit", Kind: KindInt, Usage: "max number of search results"},
				{Name: "filter", Kind: KindList, Short: "f", Usage: "filter output based on conditions provided"},
			},
			Positionals: []string{"term"},
			Render:      listing(constant("No matching images found")),
		},
	}
}

func systemDefinitions() []Definition {
	return []Definition{
		{
			Name:    Cleanup,
			Summary: "Remove unused containers, images, volumes, networks or build cache",
			Fields: []Field{
				{Name: "scope", Kind: KindString, Required: true, Enum: []string{"containers", "images", "volumes", "networks", "builder", "system"}, Usage: "what to prune"},
				{Name: "all", Kind: KindBool, Short: "a", Usage: "remove all unused objects, not just dangling ones"},
				{Name: "volumes", Kind: KindBool, Usage: "prune volumes as part of a system prune"},
			},
			Positionals: []string{"scope"},
			Done:        "Nothing to clean up",
		},
		{
			Name:    Reset,
			Summary: "Prune the engine (soft, hard or full)",
			Fields: []Field{
				{Name: "level", Kind: KindString, Required: true, Enum: []string{"soft", "hard", "full"}, Usage: "reset level"},
			},
			Positionals: []string{"level"},
			Done:        "Nothing to reset",
		},
		{
			Name:    Info,
			Summary: "Display system-wide information",
			Fields:  []Field{{Name: "format", Kind: KindString, Short: "f", Usage: "format output using a Go template"}},
		},
		{
			Name:            Version,
			Summary:         "Show the engine version information",
			SkipDaemonProbe: true,
		},
		{
			Name:    DiskUsage,
			Summary: "Show engine disk usage",
			Fields:  []Field{{Name: "verbose", Kind: KindBool, Short: "v", Usage: "show detailed information on space usage"}},
		},
	}
}
