// SPDX-License-Identifier: MPL-2.0

package operation

const (
	// Images lists images.
	Images Name = "docker-images"
	// Pull downloads an image from a registry.
	Pull Name = "docker-pull"
	// Push uploads an image to a registry.
	Push Name = "docker-push"
	// Build builds an image from a build context.
	Build Name = "docker-build"
	// RemoveImage removes images.
	RemoveImage Name = "docker-rmi"
	// Tag creates a tag that refers to a source image.
	Tag Name = "docker-tag"
	// History shows the layer history of an image.
	History Name = "docker-history"
)

func imageDefinitions() []Definition {
	imageField := Field{Name: "imageName", Kind: KindString, Required: true, Usage: "image reference", Check: CheckImageRef}
	allTags := Field{Name: "allTags", Kind: KindBool, Short: "a", Usage: "all tags of the repository"}
	quiet := Field{Name: "quiet", Kind: KindBool, Short: "q", Usage: "suppress verbose output"}

	return []Definition{
		{
			Name:    Images,
			Summary: "List images",
			Fields: []Field{
				{Name: "all", Kind: KindBool, Short: "a", Usage: "show all images (default hides intermediate images)"},
				{Name: "filter", Kind: KindList, Short: "f", Usage: "filter output based on conditions provided"},
				{Name: "quiet", Kind: KindBool, Short: "q", Usage: "only show image IDs"},
			},
			Render: listing(constant(msgNoImages)),
		},
		{
			Name:    Pull,
			Summary: "Download an image from a registry",
			Timeout: TimeoutLong,
			Fields: []Field{
				imageField,
				{Name: "platform", Kind: KindString, Usage: "set platform if server is multi-platform capable"},
				allTags,
				quiet,
			},
			Positionals: []string{"imageName"},
			Done:        "Image pulled",
		},
		{
			Name:        Push,
			Summary:     "Upload an image to a registry",
			Timeout:     TimeoutLong,
			Fields:      []Field{imageField, allTags, quiet},
			Positionals: []string{"imageName"},
			Done:        "Image pushed",
		},
		{
			Name:    Build,
			Summary: "Build an image from a Dockerfile",
			Timeout: TimeoutBuild,
			Fields: []Field{
				{Name: "context", Kind: KindString, Usage: "build context (defaults to the working directory)"},
				{Name: "tag", Kind: KindList, Short: "t", Usage: "name and optionally a tag (name:tag)", Check: CheckImageRef},
				{Name: "file", Kind: KindString, Short: "f", Usage: "name of the Dockerfile"},
				{Name: "buildArgs", Kind: KindMap, Flag: "build-arg", Usage: "set build-time variables (KEY=VALUE)", Check: CheckEnvKey},
				{Name: "noCache", Kind: KindBool, Usage: "do not use cache when building the image"},
				{Name: "pull", Kind: KindBool, Usage: "always attempt to pull a newer version of the base images"},
				{Name: "target", Kind: KindString, Usage: "set the target build stage to build"},
				{Name: "platform", Kind: KindString, Usage: "set platform if server is multi-platform capable"},
				quiet,
			},
			Positionals: []string{"context"},
			Done:        "Image built",
		},
		{
			Name:    RemoveImage,
			Summary: "Remove one or more images",
			Fields: []Field{
				{Name: "images", Kind: KindList, Required: true, Usage: "image references or IDs"},
				{Name: "force", Kind: KindBool, Short: "f", Usage: "force removal of the image"},
				{Name: "noPrune", Kind: KindBool, Usage: "do not delete untagged parents"},
			},
			Positionals: []string{"images"},
			Done:        "Images removed",
		},
		{
			Name:    Tag,
			Summary: "Create a tag TARGET that refers to SOURCE",
			Fields: []Field{
				{Name: "source", Kind: KindString, Required: true, Usage: "source image reference", Check: CheckImageRef},
				{Name: "target", Kind: KindString, Required: true, Usage: "target image reference", Check: CheckImageRef},
			},
			Positionals: []string{"source", "target"},
			Done:        "Image tagged",
		},
		{
			Name:    History,
			Summary: "Show the history of an image",
			Fields: []Field{
				imageField,
				{Name: "noTrunc", Kind: KindBool, Usage: "don't truncate output"},
			},
			Positionals: []string{"imageName"},
		},
	}
}
