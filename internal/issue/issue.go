// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"

	"github.com/dockwright/dockwright/internal/fault"
)

const (
	MissingRequiredFieldId Id = iota + 1
	InvalidValueId
	UnknownCommandId
	DaemonUnavailableId
	PermissionDeniedId
	ContainerNotFoundId
	ImageNotFoundId
	NetworkNotFoundId
	VolumeNotFoundId
	PortConflictId
	TimeoutId
	CommandFailedId
	ConfigLoadFailedId
	ComposeNotFoundId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is one entry of the troubleshooting catalog: a one-line hint for
	// envelopes and a markdown page for verbose terminal output.
	Issue struct {
		id       Id          // ID used to lookup the issue
		hint     string      // short remediation appended to failure envelopes
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink  // engine documentation relevant to the issue
	}
)

var (
	render = glamour.Render

	missingRequiredFieldIssue = &Issue{
		id:   MissingRequiredFieldId,
		hint: "Run the command with --help to see its required arguments",
		mdMsg: `
# A required argument is missing!

The command cannot be built because a required value was not supplied.
Nothing was executed.

## Things you can try:
- Show the usage of the alias:
~~~
$ dstop --help
~~~
- When calling through the tool server, pass the field by its name, e.g. ` + "`{\"containers\": [\"web\"]}`",
	}

	invalidValueIssue = &Issue{
		id:   InvalidValueId,
		hint: "Check the value against the accepted options shown by --help",
		mdMsg: `
# Invalid value!

A value is outside the accepted set or has the wrong format. Nothing was executed.

## Accepted formats:
- Integers (` + "`--time`, `--tail`, `--limit`" + `) must be non-negative whole numbers
- Ports follow ` + "`[ip:]hostPort:containerPort[/proto]`" + `
- Memory sizes use units such as ` + "`512m` or `2g`" + `
- Image references look like ` + "`registry/name:tag`" + `
- Environment entries are ` + "`KEY=VALUE`",
	}

	unknownCommandIssue = &Issue{
		id:   UnknownCommandId,
		hint: "Run 'dockwright aliases' to list the available commands",
		mdMsg: `
# Unknown command!

The name is neither an alias nor an operation.

## Things you can try:
~~~
$ dockwright aliases
~~~`,
	}

	daemonUnavailableIssue = &Issue{
		id:   DaemonUnavailableId,
		hint: "Start the Docker daemon (or Docker Desktop) and retry",
		mdMsg: `
# Cannot reach the Docker daemon!

The liveness probe (` + "`docker version`" + `) failed, so the command was not attempted.

## Things you can try:
- Start the daemon:
~~~
$ sudo systemctl start docker
~~~
- Check that ` + "`DOCKER_HOST`" + ` or the current docker context points at a running engine:
~~~
$ docker context ls
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/engine/daemon/start/"},
	}

	permissionDeniedIssue = &Issue{
		id:   PermissionDeniedId,
		hint: "Add your user to the docker group or run with sufficient privileges",
		mdMsg: `
# Permission denied!

The engine refused the call for lack of permissions.

## Things you can try:
- Ensure you're in the docker group:
~~~
$ sudo usermod -aG docker $USER
~~~
- Use a rootless engine setup`,
		docLinks: []HttpLink{"https://docs.docker.com/engine/install/linux-postinstall/"},
	}

	containerNotFoundIssue = &Issue{
		id:   ContainerNotFoundId,
		hint: "Check the container name with the list command (dpsa)",
		mdMsg: `
# Container not found!

## Things you can try:
- List all containers, including stopped ones:
~~~
$ dpsa
~~~`,
	}

	imageNotFoundIssue = &Issue{
		id:   ImageNotFoundId,
		hint: "Check the image name and tag with dimages, or pull it first",
		mdMsg: `
# Image not found!

## Things you can try:
- List local images:
~~~
$ dimages
~~~
- Pull the image, or log in first when the repository is private:
~~~
$ dpull nginx:latest
$ dlogin -u USER -p TOKEN ghcr.io
~~~`,
	}

	networkNotFoundIssue = &Issue{
		id:   NetworkNotFoundId,
		hint: "List networks with 'dnetls'",
		mdMsg: `
# Network not found!

## Things you can try:
~~~
$ dnetls
$ dnet create backend
~~~`,
	}

	volumeNotFoundIssue = &Issue{
		id:   VolumeNotFoundId,
		hint: "List volumes with 'dvolls'",
		mdMsg: `
# Volume not found!

## Things you can try:
~~~
$ dvolls
$ dvol create data
~~~`,
	}

	portConflictIssue = &Issue{
		id:   PortConflictId,
		hint: "Choose another host port or stop the container using it",
		mdMsg: `
# Port already allocated!

Another container or process is bound to the requested host port.

## Things you can try:
- Find the container publishing the port:
~~~
$ dps --filter publish=8080
~~~
- Map a different host port, e.g. ` + "`-p 8081:80`",
	}

	timeoutIssue = &Issue{
		id:   TimeoutId,
		hint: "Retry with --exec-timeout and --long-running for slow operations",
		mdMsg: `
# Command timed out!

The engine command exceeded its deadline and was terminated.

## Things you can try:
- Allow a longer timeout:
~~~
$ dbuild --long-running --exec-timeout 1800 .
~~~
- Raise the class defaults in the configuration (` + "`timeouts.build`" + `)`,
	}

	commandFailedIssue = &Issue{
		id:   CommandFailedId,
		hint: "See the engine output below for details",
		mdMsg: `
# Command failed!

The engine returned an error that dockwright does not classify further.

## Things you can try:
- Re-run with --dw-dry-run to see the exact command line
- Re-run with --dw-verbose to log every engine invocation`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		hint: "Check the configuration file syntax",
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show the effective configuration:
~~~
$ dockwright config show
~~~
- Write a fresh default file:
~~~
$ dockwright config init
~~~`,
	}

	composeNotFoundIssue = &Issue{
		id:   ComposeNotFoundId,
		hint: "Install docker-compose or the docker compose plugin",
		mdMsg: `
# Compose not found!

Neither ` + "`docker-compose`" + ` nor the ` + "`docker compose`" + ` plugin answered.`,
		docLinks: []HttpLink{"https://docs.docker.com/compose/install/"},
	}

	issues = map[Id]*Issue{
		missingRequiredFieldIssue.Id(): missingRequiredFieldIssue,
		invalidValueIssue.Id():         invalidValueIssue,
		unknownCommandIssue.Id():       unknownCommandIssue,
		daemonUnavailableIssue.Id():    daemonUnavailableIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
		containerNotFoundIssue.Id():    containerNotFoundIssue,
		imageNotFoundIssue.Id():        imageNotFoundIssue,
		networkNotFoundIssue.Id():      networkNotFoundIssue,
		volumeNotFoundIssue.Id():       volumeNotFoundIssue,
		portConflictIssue.Id():         portConflictIssue,
		timeoutIssue.Id():              timeoutIssue,
		commandFailedIssue.Id():        commandFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		composeNotFoundIssue.Id():      composeNotFoundIssue,
	}

	byKind = map[fault.Kind]Id{
		fault.MissingRequiredField: MissingRequiredFieldId,
		fault.InvalidEnum:          InvalidValueId,
		fault.UnknownOperation:     UnknownCommandId,
		fault.DaemonUnavailable:    DaemonUnavailableId,
		fault.PermissionDenied:     PermissionDeniedId,
		fault.ContainerNotFound:    ContainerNotFoundId,
		fault.ImageNotFound:        ImageNotFoundId,
		fault.NetworkNotFound:      NetworkNotFoundId,
		fault.VolumeNotFound:       VolumeNotFoundId,
		fault.PortConflict:         PortConflictId,
		fault.Timeout:              TimeoutId,
		fault.CommandFailed:        CommandFailedId,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

// Hint returns the one-line remediation.
func (i *Issue) Hint() string {
	return i.hint
}

// Render renders the markdown page with glamour using the given style
// ("dark", "light", "notty", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForKind returns the catalog entry describing an error kind, or nil.
func ForKind(kind fault.Kind) *Issue {
	id, ok := byKind[kind]
	if !ok {
		return nil
	}
	return issues[id]
}

// HintFor returns the hint for an error kind, or "" when the kind is unknown.
func HintFor(kind fault.Kind) string {
	if i := ForKind(kind); i != nil {
		return i.hint
	}
	return ""
}
