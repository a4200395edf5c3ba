// SPDX-License-Identifier: MPL-2.0

package container

import (
	"github.com/dockwright/dockwright/internal/operation"
)

const (
	// PsFormat is the listing template used by docker-containers.
	PsFormat = "table {{.ID}}\t{{.Image}}\t{{.Command}}\t{{.Status}}\t{{.Ports}}\t{{.Names}}"
	// ImagesFormat is the listing template used by docker-images.
	ImagesFormat = "table {{.Repository}}\t{{.Tag}}\t{{.ID}}\t{{.CreatedSince}}\t{{.Size}}"
)

// rules holds exactly one argv rule per operation.
var rules = map[operation.Name]rule{
	operation.Containers: func(p operation.Params, c *cmdline) {
		c.add("ps")
		c.sw("-a", p.Bool("all"))
		c.sw("-q", p.Bool("quiet"))
		c.each("--filter", p.List("filter"))
		if !p.Bool("quiet") {
			c.add("--format", PsFormat)
		}
	},

	// run [-d] [--rm] [--name X] [-p P]* [-v V]* [-e K=V]* [--network N] [-u U] [-w W]
	// [-m M] [--cpus C] [--privileged] [--entrypoint E] [--label L]* [--restart R] IMAGE [CMD...]
	operation.Run: func(p operation.Params, c *cmdline) {
		c.add("run")
		c.sw("-d", p.Bool("detach"))
		c.sw("--rm", p.Bool("remove"))
		c.flag("--name", p.String("name"))
		c.each("-p", p.List("ports"))
		c.each("-v", p.List("volumes"))
		c.pairs("-e", p.Map("environment"))
		c.flag("--network", p.String("network"))
		c.flag("-u", p.String("user"))
		c.flag("-w", p.String("workdir"))
		c.flag("-m", p.String("memory"))
		c.flag("--cpus", p.String("cpus"))
		c.sw("--privileged", p.Bool("privileged"))
		c.flag("--entrypoint", p.String("entrypoint"))
		c.each("--label", p.List("label"))
		c.flag("--restart", p.String("restart"))
		c.add(p.String("imageName"))
		c.add(p.List("containerCommand")...)
	},

	operation.Exec: func(p operation.Params, c *cmdline) {
		c.add("exec")
		c.sw("-i", p.Bool("interactive"))
		c.sw("-d", p.Bool("detach"))
		c.flag("-u", p.String("user"))
		c.flag("-w", p.String("workdir"))
		c.pairs("-e", p.Map("environment"))
		c.add(p.String("containerName"))
		c.add(p.List("command")...)
	},

	operation.Logs: func(p operation.Params, c *cmdline) {
		c.add("logs")
		c.count("--tail", p, "tail")
		c.flag("--since", p.String("since"))
		c.flag("--until", p.String("until"))
		c.sw("-t", p.Bool("timestamps"))
		c.sw("--details", p.Bool("details"))
		c.add(p.String("containerName"))
	},

	operation.Start: func(p operation.Params, c *cmdline) {
		c.add("start")
		c.sw("-a", p.Bool("attach"))
		c.add(p.List("containers")...)
	},

	operation.Stop: func(p operation.Params, c *cmdline) {
		c.add("stop")
		c.count("-t", p, "time")
		c.add(p.List("containers")...)
	},

	operation.Restart: func(p operation.Params, c *cmdline) {
		c.add("restart")
		c.count("-t", p, "time")
		c.add(p.List("containers")...)
	},

	operation.Kill: func(p operation.Params, c *cmdline) {
		c.add("kill")
		c.flag("-s", p.String("signal"))
		c.add(p.List("containers")...)
	},

	operation.Remove: func(p operation.Params, c *cmdline) {
		c.add("rm")
		c.sw("-f", p.Bool("force"))
		c.sw("-v", p.Bool("volumes"))
		c.add(p.List("containers")...)
	},

	operation.Inspect: func(p operation.Params, c *cmdline) {
		c.add("inspect")
		c.flag("--type", p.String("type"))
		c.flag("--format", p.String("format"))
		c.add(p.List("targets")...)
	},

	operation.Stats: func(p operation.Params, c *cmdline) {
		c.add("stats", "--no-stream")
		c.sw("-a", p.Bool("all"))
		c.add(p.List("containers")...)
	},

	operation.Top: func(p operation.Params, c *cmdline) {
		c.add("top", p.String("containerName"))
	},

	operation.Images: func(p operation.Params, c *cmdline) {
		c.add("images")
		c.sw("-a", p.Bool("all"))
		c.sw("-q", p.Bool("quiet"))
		c.each("--filter", p.List("filter"))
		if !p.Bool("quiet") {
			c.add("--format", ImagesFormat)
		}
	},

	operation.Pull: func(p operation.Params, c *cmdline) {
		c.add("pull")
		c.flag("--platform", p.String("platform"))
		c.sw("-a", p.Bool("allTags"))
		c.sw("-q", p.Bool("quiet"))
		c.add(p.String("imageName"))
	},

	operation.Push: func(p operation.Params, c *cmdline) {
		c.add("push")
		c.sw("-a", p.Bool("allTags"))
		c.sw("-q", p.Bool("quiet"))
		c.add(p.String("imageName"))
	},

	operation.Build: func(p operation.Params, c *cmdline) {
		c.add("build")
		c.flag("-f", p.String("file"))
		c.each("-t", p.List("tag"))
		c.pairs("--build-arg", p.Map("buildArgs"))
		c.sw("--no-cache", p.Bool("noCache"))
		c.sw("--pull", p.Bool("pull"))
		c.flag("--target", p.String("target"))
		c.flag("--platform", p.String("platform"))
		c.sw("-q", p.Bool("quiet"))
		if ctx := p.String("context"); ctx != "" {
			c.add(ctx)
		} else {
			c.add(".")
		}
	},

	operation.RemoveImage: func(p operation.Params, c *cmdline) {
		c.add("rmi")
		c.sw("-f", p.Bool("force"))
		c.sw("--no-prune", p.Bool("noPrune"))
		c.add(p.List("images")...)
	},

	operation.Tag: func(p operation.Params, c *cmdline) {
		c.add("tag", p.String("source"), p.String("target"))
	},

	operation.History: func(p operation.Params, c *cmdline) {
		c.add("history")
		c.sw("--no-trunc", p.Bool("noTrunc"))
		c.add(p.String("imageName"))
	},

	operation.Network: func(p operation.Params, c *cmdline) {
		action := p.String("action")
		c.add("network", action)
		switch action {
		case "create":
			c.flag("--driver", p.String("driver"))
			c.flag("--subnet", p.String("subnet"))
			c.add(p.String("networkName"))
		case "rm", "inspect":
			c.add(p.String("networkName"))
		case "connect":
			c.add(p.String("networkName"), p.String("containerName"))
		case "disconnect":
			c.sw("-f", p.Bool("force"))
			c.add(p.String("networkName"), p.String("containerName"))
		case "prune":
			c.add("-f")
		}
	},

	operation.Volume: func(p operation.Params, c *cmdline) {
		action := p.String("action")
		c.add("volume", action)
		switch action {
		case "create":
			c.flag("--driver", p.String("driver"))
			if v := p.String("volumeName"); v != "" {
				c.add(v)
			}
		case "rm":
			c.sw("-f", p.Bool("force"))
			c.add(p.String("volumeName"))
		case "inspect":
			c.add(p.String("volumeName"))
		case "prune":
			c.add("-f")
			c.sw("-a", p.Bool("all"))
		}
	},

	operation.ComposeUp: func(p operation.Params, c *cmdline) {
		composeProject(p, c)
		c.add("up")
		c.sw("-d", p.BoolOr("detach", true))
		c.sw("--build", p.Bool("build"))
		c.sw("--remove-orphans", p.Bool("removeOrphans"))
		c.add(p.List("services")...)
	},

	operation.ComposeDown: func(p operation.Params, c *cmdline) {
		composeProject(p, c)
		c.add("down")
		c.sw("-v", p.Bool("volumes"))
		c.sw("--remove-orphans", p.Bool("removeOrphans"))
		c.flag("--rmi", p.String("rmi"))
	},

	operation.ComposePs: func(p operation.Params, c *cmdline) {
		composeProject(p, c)
		c.add("ps")
		c.sw("-a", p.Bool("all"))
		c.add(p.List("services")...)
	},

	operation.ComposeLogs: func(p operation.Params, c *cmdline) {
		composeProject(p, c)
		c.add("logs", "--no-color")
		c.count("--tail", p, "tail")
		c.sw("-t", p.Bool("timestamps"))
		c.add(p.List("services")...)
	},

	operation.ComposeRestart: func(p operation.Params, c *cmdline) {
		composeProject(p, c)
		c.add("restart")
		c.add(p.List("services")...)
	},

	operation.Login: func(p operation.Params, c *cmdline) {
		c.add("login", "-u", p.String("username"), "--password-stdin")
		if r := p.String("registry"); r != "" {
			c.add(r)
		}
		c.stdin = p.String("password")
	},

	operation.Logout: func(p operation.Params, c *cmdline) {
		c.add("logout")
		if r := p.String("registry"); r != "" {
			c.add(r)
		}
	},

	operation.Search: func(p operation.Params, c *cmdline) {
		c.add("search")
		c.count("--limit", p, "limit")
		c.each("--filter", p.List("filter"))
		c.add(p.String("term"))
	},

	operation.Cleanup: func(p operation.Params, c *cmdline) {
		all := p.Bool("all")
		switch p.String("scope") {
		case "containers":
			c.add("container", "prune", "-f")
		case "images":
			c.add("image", "prune", "-f")
			c.sw("-a", all)
		case "volumes":
			c.add("volume", "prune", "-f")
			c.sw("-a", all)
		case "networks":
			c.add("network", "prune", "-f")
		case "builder":
			c.add("builder", "prune", "-f")
			c.sw("-a", all)
		case "system":
			c.add("system", "prune", "-f")
			c.sw("-a", all)
			c.sw("--volumes", p.Bool("volumes"))
		}
	},

	operation.Reset: func(p operation.Params, c *cmdline) {
		switch p.String("level") {
		case "soft":
			c.add("system", "prune", "-f")
		case "hard":
			c.add("system", "prune", "-a", "-f")
		case "full":
			c.add("system", "prune", "-a", "-f", "--volumes")
		}
	},

	operation.Info: func(p operation.Params, c *cmdline) {
		c.add("info")
		c.flag("--format", p.String("format"))
	},

	operation.Version: func(_ operation.Params, c *cmdline) {
		c.add("version")
	},

	operation.DiskUsage: func(p operation.Params, c *cmdline) {
		c.add("system", "df")
		c.sw("-v", p.Bool("verbose"))
	},
}

// composeProject emits the project-level options that precede every compose sub-command.
func composeProject(p operation.Params, c *cmdline) {
	c.flag("-f", p.String("file"))
	c.flag("-p", p.String("projectName"))
}
