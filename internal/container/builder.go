// SPDX-License-Identifier: MPL-2.0

package container

import (
	"slices"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
)

type (
	// BuilderOption configures a Builder.
	BuilderOption func(*Builder)

	// Builder turns canonical parameters into a Spec. For a fixed configuration and
	// compose probe result, Build is a pure function.
	Builder struct {
		docker   string
		compose  func() []string
		timeouts Timeouts
	}

	// cmdline accumulates argv tokens for one rule.
	cmdline struct {
		args  []string
		stdin string
	}

	// rule appends the arguments of one operation after the binary.
	rule func(p operation.Params, c *cmdline)
)

// WithDockerBinary sets the docker executable name or path.
func WithDockerBinary(name string) BuilderOption {
	return func(b *Builder) {
		if name != "" {
			b.docker = name
		}
	}
}

// WithComposeCommand sets the source of the compose argv prefix, typically
// (*ComposeResolver).Argv.
func WithComposeCommand(fn func() []string) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.compose = fn
		}
	}
}

// WithTimeouts sets the timeout classes.
func WithTimeouts(t Timeouts) BuilderOption {
	return func(b *Builder) {
		b.timeouts = t
	}
}

// NewBuilder creates a Builder. Without options it emits "docker" and "docker compose".
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		docker:   DefaultDockerBinary,
		compose:  func() []string { return []string{DefaultDockerBinary, "compose"} },
		timeouts: DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HasRule reports whether an argv rule exists for name.
func HasRule(name operation.Name) bool {
	_, ok := rules[name]
	return ok
}

// Build emits the Spec for def with params p.
func (b *Builder) Build(def *operation.Definition, p operation.Params) (Spec, error) {
	r, ok := rules[def.Name]
	if !ok {
		return Spec{}, fault.New(fault.UnknownOperation, "no command rule for operation %s", def.Name)
	}

	c := &cmdline{}
	if def.Binary == operation.BinaryCompose {
		c.add(b.compose()...)
	} else {
		c.add(b.docker)
	}
	r(p, c)

	return Spec{
		Argv:           c.args,
		Timeout:        b.timeouts.For(def.Timeout, p),
		Label:          string(def.Name),
		Stdin:          c.stdin,
		RequiresDaemon: !def.SkipDaemonProbe,
	}, nil
}

func (c *cmdline) add(tokens ...string) {
	c.args = append(c.args, tokens...)
}

// flag emits "name value" when value is non-empty.
func (c *cmdline) flag(name, value string) {
	if value != "" {
		c.args = append(c.args, name, value)
	}
}

// sw emits name when on is true.
func (c *cmdline) sw(name string, on bool) {
	if on {
		c.args = append(c.args, name)
	}
}

// count emits "name N" when the int field is present.
func (c *cmdline) count(name string, p operation.Params, field string) {
	if n, ok := p.Int(field); ok {
		c.args = append(c.args, name, strconv.Itoa(n))
	}
}

// each emits "name value" once per list element.
func (c *cmdline) each(name string, values []string) {
	for _, v := range values {
		c.args = append(c.args, name, v)
	}
}

// pairs emits "name KEY=VALUE" for every entry, in sorted key order.
func (c *cmdline) pairs(name string, m map[string]string) {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		c.args = append(c.args, name, k+"="+m[k])
	}
}
