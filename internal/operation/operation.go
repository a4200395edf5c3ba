// SPDX-License-Identifier: MPL-2.0

package operation

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BinaryDocker runs the docker CLI.
	BinaryDocker Binary = iota
	// BinaryCompose runs the compose companion (docker-compose or "docker compose").
	BinaryCompose
)

const (
	// TimeoutDefault is the class for quick calls (60s by default).
	TimeoutDefault TimeoutClass = iota
	// TimeoutLong is the class for registry and compose calls (300s by default).
	TimeoutLong
	// TimeoutBuild is the class for image builds (600s by default).
	TimeoutBuild
)

const (
	// FieldExecTimeout is the common field shortening (or, with FieldLongRunning,
	// extending) the timeout of any operation, in seconds.
	FieldExecTimeout = "execTimeout"
	// FieldLongRunning is the common switch allowing timeouts beyond the class default.
	FieldLongRunning = "longRunning"
)

// ErrDuplicateOperation is returned by NewRegistry when two definitions share a name.
var ErrDuplicateOperation = errors.New("duplicate operation")

type (
	// Name identifies one supported action, e.g. "docker-run".
	Name string

	// Binary selects the external executable for an operation.
	Binary int

	// TimeoutClass selects the default timeout for an operation.
	TimeoutClass int

	// Definition is the immutable description of one operation.
	Definition struct {
		// Name is the operation identifier.
		Name Name
		// Summary is a one-line description used in help and tool listings.
		Summary string
		// Binary selects docker or the compose companion.
		Binary Binary
		// Timeout selects the default timeout class.
		Timeout TimeoutClass
		// SkipDaemonProbe disables the liveness probe for calls that work without a daemon.
		SkipDaemonProbe bool
		// Fields enumerates every accepted field, excluding the common ones.
		Fields []Field
		// Positionals lists, in order, the fields filled by positional tokens.
		// A list-kind positional consumes every remaining positional token.
		Positionals []string
		// Passthrough names the list field receiving the tokens that follow the
		// positionals (exec-like operations). Flag parsing stops at the first positional.
		Passthrough string
		// Requires returns fields that become required depending on other values.
		Requires func(p Params) []string
		// Done is the content used when the command succeeds without output.
		Done string
		// Render optionally replaces the raw stdout in success content.
		Render func(p Params, stdout string) string
	}

	// Registry is an immutable set of definitions.
	Registry struct {
		defs  map[Name]*Definition
		order []Name
	}
)

// String returns the operation name.
func (n Name) String() string { return string(n) }

// String returns the binary's logical name.
func (b Binary) String() string {
	if b == BinaryCompose {
		return "compose"
	}
	return "docker"
}

// String returns the timeout class name.
func (c TimeoutClass) String() string {
	switch c {
	case TimeoutLong:
		return "long"
	case TimeoutBuild:
		return "build"
	default:
		return "default"
	}
}

// CommonFields returns the fields accepted by every operation.
func CommonFields() []Field {
	return []Field{
		{Name: FieldExecTimeout, Kind: KindInt, Usage: "timeout in seconds (capped at the operation default unless --long-running)"},
		{Name: FieldLongRunning, Kind: KindBool, Usage: "allow the timeout to exceed the operation default"},
	}
}

// AllFields returns the operation fields followed by the common fields.
func (d *Definition) AllFields() []Field {
	all := make([]Field, 0, len(d.Fields)+2)
	all = append(all, d.Fields...)
	return append(all, CommonFields()...)
}

// Field returns the named field, including common fields.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.AllFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the statically required field names in declaration order.
func (d *Definition) RequiredFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Usage renders a short usage line, e.g. "docker-stop [flags] CONTAINERS...".
func (d *Definition) Usage() string {
	var sb strings.Builder
	sb.WriteString(string(d.Name))
	sb.WriteString(" [flags]")
	for _, p := range d.Positionals {
		f, _ := d.Field(p)
		token := strings.ToUpper(flagName(p))
		if !f.Required {
			token = "[" + token + "]"
		}
		if f.Kind == KindList {
			token += "..."
		}
		sb.WriteString(" ")
		sb.WriteString(token)
	}
	if d.Passthrough != "" {
		sb.WriteString(" [")
		sb.WriteString(strings.ToUpper(flagName(d.Passthrough)))
		sb.WriteString("...]")
	}
	return sb.String()
}

// Validate checks the definition for internal consistency.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("operation name must not be empty")
	}
	seen := make(map[string]bool)
	shorts := make(map[string]bool)
	for _, f := range d.AllFields() {
		if seen[f.Name] {
			return fmt.Errorf("operation %s: duplicate field %q", d.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Short != "" {
			if shorts[f.Short] {
				return fmt.Errorf("operation %s: duplicate shorthand -%s", d.Name, f.Short)
			}
			shorts[f.Short] = true
		}
	}
	for i, p := range d.Positionals {
		f, ok := d.Field(p)
		if !ok {
			return fmt.Errorf("operation %s: positional %q is not a field", d.Name, p)
		}
		if f.Kind == KindList && i != len(d.Positionals)-1 {
			return fmt.Errorf("operation %s: list positional %q must be last", d.Name, p)
		}
	}
	if d.Passthrough != "" {
		f, ok := d.Field(d.Passthrough)
		if !ok || f.Kind != KindList {
			return fmt.Errorf("operation %s: passthrough %q must be a list field", d.Name, d.Passthrough)
		}
	}
	return nil
}

// NewRegistry builds an immutable registry, rejecting invalid or duplicate definitions.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[Name]*Definition, len(defs))}
	for i := range defs {
		d := defs[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.defs[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOperation, d.Name)
		}
		r.defs[d.Name] = &d
		r.order = append(r.order, d.Name)
	}
	return r, nil
}

// Builtin returns a registry holding every built-in operation.
func Builtin() *Registry {
	var defs []Definition
	defs = append(defs, containerDefinitions()...)
	defs = append(defs, imageDefinitions()...)
	defs = append(defs, networkDefinitions()...)
	defs = append(defs, volumeDefinitions()...)
	defs = append(defs, composeDefinitions()...)
	defs = append(defs, registryDefinitions()...)
	defs = append(defs, systemDefinitions()...)
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(fmt.Sprintf("built-in operation catalog is inconsistent: %v", err))
	}
	return r
}

// Lookup returns the definition for name.
func (r *Registry) Lookup(name Name) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns all operation names in registration order.
func (r *Registry) Names() []Name {
	out := make([]Name, len(r.order))
	copy(out, r.order)
	return out
}

// All returns all definitions in registration order.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.defs[n])
	}
	return out
}
