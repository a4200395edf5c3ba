// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
)

// ErrDuplicateName is returned by NewTable when two entries share a name.
var ErrDuplicateName = errors.New("duplicate alias")

type (
	// Step is one operation of a workflow.
	Step struct {
		// Operation is the operation run by the step.
		Operation operation.Name
		// Source maps the workflow's canonical parameters to the step's object input.
		Source func(p operation.Params) map[string]any
	}

	// Entry is one row of the dispatch table.
	Entry struct {
		// Alias is the caller-facing name.
		Alias string
		// Operation is the target operation; empty for workflows.
		Operation operation.Name
		// Fixed holds parameters bound by the alias. Caller input may repeat them but not
		// change them.
		Fixed map[string]any
		// Summary is a one-line description. Defaults to the operation summary.
		Summary string
		// Workflow is the input schema of a workflow entry.
		Workflow *operation.Definition
		// Steps lists the workflow's operations in execution order.
		Steps []Step
	}

	// Table is the immutable dispatch table. Lookups are O(1) and safe for
	// concurrent use.
	Table struct {
		ops     *operation.Registry
		entries map[string]*Entry
		order   []string
	}
)

// IsWorkflow reports whether the entry chains several operations.
func (e *Entry) IsWorkflow() bool {
	return len(e.Steps) > 0
}

// IsOperation reports whether the entry is an operation resolving to itself.
func (e *Entry) IsOperation() bool {
	return !e.IsWorkflow() && string(e.Operation) == e.Alias && len(e.Fixed) == 0
}

// FixedParams returns a copy of the alias-bound parameters.
func (e *Entry) FixedParams() map[string]any {
	if len(e.Fixed) == 0 {
		return nil
	}
	return maps.Clone(e.Fixed)
}

// NewTable builds a table holding every operation of ops plus the given entries.
// Names must be unique across operations and entries; every referenced operation
// must exist and every fixed parameter must be one of its fields.
func NewTable(ops *operation.Registry, entries ...Entry) (*Table, error) {
	t := &Table{
		ops:     ops,
		entries: make(map[string]*Entry, len(ops.Names())+len(entries)),
	}
	for _, def := range ops.All() {
		t.add(&Entry{Alias: string(def.Name), Operation: def.Name, Summary: def.Summary})
	}
	for i := range entries {
		e := entries[i]
		if err := t.validate(&e); err != nil {
			return nil, err
		}
		if _, dup := t.entries[e.Alias]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, e.Alias)
		}
		e.Fixed = maps.Clone(e.Fixed)
		e.Steps = slices.Clone(e.Steps)
		t.add(&e)
	}
	return t, nil
}

func (t *Table) add(e *Entry) {
	t.entries[e.Alias] = e
	t.order = append(t.order, e.Alias)
}

func (t *Table) validate(e *Entry) error {
	if e.Alias == "" {
		return errors.New("alias name must not be empty")
	}
	if e.IsWorkflow() {
		if e.Workflow == nil {
			return fmt.Errorf("workflow %s: missing input schema", e.Alias)
		}
		if err := e.Workflow.Validate(); err != nil {
			return fmt.Errorf("workflow %s: %w", e.Alias, err)
		}
		for i, s := range e.Steps {
			if _, ok := t.ops.Lookup(s.Operation); !ok {
				return fmt.Errorf("workflow %s: step %d: unknown operation %q", e.Alias, i+1, s.Operation)
			}
			if s.Source == nil {
				return fmt.Errorf("workflow %s: step %d: missing parameter source", e.Alias, i+1)
			}
		}
		if e.Summary == "" {
			e.Summary = e.Workflow.Summary
		}
		return nil
	}

	def, ok := t.ops.Lookup(e.Operation)
	if !ok {
		return fmt.Errorf("alias %s: unknown operation %q", e.Alias, e.Operation)
	}
	for key := range e.Fixed {
		if _, ok := def.Field(key); !ok {
			return fmt.Errorf("alias %s: %q is not a field of %s", e.Alias, key, def.Name)
		}
	}
	if e.Summary == "" {
		e.Summary = def.Summary
	}
	return nil
}

// Resolve returns the entry for an alias, workflow or operation name.
func (t *Table) Resolve(name string) (*Entry, error) {
	if e, ok := t.entries[name]; ok {
		return e, nil
	}
	return nil, &fault.Error{
		Kind:    fault.UnknownOperation,
		Field:   name,
		Message: fmt.Sprintf("unknown command %q", name),
	}
}

// Definition returns the input schema of an entry: the workflow schema, or the
// target operation's definition.
func (t *Table) Definition(e *Entry) *operation.Definition {
	if e.IsWorkflow() {
		return e.Workflow
	}
	def, _ := t.ops.Lookup(e.Operation)
	return def
}

// Operation returns the definition of a registered operation.
func (t *Table) Operation(name operation.Name) (*operation.Definition, bool) {
	return t.ops.Lookup(name)
}

// Names returns every name in registration order: operations first, then aliases
// and workflows.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

// Entries returns every entry in registration order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, t.entries[n])
	}
	return out
}

// Aliases returns the alias and workflow entries, excluding plain operations.
func (t *Table) Aliases() []*Entry {
	var out []*Entry
	for _, e := range t.Entries() {
		if !e.IsOperation() {
			out = append(out, e)
		}
	}
	return out
}
