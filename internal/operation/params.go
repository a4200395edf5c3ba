// SPDX-License-Identifier: MPL-2.0

package operation

import (
	"maps"
	"slices"
)

// Params is the canonical parameter set of one invocation. Values are string, bool,
// int, []string or map[string]string. Absent optional fields have no key.
type Params map[string]any

// Has reports whether name is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String returns the string value of name, or "".
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Bool returns the bool value of name, or false.
func (p Params) Bool(name string) bool {
	return p.BoolOr(name, false)
}

// BoolOr returns the bool value of name, or def when absent.
func (p Params) BoolOr(name string, def bool) bool {
	if b, ok := p[name].(bool); ok {
		return b
	}
	return def
}

// Int returns the int value of name and whether it was present.
func (p Params) Int(name string) (int, bool) {
	n, ok := p[name].(int)
	return n, ok
}

// List returns the list value of name, or nil.
func (p Params) List(name string) []string {
	l, _ := p[name].([]string)
	return l
}

// Map returns the map value of name, or nil.
func (p Params) Map(name string) map[string]string {
	m, _ := p[name].(map[string]string)
	return m
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		switch tv := v.(type) {
		case []string:
			out[k] = slices.Clone(tv)
		case map[string]string:
			out[k] = maps.Clone(tv)
		default:
			out[k] = v
		}
	}
	return out
}

// Object converts p to a JSON-friendly object (lists as []any, maps as map[string]any).
// Normalizing the result as object input yields p again.
func (p Params) Object() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		switch tv := v.(type) {
		case []string:
			l := make([]any, len(tv))
			for i, s := range tv {
				l[i] = s
			}
			out[k] = l
		case map[string]string:
			m := make(map[string]any, len(tv))
			for mk, mv := range tv {
				m[mk] = mv
			}
			out[k] = m
		default:
			out[k] = v
		}
	}
	return out
}
