// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"fmt"
	"strings"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
)

// canonicalize validates adapter output and produces Params. It is pure: the same
// definition and raw values always produce the same result.
func canonicalize(def *operation.Definition, r raw) (operation.Params, error) {
	p := make(operation.Params, len(r))

	for _, f := range def.AllFields() {
		v, ok := r[f.Name]
		if !ok {
			continue
		}
		switch f.Kind {
		case operation.KindBool:
			b, _ := v.(bool)
			if b != f.BoolDefault() {
				p[f.Name] = b
			}

		case operation.KindString:
			// Values reach the engine byte for byte; a blank required value counts
			// as missing.
			s := asString(v)
			if s == "" || (f.Required && isBlank(s)) {
				continue
			}
			if err := checkValue(f, s); err != nil {
				return nil, err
			}
			p[f.Name] = s

		case operation.KindInt:
			s := strings.TrimSpace(asString(v))
			if s == "" {
				continue
			}
			n, err := operation.ParseCount(s)
			if err != nil {
				return nil, fault.Invalid(f.Name, "%v", err)
			}
			p[f.Name] = n

		case operation.KindList:
			// Empty elements of a passthrough command are real arguments.
			keepEmpty := f.Name == def.Passthrough
			var list []string
			for _, s := range asList(v) {
				if s == "" && !keepEmpty {
					continue
				}
				if err := checkValue(f, s); err != nil {
					return nil, err
				}
				list = append(list, s)
			}
			if len(list) > 0 {
				p[f.Name] = list
			}

		case operation.KindMap:
			m, err := pairs(f, asList(v))
			if err != nil {
				return nil, err
			}
			if len(m) > 0 {
				p[f.Name] = m
			}
		}
	}

	required := def.RequiredFields()
	if def.Requires != nil {
		required = append(required, def.Requires(p)...)
	}
	for _, name := range required {
		if s, ok := p[name].(string); !p.Has(name) || (ok && isBlank(s)) {
			return nil, fault.Missing(name)
		}
	}
	return p, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func checkValue(f operation.Field, s string) error {
	if !f.InEnum(s) {
		return fault.Invalid(f.Name, "%q is not one of %s", s, strings.Join(f.Enum, ", "))
	}
	if f.Check != nil && f.Kind != operation.KindMap {
		if err := f.Check(s); err != nil {
			return fault.Invalid(f.Name, "%v", err)
		}
	}
	return nil
}

// pairs parses KEY=VALUE entries. A repeated key keeps its last value.
func pairs(f operation.Field, entries []string) (map[string]string, error) {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fault.Invalid(f.Name, "expected KEY=VALUE, got %q", e)
		}
		check := f.Check
		if check == nil {
			check = operation.CheckEnvKey
		}
		if err := check(k); err != nil {
			return nil, fault.Invalid(f.Name, "%v", err)
		}
		m[k] = v
	}
	return m, nil
}

func asString(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func asList(v any) []string {
	switch tv := v.(type) {
	case []string:
		return tv
	case string:
		return []string{tv}
	}
	return nil
}
