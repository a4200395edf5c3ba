// SPDX-License-Identifier: MPL-2.0

package operationtest

import (
	"slices"
	"strconv"
	"testing"

	"github.com/dockwright/dockwright/internal/operation"
)

// checkedSamples holds accepted values for fields that carry a value check.
var checkedSamples = map[string]string{
	"imageName": "nginx:1.27",
	"source":    "nginx:1.27",
	"target":    "app:1",
	"tag":       "app:1",
	"ports":     "8080:80",
	"memory":    "512m",
	"cpus":      "1.5",
	"restart":   "on-failure:3",
}

// SampleValue returns a string value of f that normalizes without error: the first
// enum member, a known-good value for checked fields, else free text with a space.
func SampleValue(t testing.TB, f operation.Field) string {
	t.Helper()
	if len(f.Enum) > 0 {
		return f.Enum[0]
	}
	if v, ok := checkedSamples[f.Name]; ok {
		return v
	}
	if f.Check != nil && f.Kind != operation.KindMap {
		t.Fatalf("no sample value for checked field %q", f.Name)
	}
	return f.Name + " value"
}

// SampleParams returns canonical params for def. Every field is set, switches to
// their non-default value, unless requiredOnly limits it to the statically
// required fields.
func SampleParams(t testing.TB, def *operation.Definition, requiredOnly bool) operation.Params {
	t.Helper()
	p := operation.Params{}
	for _, f := range def.AllFields() {
		if requiredOnly && !f.Required {
			continue
		}
		switch f.Kind {
		case operation.KindBool:
			p[f.Name] = !f.BoolDefault()
		case operation.KindInt:
			p[f.Name] = 7
		case operation.KindString:
			p[f.Name] = SampleValue(t, f)
		case operation.KindList:
			v := SampleValue(t, f)
			if f.Check != nil || len(f.Enum) > 0 {
				p[f.Name] = []string{v}
			} else {
				p[f.Name] = []string{v + " 1", v + " 2"}
			}
		case operation.KindMap:
			p[f.Name] = map[string]string{"A": "1", "B": "two words"}
		}
	}
	return p
}

// Tokens renders p in the token form of def: flags first, then positionals in
// declaration order, then the passthrough command. Rendering stops at the first
// absent positional, so later values never shift into its place.
func Tokens(def *operation.Definition, p operation.Params) []string {
	var out []string
	for _, f := range def.AllFields() {
		v, ok := p[f.Name]
		if !ok || f.Name == def.Passthrough || slices.Contains(def.Positionals, f.Name) {
			continue
		}
		flag := "--" + f.FlagName()
		switch tv := v.(type) {
		case bool:
			out = append(out, flag+"="+strconv.FormatBool(tv))
		case int:
			out = append(out, flag, strconv.Itoa(tv))
		case string:
			out = append(out, flag, tv)
		case []string:
			for _, e := range tv {
				out = append(out, flag, e)
			}
		case map[string]string:
			keys := make([]string, 0, len(tv))
			for k := range tv {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				out = append(out, flag, k+"="+tv[k])
			}
		}
	}

	for _, name := range def.Positionals {
		v, ok := p[name]
		if !ok {
			return out
		}
		switch tv := v.(type) {
		case string:
			out = append(out, tv)
		case []string:
			out = append(out, tv...)
		}
	}
	return append(out, p.List(def.Passthrough)...)
}
