// SPDX-License-Identifier: MPL-2.0

package mcpserver

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dockwright/dockwright/internal/operation"
)

// InputSchema returns the JSON schema of a tool's arguments. Fields bound by the
// alias (fixed) are omitted.
func InputSchema(def *operation.Definition, fixed map[string]any) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema)
	for _, f := range def.AllFields() {
		if _, bound := fixed[f.Name]; bound {
			continue
		}
		props[f.Name] = fieldSchema(def, f)
	}
	return &jsonschema.Schema{Type: "object", Properties: props}
}

func fieldSchema(def *operation.Definition, f operation.Field) *jsonschema.Schema {
	s := &jsonschema.Schema{Description: f.Usage}
	switch f.Kind {
	case operation.KindBool:
		s.Type = "boolean"
		if f.BoolDefault() {
			s.Default = json.RawMessage("true")
		}
	case operation.KindString:
		s.Type = "string"
		for _, v := range f.Enum {
			s.Enum = append(s.Enum, v)
		}
	case operation.KindInt:
		s.Type = "integer"
		zero := 0.0
		s.Minimum = &zero
	case operation.KindList:
		s.Items = &jsonschema.Schema{Type: "string"}
		if f.Name == def.Passthrough {
			// a command line may also be given as one whitespace-separated string
			s.Types = []string{"array", "string"}
		} else {
			s.Type = "array"
		}
	case operation.KindMap:
		s.Type = "object"
		s.AdditionalProperties = &jsonschema.Schema{Type: "string"}
	}
	return s
}
