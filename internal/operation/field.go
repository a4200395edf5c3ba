// SPDX-License-Identifier: MPL-2.0

package operation

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// KindBool is a switch; present in Params only when it differs from its default.
	KindBool FieldKind = iota
	// KindString is a free-form or enum-restricted string.
	KindString
	// KindInt is a non-negative integer.
	KindInt
	// KindList is an ordered, repeatable string value.
	KindList
	// KindMap is a set of KEY=VALUE pairs.
	KindMap
)

type (
	// FieldKind is the value type of a Field.
	FieldKind int

	// Field describes one logical parameter of an operation.
	Field struct {
		// Name is the canonical (object form) key, e.g. "imageName".
		Name string
		// Kind is the value type.
		Kind FieldKind
		// Short is the single-letter token shorthand, if any.
		Short string
		// Flag overrides the long token flag name. Defaults to the kebab-case Name.
		Flag string
		// Usage is the help text.
		Usage string
		// Required marks fields that must be present after normalization.
		Required bool
		// Enum restricts string values to a closed set.
		Enum []string
		// Default is the default of a bool field (false when nil).
		Default any
		// Check validates each string value (every element for list fields).
		Check func(string) error
	}
)

// String returns the kind name used in schemas and messages.
func (k FieldKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "string"
	}
}

// FlagName returns the long token flag name.
func (f Field) FlagName() string {
	if f.Flag != "" {
		return f.Flag
	}
	return flagName(f.Name)
}

// BoolDefault returns the default of a bool field.
func (f Field) BoolDefault() bool {
	b, _ := f.Default.(bool)
	return b
}

// InEnum reports whether v belongs to the field's closed set. Fields without
// a closed set accept every value.
func (f Field) InEnum(v string) bool {
	return len(f.Enum) == 0 || slices.Contains(f.Enum, v)
}

// flagName converts a camelCase field name to its kebab-case flag spelling.
func flagName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
