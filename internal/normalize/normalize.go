// SPDX-License-Identifier: MPL-2.0

// Package normalize converts caller input into canonical operation parameters.
//
// Two adapters feed one canonicalizer: the token adapter parses CLI-style argument
// lists with pflag, the object adapter coerces JSON-decoded objects. Both produce the
// same raw form (bool, string, or []string per field), so equivalent inputs always
// yield identical Params.
package normalize

import (
	"errors"
	"maps"
	"reflect"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
)

// ErrHelp is returned when token input asks for help (-h or --help).
var ErrHelp = errors.New("help requested")

type (
	// Input is either a token list or a structured object.
	Input struct {
		tokens   []string
		object   map[string]any
		isObject bool
	}

	// raw holds adapter output keyed by field name. Values are bool for switches,
	// string for string and int fields, []string for list and map fields.
	raw map[string]any
)

// Tokens wraps a CLI-style argument list.
func Tokens(args ...string) Input {
	return Input{tokens: args}
}

// Object wraps a structured (JSON-decoded) object.
func Object(obj map[string]any) Input {
	return Input{object: obj, isObject: true}
}

// IsObject reports whether the input is structured.
func (in Input) IsObject() bool { return in.isObject }

// Normalize validates input against def and returns canonical parameters. Values in
// fixed (alias-bound parameters) are merged into caller input; a caller value that
// differs from a bound one is rejected. The only errors are ErrHelp and *fault.Error
// of kind MissingRequiredField or InvalidEnum.
func Normalize(def *operation.Definition, in Input, fixed map[string]any) (operation.Params, error) {
	var (
		r   raw
		err error
	)
	if in.isObject {
		r, err = fromObject(def, in.object)
	} else {
		r, err = fromTokens(def, in.tokens)
	}
	if err != nil {
		return nil, err
	}

	if len(fixed) > 0 {
		f, err := fromObject(def, fixed)
		if err != nil {
			return nil, err
		}
		for _, name := range sortedKeys(f) {
			if given, ok := r[name]; ok && !reflect.DeepEqual(given, f[name]) {
				return nil, fault.Invalid(name, "%v is bound to %v by this alias", given, f[name])
			}
		}
		maps.Copy(r, f)
	}
	return canonicalize(def, r)
}
