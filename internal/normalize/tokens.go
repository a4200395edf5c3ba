// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
)

// FlagSet builds the pflag set accepted by def in token form. Positional and
// passthrough fields are not flags.
func FlagSet(def *operation.Definition) *pflag.FlagSet {
	fs := pflag.NewFlagSet(string(def.Name), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	// Exec-like operations stop at the resource identifier; everything after it
	// belongs to the command run inside the container.
	fs.SetInterspersed(def.Passthrough == "")

	for _, f := range def.AllFields() {
		if isPositional(def, f.Name) {
			continue
		}
		switch f.Kind {
		case operation.KindBool:
			fs.BoolP(f.FlagName(), f.Short, f.BoolDefault(), f.Usage)
		case operation.KindList, operation.KindMap:
			fs.StringArrayP(f.FlagName(), f.Short, nil, f.Usage)
		default:
			fs.StringP(f.FlagName(), f.Short, "", f.Usage)
		}
	}
	return fs
}

func fromTokens(def *operation.Definition, tokens []string) (raw, error) {
	fs := FlagSet(def)
	if err := fs.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &fault.Error{
			Kind:    fault.InvalidEnum,
			Message: fmt.Sprintf("%s (not one of the accepted options for %s)", err, def.Name),
			Cause:   err,
		}
	}

	r := make(raw)
	byFlag := make(map[string]operation.Field)
	for _, f := range def.AllFields() {
		byFlag[f.FlagName()] = f
	}

	var visitErr error
	fs.Visit(func(fl *pflag.Flag) {
		f, ok := byFlag[fl.Name]
		if !ok || visitErr != nil {
			return
		}
		switch f.Kind {
		case operation.KindBool:
			v, err := fs.GetBool(fl.Name)
			if err != nil {
				visitErr = fault.Invalid(f.Name, "%v", err)
				return
			}
			r[f.Name] = v
		case operation.KindList, operation.KindMap:
			v, err := fs.GetStringArray(fl.Name)
			if err != nil {
				visitErr = fault.Invalid(f.Name, "%v", err)
				return
			}
			r[f.Name] = v
		default:
			r[f.Name] = fl.Value.String()
		}
	})
	if visitErr != nil {
		return nil, visitErr
	}

	if err := assignPositionals(def, fs.Args(), r); err != nil {
		return nil, err
	}
	return r, nil
}

// assignPositionals fills declared positional fields in order. A list positional takes
// every remaining token; leftovers go to the passthrough field or are rejected.
func assignPositionals(def *operation.Definition, args []string, r raw) error {
	rest := args
	for _, name := range def.Positionals {
		if len(rest) == 0 {
			break
		}
		f, _ := def.Field(name)
		if f.Kind == operation.KindList {
			r[name] = slices.Clone(rest)
			rest = nil
			break
		}
		r[name] = rest[0]
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil
	}
	if def.Passthrough != "" {
		r[def.Passthrough] = slices.Clone(rest)
		return nil
	}
	return &fault.Error{
		Kind:    fault.InvalidEnum,
		Message: fmt.Sprintf("unexpected argument %q (not one of the accepted options for %s)", rest[0], def.Name),
	}
}

func isPositional(def *operation.Definition, name string) bool {
	return name == def.Passthrough || slices.Contains(def.Positionals, name)
}
