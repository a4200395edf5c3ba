// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/operation"
)

func fromObject(def *operation.Definition, obj map[string]any) (raw, error) {
	r := make(raw, len(obj))
	for _, key := range sortedKeys(obj) {
		f, ok := def.Field(key)
		if !ok {
			return nil, &fault.Error{
				Kind:    fault.InvalidEnum,
				Field:   key,
				Message: fmt.Sprintf("unknown field %q (not one of the accepted options for %s)", key, def.Name),
			}
		}
		v := obj[key]
		if v == nil {
			continue
		}
		coerced, err := coerce(def, f, v)
		if err != nil {
			return nil, err
		}
		r[key] = coerced
	}
	return r, nil
}

func coerce(def *operation.Definition, f operation.Field, v any) (any, error) {
	switch f.Kind {
	case operation.KindBool:
		switch tv := v.(type) {
		case bool:
			return tv, nil
		case string:
			b, err := strconv.ParseBool(tv)
			if err != nil {
				return nil, fault.Invalid(f.Name, "expected a boolean, got %q", tv)
			}
			return b, nil
		}
		return nil, fault.Invalid(f.Name, "expected a boolean, got %T", v)

	case operation.KindString, operation.KindInt:
		s, ok := scalar(v)
		if !ok {
			return nil, fault.Invalid(f.Name, "expected a %s, got %T", f.Kind, v)
		}
		return s, nil

	case operation.KindList:
		if s, ok := v.(string); ok {
			if f.Name == def.Passthrough {
				return strings.Fields(s), nil
			}
			return []string{s}, nil
		}
		return stringList(f, v)

	case operation.KindMap:
		switch tv := v.(type) {
		case map[string]any:
			pairs := make([]string, 0, len(tv))
			for _, k := range sortedKeys(tv) {
				s, ok := scalar(tv[k])
				if !ok {
					return nil, fault.Invalid(f.Name, "value of %q must be a scalar, got %T", k, tv[k])
				}
				pairs = append(pairs, k+"="+s)
			}
			return pairs, nil
		case map[string]string:
			pairs := make([]string, 0, len(tv))
			for _, k := range sortedKeys(tv) {
				pairs = append(pairs, k+"="+tv[k])
			}
			return pairs, nil
		case string:
			return []string{tv}, nil
		}
		return stringList(f, v)
	}
	return nil, fault.Invalid(f.Name, "unsupported value %T", v)
}

func stringList(f operation.Field, v any) ([]string, error) {
	switch tv := v.(type) {
	case []string:
		return slices.Clone(tv), nil
	case []any:
		out := make([]string, 0, len(tv))
		for i, e := range tv {
			s, ok := scalar(e)
			if !ok {
				return nil, fault.Invalid(f.Name, "element %d must be a scalar, got %T", i, e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fault.Invalid(f.Name, "expected a list, got %T", v)
}

// scalar renders JSON scalars as strings. Integral floats render without a fraction
// so that 10 and "10" are equivalent.
func scalar(v any) (string, bool) {
	switch tv := v.(type) {
	case string:
		return tv, true
	case json.Number:
		return tv.String(), true
	case float64:
		if tv == math.Trunc(tv) && !math.IsInf(tv, 0) {
			return strconv.FormatInt(int64(tv), 10), true
		}
		return strconv.FormatFloat(tv, 'f', -1, 64), true
	case int:
		return strconv.Itoa(tv), true
	case int64:
		return strconv.FormatInt(tv, 10), true
	case bool:
		return strconv.FormatBool(tv), true
	}
	return "", false
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
