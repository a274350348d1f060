package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type ShapeKind int

const (
	ShapeScalar ShapeKind = iota
	ShapeBool
	ShapeInt
	ShapeList
	ShapeMap
	ShapeAny
)

// Rule checks and normalizes a single scalar. The returned FieldError has no
// Field set; the caller fills in the path.
type Rule func(value string) (string, *FieldError)

// Shape describes a nested value. A map shape either lists its Fields
// (closed key set) or constrains free keys with Keys and Values.
type Shape struct {
	Kind     ShapeKind
	Rule     Rule
	Fields   map[string]Shape
	Required []string
	Keys     Rule
	Values   *Shape
	Elem     *Shape
	MinLen   int
	Min, Max int
}

// Check walks value against the shape and returns its canonical form
// (map[string]any, []any, string, bool, int) plus every mismatch found,
// each reported at its dotted/indexed path.
func (s Shape) Check(path string, value any) (any, []FieldError) {
	switch s.Kind {
	case ShapeScalar:
		text, ok := scalarText(value)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be a single value"}}
		}
		text = strings.TrimSpace(text)
		if s.Rule == nil {
			return text, nil
		}
		normalized, fe := s.Rule(text)
		if fe != nil {
			fe.Field = path
			return nil, []FieldError{*fe}
		}
		return normalized, nil
	case ShapeBool:
		text, ok := scalarText(value)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be true or false"}}
		}
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(text)))
		if err != nil {
			return nil, []FieldError{{Field: path, Message: "must be true or false"}}
		}
		return b, nil
	case ShapeInt:
		text, ok := scalarText(value)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be a whole number"}}
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return nil, []FieldError{{Field: path, Message: "must be a whole number"}}
		}
		if n < s.Min || (s.Max > 0 && n > s.Max) {
			return nil, []FieldError{{Field: path, Message: fmt.Sprintf("must be between %d and %d", s.Min, s.Max)}}
		}
		return n, nil
	case ShapeList:
		return s.checkList(path, value)
	case ShapeMap:
		return s.checkMap(path, value)
	default:
		return canonical(value), nil
	}
}

func (s Shape) checkList(path string, value any) (any, []FieldError) {
	items, ok := asList(value)
	if !ok {
		return nil, []FieldError{{Field: path, Message: "must be a list"}}
	}
	if len(items) < s.MinLen {
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("must contain at least %d item(s)", s.MinLen)}}
	}
	elem := s.Elem
	if elem == nil {
		elem = &Shape{Kind: ShapeAny}
	}
	out := make([]any, 0, len(items))
	var errs []FieldError
	for i, item := range items {
		v, itemErrs := elem.Check(fmt.Sprintf("%s[%d]", path, i), item)
		errs = append(errs, itemErrs...)
		out = append(out, v)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s Shape) checkMap(path string, value any) (any, []FieldError) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, []FieldError{{Field: path, Message: "must be a mapping of keys to values"}}
	}
	if len(m) < s.MinLen {
		return nil, []FieldError{{Field: path, Message: "must not be empty"}}
	}

	var errs []FieldError
	for _, key := range s.Required {
		if _, ok := m[key]; !ok {
			errs = append(errs, FieldError{Field: path + "." + key, Message: "is required"})
		}
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make(map[string]any, len(m))
	for _, raw := range keys {
		child := path + "." + raw
		key := raw
		shape := Shape{Kind: ShapeAny}
		switch {
		case s.Fields != nil:
			known, ok := s.Fields[raw]
			if !ok {
				allowed := make([]string, 0, len(s.Fields))
				for name := range s.Fields {
					allowed = append(allowed, name)
				}
				slices.Sort(allowed)
				errs = append(errs, FieldError{Field: child, Message: "is not a recognised key", Allowed: allowed})
				continue
			}
			shape = known
		default:
			if s.Keys != nil {
				normalized, fe := s.Keys(raw)
				if fe != nil {
					fe.Field = child
					errs = append(errs, *fe)
					continue
				}
				key = normalized
			}
			if s.Values != nil {
				shape = *s.Values
			}
		}
		v, childErrs := shape.Check(child, m[raw])
		if len(childErrs) > 0 {
			errs = append(errs, childErrs...)
			continue
		}
		out[key] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func scalarText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// canonical rewrites arbitrary decoded values into map[string]any/[]any with
// string leaves so that records compare equal regardless of the decoder.
func canonical(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[key] = canonical(child)
		}
		return out
	default:
		if list, ok := asList(v); ok {
			out := make([]any, len(list))
			for i, child := range list {
				out[i] = canonical(child)
			}
			return out
		}
		text, _ := scalarText(v)
		return text
	}
}
