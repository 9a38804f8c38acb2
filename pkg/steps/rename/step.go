// Package rename implements the `rename` workflow step: rewrite object keys
// per a comma-separated list of `old:new` pairs. Keys without a pair pass
// through unchanged, and key order is preserved.
package rename

import (
	"errors"
	"fmt"
	"strings"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Step renames object keys.
type Step struct {
	mapping map[string]string
}

func NewStep(config string) (*Step, error) {
	mapping := make(map[string]string)

	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		old, replacement, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid rename pair %q, want old:new", part)
		}

		old = strings.TrimSpace(old)
		replacement = strings.TrimSpace(replacement)

		if old == "" || replacement == "" {
			return nil, fmt.Errorf("invalid rename pair %q, want old:new", part)
		}

		mapping[old] = replacement
	}

	if len(mapping) == 0 {
		return nil, errors.New("rename config is empty")
	}

	return &Step{mapping: mapping}, nil
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	switch value.Kind() {
	case jsonvalue.KindArray:
		out := make([]*jsonvalue.Value, 0, value.Len())
		for _, item := range value.Items() {
			out = append(out, s.rename(item))
		}

		return jsonvalue.NewArray(out...), nil
	case jsonvalue.KindObject:
		return s.rename(value), nil
	default:
		return value, nil
	}
}

func (s *Step) rename(item *jsonvalue.Value) *jsonvalue.Value {
	if item.Kind() != jsonvalue.KindObject {
		return item
	}

	out := jsonvalue.NewObject()

	for _, key := range item.Keys() {
		field, _ := item.Field(key)

		if replacement, ok := s.mapping[key]; ok {
			out.Set(replacement, field)
		} else {
			out.Set(key, field)
		}
	}

	return out
}
