// Package omit implements the `omit` workflow step: drop a comma-separated
// list of top-level fields, element-wise on arrays or once on a single
// object.
package omit

import (
	"errors"
	"strings"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Step drops the listed fields.
type Step struct {
	fields []string
}

func NewStep(config string) (*Step, error) {
	var fields []string

	for _, part := range strings.Split(config, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}

	if len(fields) == 0 {
		return nil, errors.New("omit config is empty")
	}

	return &Step{fields: fields}, nil
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	switch value.Kind() {
	case jsonvalue.KindArray:
		out := make([]*jsonvalue.Value, 0, value.Len())
		for _, item := range value.Items() {
			out = append(out, s.omit(item))
		}

		return jsonvalue.NewArray(out...), nil
	case jsonvalue.KindObject:
		return s.omit(value), nil
	default:
		return value, nil
	}
}

func (s *Step) omit(item *jsonvalue.Value) *jsonvalue.Value {
	if item.Kind() != jsonvalue.KindObject {
		return item
	}

	out := jsonvalue.NewObject()

	for _, key := range item.Keys() {
		if s.dropped(key) {
			continue
		}

		field, _ := item.Field(key)
		out.Set(key, field)
	}

	return out
}

func (s *Step) dropped(key string) bool {
	for _, field := range s.fields {
		if field == key {
			return true
		}
	}

	return false
}
