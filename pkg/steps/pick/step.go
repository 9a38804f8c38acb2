// Package pick implements the `pick` workflow step: keep only a
// comma-separated list of top-level fields, element-wise on arrays or once
// on a single object.
package pick

import (
	"errors"
	"strings"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Step keeps the listed fields.
type Step struct {
	fields []string
}

func NewStep(config string) (*Step, error) {
	fields := splitFields(config)
	if len(fields) == 0 {
		return nil, errors.New("pick config is empty")
	}

	return &Step{fields: fields}, nil
}

func splitFields(config string) []string {
	var fields []string

	for _, part := range strings.Split(config, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}

	return fields
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	switch value.Kind() {
	case jsonvalue.KindArray:
		out := make([]*jsonvalue.Value, 0, value.Len())
		for _, item := range value.Items() {
			out = append(out, s.pick(item))
		}

		return jsonvalue.NewArray(out...), nil
	case jsonvalue.KindObject:
		return s.pick(value), nil
	default:
		return value, nil
	}
}

// pick keeps the listed fields in the source object's key order.
func (s *Step) pick(item *jsonvalue.Value) *jsonvalue.Value {
	if item.Kind() != jsonvalue.KindObject {
		return item
	}

	out := jsonvalue.NewObject()

	for _, key := range item.Keys() {
		if !s.wanted(key) {
			continue
		}

		field, _ := item.Field(key)
		out.Set(key, field)
	}

	return out
}

func (s *Step) wanted(key string) bool {
	for _, field := range s.fields {
		if field == key {
			return true
		}
	}

	return false
}
