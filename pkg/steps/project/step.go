// Package project implements the `map` workflow step: field projection with
// optional rename over every element of an array.
package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

type entry struct {
	target string
	source accessor.Accessor
}

// Step projects `target` or `target:source.path` entries over array elements.
type Step struct {
	entries []entry
}

// NewStep parses config text of the form `a, b:c.d`. An entry without a
// colon keeps its own name; `new:source` projects the source path under the
// new name.
func NewStep(config string) (*Step, error) {
	parts := strings.Split(config, ",")
	entries := make([]entry, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		target := part
		sourceText := part

		if i := strings.IndexByte(part, ':'); i >= 0 {
			target = strings.TrimSpace(part[:i])
			sourceText = strings.TrimSpace(part[i+1:])
		}

		if target == "" || sourceText == "" {
			return nil, fmt.Errorf("invalid projection entry %q", part)
		}

		source, err := accessor.ParsePath(sourceText)
		if err != nil {
			return nil, fmt.Errorf("invalid projection source %q: %w", sourceText, err)
		}

		entries = append(entries, entry{target: target, source: source})
	}

	if len(entries) == 0 {
		return nil, errors.New("projection config is empty")
	}

	return &Step{entries: entries}, nil
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	if value.Kind() != jsonvalue.KindArray {
		return nil, fmt.Errorf("map step requires an array input, got %s", value.TypeTag())
	}

	out := make([]*jsonvalue.Value, 0, value.Len())

	for _, item := range value.Items() {
		projected := jsonvalue.NewObject()

		for _, e := range s.entries {
			// Absent source paths are omitted from the projection rather
			// than producing nulls.
			if resolved, ok := e.source.Apply(item); ok {
				projected.Set(e.target, resolved)
			}
		}

		out = append(out, projected)
	}

	return jsonvalue.NewArray(out...), nil
}
