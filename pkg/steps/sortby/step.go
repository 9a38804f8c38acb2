// Package sortby implements the `sort` workflow step: a stable sort of array
// elements by a field, using locale-aware numeric-sensitive string
// comparison (so "item2" sorts before "item10").
package sortby

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Step sorts arrays by one field. Non-array inputs pass through unchanged.
type Step struct {
	path       accessor.Accessor
	descending bool
	collator   *collate.Collator
}

// NewStep parses `field [asc|desc]` config text.
func NewStep(config string) (*Step, error) {
	fields := strings.Fields(strings.TrimSpace(config))
	if len(fields) == 0 {
		return nil, fmt.Errorf("sort config is empty")
	}

	descending := false

	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "asc":
		case "desc":
			descending = true
		default:
			return nil, fmt.Errorf("invalid sort direction %q", fields[1])
		}
	}

	path, err := accessor.ParsePath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid sort field %q: %w", fields[0], err)
	}

	return &Step{
		path:       path,
		descending: descending,
		collator:   collate.New(language.Und, collate.Numeric),
	}, nil
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	if value.Kind() != jsonvalue.KindArray {
		return value, nil
	}

	items := append([]*jsonvalue.Value(nil), value.Items()...)

	sort.SliceStable(items, func(i, j int) bool {
		cmp := s.collator.CompareString(s.key(items[i]), s.key(items[j]))
		if s.descending {
			return cmp > 0
		}

		return cmp < 0
	})

	return jsonvalue.NewArray(items...), nil
}

// key renders the sort field as text; absent fields sort as the empty
// string, placing them first in ascending order.
func (s *Step) key(item *jsonvalue.Value) string {
	resolved, found := s.path.Apply(item)
	if !found || resolved.IsNull() {
		return ""
	}

	if resolved.Kind() == jsonvalue.KindString {
		return resolved.Str()
	}

	return resolved.Render()
}
