// Package filter implements the `filter` workflow step: keep array elements
// (or a scalar value) matching `field OP value`.
package filter

import (
	"strconv"
	"strings"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// operators in matching priority: two-character operators and `contains`
// before their single-character prefixes.
var operators = []string{">=", "<=", "!=", "==", "contains", ">", "<"}

// Step filters by a single field predicate. A config that doesn't parse as a
// predicate matches everything; that leniency keeps half-typed workflows
// runnable.
type Step struct {
	path    accessor.Accessor
	op      string
	literal *jsonvalue.Value
	always  bool
}

// NewStep parses `field OP value`, scanning left to right for the first
// operator token.
func NewStep(config string) (*Step, error) {
	text := strings.TrimSpace(config)

	op, idx := firstOperator(text)
	if idx < 0 {
		return &Step{always: true}, nil
	}

	fieldText := strings.TrimSpace(text[:idx])
	literalText := strings.TrimSpace(text[idx+len(op):])

	if fieldText == "" || literalText == "" {
		return &Step{always: true}, nil
	}

	path, err := accessor.ParsePath(fieldText)
	if err != nil {
		return &Step{always: true}, nil
	}

	return &Step{path: path, op: op, literal: parseLiteral(literalText)}, nil
}

// firstOperator returns the earliest operator occurrence; on a position tie
// the longer token wins (>= beats >).
func firstOperator(text string) (string, int) {
	best := -1
	bestOp := ""

	for _, op := range operators {
		idx := strings.Index(text, op)
		if idx < 0 {
			continue
		}

		if best == -1 || idx < best {
			best = idx
			bestOp = op
		}
	}

	return bestOp, best
}

func parseLiteral(text string) *jsonvalue.Value {
	switch text {
	case "null":
		return jsonvalue.Null
	case "true":
		return jsonvalue.NewBool(true)
	case "false":
		return jsonvalue.NewBool(false)
	}

	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') ||
			(text[0] == '\'' && text[len(text)-1] == '\'') {
			return jsonvalue.NewString(text[1 : len(text)-1])
		}
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return jsonvalue.NewNumber(f)
	}

	return jsonvalue.NewString(text)
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	if s.always {
		return value, nil
	}

	if value.Kind() == jsonvalue.KindArray {
		out := []*jsonvalue.Value{}

		for _, item := range value.Items() {
			if s.matches(item) {
				out = append(out, item)
			}
		}

		return jsonvalue.NewArray(out...), nil
	}

	if s.matches(value) {
		return value, nil
	}

	return jsonvalue.Null, nil
}

func (s *Step) matches(item *jsonvalue.Value) bool {
	resolved, found := s.path.Apply(item)
	if !found {
		return false
	}

	switch s.op {
	case "==":
		return jsonvalue.LooseEqual(resolved, s.literal)
	case "!=":
		return !jsonvalue.LooseEqual(resolved, s.literal)
	case "contains":
		return contains(resolved, s.literal)
	}

	cmp, ok := jsonvalue.Compare(resolved, s.literal)
	if !ok {
		return false
	}

	switch s.op {
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	}

	return false
}

// contains is substring match on strings and membership on arrays.
func contains(haystack, needle *jsonvalue.Value) bool {
	switch haystack.Kind() {
	case jsonvalue.KindString:
		var text string
		if needle.Kind() == jsonvalue.KindString {
			text = needle.Str()
		} else {
			text = needle.Render()
		}

		return strings.Contains(haystack.Str(), text)
	case jsonvalue.KindArray:
		for _, item := range haystack.Items() {
			if jsonvalue.LooseEqual(item, needle) {
				return true
			}
		}

		return false
	default:
		return false
	}
}
