package jsonata

import (
	"strconv"
	"strings"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// navigate evaluates a generic path expression: dot-separated segments, each
// a field name, `*`, or `field[cond]`. Field access over an array
// distributes, dropping elements where the field is absent.
func navigate(value *jsonvalue.Value, pathText string) (*jsonvalue.Value, error) {
	path := strings.TrimSpace(pathText)
	if path == "" || path == "$" {
		return value, nil
	}

	segments, err := splitSegments(path)
	if err != nil {
		return nil, err
	}

	current := value

	for _, segment := range segments {
		next, err := applySegment(current, segment)
		if err != nil {
			return nil, err
		}

		current = next
	}

	return current, nil
}

// splitSegments splits on '.' outside brackets.
func splitSegments(path string) ([]string, error) {
	var (
		segments []string
		start    int
		brackets int
	)

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '[':
			brackets++
		case ']':
			brackets--
		case '.':
			if brackets == 0 {
				segments = append(segments, path[start:i])
				start = i + 1
			}
		}
	}

	if brackets != 0 {
		return nil, dialect.NewQueryError(dialectName, "unbalanced brackets in %q", path)
	}

	return append(segments, path[start:]), nil
}

func applySegment(value *jsonvalue.Value, segment string) (*jsonvalue.Value, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return nil, dialect.NewQueryError(dialectName, "empty path segment")
	}

	if segment == "*" {
		return wildcard(value), nil
	}

	if open := strings.IndexByte(segment, '['); open >= 0 {
		if !strings.HasSuffix(segment, "]") {
			return nil, dialect.NewQueryError(dialectName, "unterminated predicate in %q", segment)
		}

		name := segment[:open]
		condText := segment[open+1 : len(segment)-1]

		resolved := fieldAccess(value, name)

		return filterPredicate(resolved, condText)
	}

	return fieldAccess(value, segment), nil
}

// wildcard yields an object's values in key order; arrays pass through.
func wildcard(value *jsonvalue.Value) *jsonvalue.Value {
	switch value.Kind() {
	case jsonvalue.KindObject:
		vals := make([]*jsonvalue.Value, 0, value.Len())

		for _, key := range value.Keys() {
			field, _ := value.Field(key)
			vals = append(vals, field)
		}

		return jsonvalue.NewArray(vals...)
	default:
		return value
	}
}

func fieldAccess(value *jsonvalue.Value, name string) *jsonvalue.Value {
	switch value.Kind() {
	case jsonvalue.KindObject:
		field, ok := value.Field(name)
		if !ok {
			return jsonvalue.Null
		}

		return field
	case jsonvalue.KindArray:
		out := []*jsonvalue.Value{}

		for _, item := range value.Items() {
			if field, ok := item.Field(name); ok {
				out = append(out, field)
			}
		}

		return jsonvalue.NewArray(out...)
	default:
		return jsonvalue.Null
	}
}

// predicateOps are ordered so `!=` is matched before a bare `=` would be.
var predicateOps = []string{"!=", ">", "<", "="}

// filterPredicate keeps array elements satisfying `key OP literal`. Filtering
// an array of objects is the only supported shape; any other input passes
// through unchanged.
func filterPredicate(value *jsonvalue.Value, condText string) (*jsonvalue.Value, error) {
	cond := strings.TrimSpace(condText)
	if cond == "" {
		return nil, dialect.NewQueryError(dialectName, "empty predicate")
	}

	var (
		op  string
		idx = -1
	)

	for _, candidate := range predicateOps {
		if i := strings.Index(cond, candidate); i >= 0 {
			op = candidate
			idx = i

			break
		}
	}

	if idx < 0 {
		return nil, dialect.NewQueryError(dialectName, "unsupported predicate %q", condText)
	}

	key := strings.TrimSpace(cond[:idx])
	literal := parseLiteral(strings.TrimSpace(cond[idx+len(op):]))

	if key == "" {
		return nil, dialect.NewQueryError(dialectName, "predicate %q is missing a field", condText)
	}

	if value.Kind() != jsonvalue.KindArray {
		return value, nil
	}

	out := []*jsonvalue.Value{}

	for _, item := range value.Items() {
		field, ok := item.Field(key)
		if !ok {
			continue
		}

		if predicateHolds(field, op, literal) {
			out = append(out, item)
		}
	}

	return jsonvalue.NewArray(out...), nil
}

func predicateHolds(field *jsonvalue.Value, op string, literal *jsonvalue.Value) bool {
	switch op {
	case "=":
		return jsonvalue.LooseEqual(field, literal)
	case "!=":
		return !jsonvalue.LooseEqual(field, literal)
	}

	cmp, ok := jsonvalue.Compare(field, literal)
	if !ok {
		return false
	}

	if op == ">" {
		return cmp > 0
	}

	return cmp < 0
}

// parseLiteral infers a literal from its textual form.
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
