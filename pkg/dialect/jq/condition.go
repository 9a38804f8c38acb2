package jq

import (
	"strconv"
	"strings"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// condOps are tried in order so that two-character operators win over their
// one-character prefixes.
var condOps = []string{"==", "!=", ">=", "<=", ">", "<"}

type condition struct {
	path    accessor.Accessor
	op      string // "" for a bare truthiness test
	literal *jsonvalue.Value
}

// parseCondition parses `field OP literal` or a bare field used as a
// truthiness test. The field may carry a leading dot (`.age > 18`).
func parseCondition(condText string) (*condition, error) {
	text := strings.TrimSpace(condText)
	if text == "" {
		return nil, dialect.NewQueryError(dialectName, "empty select condition")
	}

	for _, op := range condOps {
		idx := strings.Index(text, op)
		if idx < 0 {
			continue
		}

		fieldText := strings.TrimSpace(text[:idx])
		literalText := strings.TrimSpace(text[idx+len(op):])

		if fieldText == "" || literalText == "" {
			return nil, dialect.NewQueryError(dialectName, "incomplete condition %q", condText)
		}

		path, err := accessor.ParsePath(fieldText)
		if err != nil {
			return nil, dialect.NewQueryError(dialectName, "invalid condition field %q", fieldText)
		}

		return &condition{path: path, op: op, literal: parseLiteral(literalText)}, nil
	}

	path, err := accessor.ParsePath(text)
	if err != nil {
		return nil, dialect.NewQueryError(dialectName, "invalid condition %q", condText)
	}

	return &condition{path: path}, nil
}

// parseLiteral infers the literal's type from its textual form: null, true,
// false, a quoted string or a number; anything else is taken as a bare
// string.
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

func (c *condition) holds(item *jsonvalue.Value) bool {
	resolved, found := c.path.Apply(item)
	if !found {
		return false
	}

	if c.op == "" {
		return jsonvalue.Truthy(resolved)
	}

	switch c.op {
	case "==":
		return jsonvalue.LooseEqual(resolved, c.literal)
	case "!=":
		return !jsonvalue.LooseEqual(resolved, c.literal)
	}

	cmp, ok := jsonvalue.Compare(resolved, c.literal)
	if !ok {
		return false
	}

	switch c.op {
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
