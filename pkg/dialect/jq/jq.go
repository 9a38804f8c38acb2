// Package jq implements the jq-subset dialect: a chain of stages separated
// by top-level pipes, evaluated strictly left to right. A stage applied to a
// value of an incompatible type passes the value through unchanged so that
// chains stay resilient; only malformed stage syntax is an error.
package jq

import (
	"strings"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

const dialectName = "jq"

// Evaluator is the jq-subset interpreter. It is stateless and safe for
// concurrent use.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) ID() string { return dialectName }

// Evaluate runs filterText against value and returns the resulting value.
func (e *Evaluator) Evaluate(value *jsonvalue.Value, filterText string) (*jsonvalue.Value, error) {
	return evaluate(value, filterText, 0)
}

func evaluate(value *jsonvalue.Value, filterText string, depth int) (*jsonvalue.Value, error) {
	if depth > dialect.MaxDepth {
		return nil, &dialect.DepthError{Limit: dialect.MaxDepth}
	}

	segments, err := splitPipes(filterText)
	if err != nil {
		return nil, err
	}

	current := value

	for _, segment := range segments {
		stage := strings.TrimSpace(segment)
		if stage == "" {
			return nil, dialect.NewQueryError(dialectName, "empty stage in filter %q", filterText)
		}

		next, err := applyStage(current, stage, depth)
		if err != nil {
			return nil, err
		}

		current = next
	}

	return current, nil
}

// splitPipes splits on '|' at the top level only: pipes inside parentheses,
// brackets or string literals belong to their stage.
func splitPipes(filterText string) ([]string, error) {
	var (
		segments []string
		start    int
		parens   int
		brackets int
		inString bool
	)

	for i := 0; i < len(filterText); i++ {
		c := filterText[i]

		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		case '|':
			if parens == 0 && brackets == 0 {
				segments = append(segments, filterText[start:i])
				start = i + 1
			}
		}
	}

	if inString {
		return nil, dialect.NewQueryError(dialectName, "unterminated string literal in %q", filterText)
	}

	if parens != 0 || brackets != 0 {
		return nil, dialect.NewQueryError(dialectName, "unbalanced brackets in %q", filterText)
	}

	return append(segments, filterText[start:]), nil
}
