// Package custom implements the `custom` workflow step: a user-authored
// expression in the restricted expression language receives the current
// value and produces the next one. Expressions have no host access and
// evaluation runs under a step budget.
package custom

import (
	"errors"
	"strings"

	"github.com/queryon/queryon/pkg/expr"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Step evaluates one expression per run.
type Step struct {
	expression string
}

func NewStep(config string) (*Step, error) {
	expression := strings.TrimSpace(config)
	if expression == "" {
		return nil, errors.New("custom step config is empty")
	}

	return &Step{expression: expression}, nil
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	return expr.Evaluate(value, s.expression)
}
