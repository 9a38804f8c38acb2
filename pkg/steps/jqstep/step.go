// Package jqstep implements the `jq` workflow step, delegating to the jq
// dialect interpreter. A config that is a bare dotted path (leading `.`, no
// pipes or function calls) is resolved directly by the shared path resolver,
// covering the common single-field extraction without a full filter chain.
package jqstep

import (
	"errors"
	"strings"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/dialect/jq"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Step runs a jq filter over the current value.
type Step struct {
	filter   string
	barePath bool
}

func NewStep(config string) (*Step, error) {
	filter := strings.TrimSpace(config)
	if filter == "" {
		return nil, errors.New("jq step config is empty")
	}

	return &Step{
		filter:   filter,
		barePath: isBarePath(filter),
	}, nil
}

func isBarePath(filter string) bool {
	return strings.HasPrefix(filter, ".") &&
		len(filter) > 1 &&
		!strings.ContainsAny(filter, "|() ")
}

func (s *Step) Apply(value *jsonvalue.Value) (*jsonvalue.Value, error) {
	if s.barePath {
		resolved, found, err := accessor.Resolve(value, s.filter)
		if err != nil {
			return nil, err
		}

		if !found {
			return jsonvalue.Null, nil
		}

		return resolved, nil
	}

	return jq.New().Evaluate(value, s.filter)
}
