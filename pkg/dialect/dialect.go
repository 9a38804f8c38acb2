// Package dialect defines the contract every query-language evaluator
// implements, the shared error taxonomy for query evaluation, and a registry
// keyed by dialect name.
package dialect

import (
	"fmt"
	"log/slog"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

// MaxDepth is the recursion ceiling for nested evaluation (map inside map,
// deeply nested documents). Exceeding it fails with a DepthError instead of
// overflowing the stack.
const MaxDepth = 200

// Evaluator is one query-language subset. Evaluate never mutates the input
// value; it returns a freshly built result.
type Evaluator interface {
	ID() string
	Evaluate(value *jsonvalue.Value, query string) (*jsonvalue.Value, error)
}

// QueryError reports malformed query syntax or an operation that cannot be
// evaluated in any shape. Type mismatches inside a well-formed query degrade
// to pass-through instead and never surface here.
type QueryError struct {
	Dialect string
	Message string
}

func (e *QueryError) Error() string {
	if e.Dialect == "" {
		return "query error: " + e.Message
	}

	return fmt.Sprintf("%s query error: %s", e.Dialect, e.Message)
}

// NewQueryError builds a QueryError with a formatted message.
func NewQueryError(dialect, format string, args ...any) *QueryError {
	return &QueryError{Dialect: dialect, Message: fmt.Sprintf(format, args...)}
}

// DepthError reports that evaluation exceeded MaxDepth.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("evaluation depth exceeded limit of %d", e.Limit)
}

// Registry maps dialect names to evaluators.
type Registry struct {
	logger     *slog.Logger
	evaluators map[string]Evaluator
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:     logger,
		evaluators: make(map[string]Evaluator),
	}
}

func (r *Registry) Register(evaluator Evaluator) {
	r.evaluators[evaluator.ID()] = evaluator
}

// Get returns the evaluator registered under name.
func (r *Registry) Get(name string) (Evaluator, error) {
	evaluator, ok := r.evaluators[name]
	if !ok {
		return nil, fmt.Errorf("dialect %q not registered", name)
	}

	return evaluator, nil
}

// IDs lists the registered dialect names.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.evaluators))
	for id := range r.evaluators {
		ids = append(ids, id)
	}

	return ids
}
