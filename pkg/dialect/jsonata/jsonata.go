// Package jsonata implements the JSONata-subset dialect: the aggregate
// functions $count, $sum and $distinct over a path, and generic path
// navigation with `*` wildcards and a single-level `field[cond]` predicate.
package jsonata

import (
	"strings"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

const dialectName = "jsonata"

// Evaluator is the JSONata-subset interpreter. Stateless, safe for
// concurrent use.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) ID() string { return dialectName }

// aggregates maps the recognized $function names to their implementations.
var aggregates = map[string]func(items []*jsonvalue.Value) *jsonvalue.Value{
	"$count":    aggregateCount,
	"$sum":      aggregateSum,
	"$distinct": aggregateDistinct,
}

func (e *Evaluator) Evaluate(value *jsonvalue.Value, exprText string) (*jsonvalue.Value, error) {
	expr := strings.TrimSpace(exprText)
	if expr == "" {
		return nil, dialect.NewQueryError(dialectName, "empty expression")
	}

	for name, aggregate := range aggregates {
		prefix := name + "("
		if !strings.HasPrefix(expr, prefix) {
			continue
		}

		if !strings.HasSuffix(expr, ")") {
			return nil, dialect.NewQueryError(dialectName, "missing closing parenthesis in %q", expr)
		}

		inner := strings.TrimSpace(expr[len(prefix) : len(expr)-1])

		resolved, err := navigate(value, inner)
		if err != nil {
			return nil, err
		}

		return aggregate(collection(resolved)), nil
	}

	return navigate(value, expr)
}

// collection coerces a navigation result for the aggregates: arrays are used
// as-is, an absent result is empty, and any other value wraps into a
// single-element collection.
func collection(v *jsonvalue.Value) []*jsonvalue.Value {
	switch v.Kind() {
	case jsonvalue.KindArray:
		return v.Items()
	case jsonvalue.KindNull:
		return nil
	default:
		return []*jsonvalue.Value{v}
	}
}

func aggregateCount(items []*jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.NewNumber(float64(len(items)))
}

func aggregateSum(items []*jsonvalue.Value) *jsonvalue.Value {
	var total float64

	for _, item := range items {
		if n, ok := jsonvalue.ToNumber(item); ok {
			total += n
		}
	}

	return jsonvalue.NewNumber(total)
}

func aggregateDistinct(items []*jsonvalue.Value) *jsonvalue.Value {
	out := []*jsonvalue.Value{}

	for _, item := range items {
		seen := false

		for _, kept := range out {
			if kept.Equal(item) {
				seen = true

				break
			}
		}

		if !seen {
			out = append(out, item)
		}
	}

	return jsonvalue.NewArray(out...)
}
