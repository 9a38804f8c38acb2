// Package mongo implements the Mongo-query-subset dialect: a document
// matcher with the logical combinators $and/$or/$not and the field operators
// $eq $ne $gt $gte $lt $lte $in $nin $exists $regex. Query text is compiled
// once, fail-fast, before any document is scanned.
package mongo

import (
	"errors"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

const dialectName = "mongodb"

// Evaluator is the Mongo-subset matcher. Stateless, safe for concurrent use.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) ID() string { return dialectName }

// Evaluate compiles queryText and filters value with it. When the value is
// not itself an array, the first array-valued top-level field is filtered
// instead; with no array anywhere the match runs against the whole value and
// returns it wrapped, or null on no match.
func (e *Evaluator) Evaluate(value *jsonvalue.Value, queryText string) (*jsonvalue.Value, error) {
	query, err := Compile(queryText)
	if err != nil {
		return nil, err
	}

	return Filter(value, query), nil
}

// Matches compiles queryText and evaluates it against a single document.
func (e *Evaluator) Matches(document *jsonvalue.Value, queryText string) (bool, error) {
	query, err := Compile(queryText)
	if err != nil {
		return false, err
	}

	return query.Matches(document), nil
}

// Compile parses and validates query text. All syntax problems (text that is
// not valid JSON, a non-object query, unknown $operators, malformed regex or
// combinator shapes) surface here, never during the document scan.
func Compile(queryText string) (*Query, error) {
	parsed, err := jsonvalue.Parse(queryText)
	if err != nil {
		var parseErr *jsonvalue.ParseError
		if errors.As(err, &parseErr) {
			return nil, dialect.NewQueryError(dialectName, "query is not valid JSON: %s", parseErr.Message)
		}

		return nil, dialect.NewQueryError(dialectName, "query is not valid JSON: %v", err)
	}

	cond, err := compileQuery(parsed)
	if err != nil {
		return nil, err
	}

	return &Query{root: cond}, nil
}

// Query is a compiled matcher.
type Query struct {
	root condition
}

// Matches evaluates the query against one document.
func (q *Query) Matches(document *jsonvalue.Value) bool {
	return q.root.matches(document)
}

// Filter applies the query per the evaluator contract.
func Filter(value *jsonvalue.Value, query *Query) *jsonvalue.Value {
	if value.Kind() == jsonvalue.KindArray {
		return filterArray(value, query)
	}

	if value.Kind() == jsonvalue.KindObject {
		for _, key := range value.Keys() {
			field, _ := value.Field(key)
			if field.Kind() == jsonvalue.KindArray {
				return filterArray(field, query)
			}
		}
	}

	if query.Matches(value) {
		return jsonvalue.NewArray(value)
	}

	return jsonvalue.Null
}

func filterArray(arr *jsonvalue.Value, query *Query) *jsonvalue.Value {
	out := []*jsonvalue.Value{}

	for _, item := range arr.Items() {
		if query.Matches(item) {
			out = append(out, item)
		}
	}

	return jsonvalue.NewArray(out...)
}
