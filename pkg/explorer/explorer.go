// Package explorer resolves a path expression against a value and reports
// every concrete location it touches. Expressions starting with `$` are full
// RFC 9535 JSONPath; anything else is the shared dotted accessor syntax,
// where `*` fans out over object values or array elements.
package explorer

import (
	"strings"

	"github.com/theory/jsonpath"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Result is one matched location.
type Result struct {
	Path  string `json:"path"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Explore evaluates expression against value. Expressions that match nothing
// yield an empty result set, not an error.
func Explore(value *jsonvalue.Value, expression string) ([]Result, error) {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return nil, dialect.NewQueryError("explorer", "empty expression")
	}

	if strings.HasPrefix(expr, "$") {
		return exploreJSONPath(value, expr)
	}

	matches, err := accessor.Walk(value, expr)
	if err != nil {
		return nil, dialect.NewQueryError("explorer", "%v", err)
	}

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		results = append(results, Result{
			Path:  match.Path,
			Value: match.Value.Render(),
			Type:  match.Value.TypeTag(),
		})
	}

	return results, nil
}

func exploreJSONPath(value *jsonvalue.Value, expr string) ([]Result, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, dialect.NewQueryError("explorer", "invalid JSONPath %q: %v", expr, err)
	}

	located := path.SelectLocated(value.ToInterface())
	results := make([]Result, 0, len(located))

	for _, node := range located {
		matched := jsonvalue.FromInterface(node.Node)
		results = append(results, Result{
			Path:  node.Path.String(),
			Value: matched.Render(),
			Type:  matched.TypeTag(),
		})
	}

	return results, nil
}
