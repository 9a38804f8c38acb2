// Package schema validates a JSON document against a JSON Schema.
package schema

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/queryon/queryon/pkg/dialect"
)

// Issue is one validation failure.
type Issue struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// Report is the outcome of one validation.
type Report struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validate checks documentText against schemaText. A malformed schema or
// document is a QueryError; validation failures are reported, not errors.
func Validate(documentText, schemaText string) (*Report, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaText),
		gojsonschema.NewStringLoader(documentText),
	)
	if err != nil {
		return nil, dialect.NewQueryError("schema", "%v", err)
	}

	report := &Report{Valid: result.Valid()}

	for _, issue := range result.Errors() {
		report.Issues = append(report.Issues, Issue{
			Field:       issue.Field(),
			Description: issue.Description(),
		})
	}

	return report, nil
}
