// Package dispatch is the collaborator-facing boundary of the engine: typed
// requests in, typed responses out. Failures never escape an operation; they
// are caught and mapped onto the response's error field so the caller can
// render a precise diagnostic without losing context.
package dispatch

import (
	"github.com/queryon/queryon/pkg/explorer"
	"github.com/queryon/queryon/pkg/schema"
	"github.com/queryon/queryon/pkg/workflow"
)

// QueryRequest evaluates one dialect query against a JSON document.
type QueryRequest struct {
	Dialect string `json:"dialect" validate:"required,oneof=jq jsonata mongodb"`
	JSON    string `json:"json"    validate:"required"`
	Query   string `json:"query"   validate:"required"`
}

// QueryResponse carries the rendered result or an error message, plus the
// evaluation time in milliseconds. Error responses keep Result as the empty
// string, never omit the message.
type QueryResponse struct {
	Result string  `json:"result"`
	Time   float64 `json:"time"`
	Error  string  `json:"error,omitempty"`
}

// WorkflowRequest runs an ordered step list over a JSON document.
type WorkflowRequest struct {
	JSON  string          `json:"json"  validate:"required"`
	Steps []workflow.Step `json:"steps" validate:"required,min=1,dive"`
}

// StepOutcome is the boundary form of one trace entry.
type StepOutcome struct {
	StepID string  `json:"stepId"`
	Output string  `json:"output,omitempty"`
	Error  string  `json:"error,omitempty"`
	Time   float64 `json:"time"`
}

// WorkflowResponse reports per-step outcomes and the final value. After a
// halt, FinalOutput is the value as of the last successful step.
type WorkflowResponse struct {
	Status      string        `json:"status"`
	StepResults []StepOutcome `json:"stepResults"`
	FinalOutput string        `json:"finalOutput"`
	TotalTime   float64       `json:"totalTime"`
	Error       string        `json:"error,omitempty"`
}

// ExploreRequest resolves a path expression to its concrete matches.
type ExploreRequest struct {
	JSON       string `json:"json"       validate:"required"`
	Expression string `json:"expression" validate:"required"`
}

// ExploreResponse lists every matched location.
type ExploreResponse struct {
	Results []explorer.Result `json:"results"`
	Error   string            `json:"error,omitempty"`
}

// SchemaRequest validates a JSON document against a JSON Schema.
type SchemaRequest struct {
	JSON   string `json:"json"   validate:"required"`
	Schema string `json:"schema" validate:"required"`
}

// SchemaResponse reports schema validation issues.
type SchemaResponse struct {
	Valid  bool           `json:"valid"`
	Issues []schema.Issue `json:"issues,omitempty"`
	Error  string         `json:"error,omitempty"`
}
