// Package workflow executes an ordered list of named transformation steps
// over a JSON value, producing a per-step execution trace. Step lists are
// read-only input for one run; the engine holds no state between runs.
package workflow

import (
	"github.com/google/uuid"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// StepKind identifies a step's transformation.
type StepKind string

const (
	StepKindMap    StepKind = "map"
	StepKindFilter StepKind = "filter"
	StepKindSort   StepKind = "sort"
	StepKindPick   StepKind = "pick"
	StepKindOmit   StepKind = "omit"
	StepKindRename StepKind = "rename"
	StepKindJQ     StepKind = "jq"
	StepKindCustom StepKind = "custom"
)

// Step is one unit of a workflow pipeline.
type Step struct {
	ID      string   `json:"id"      validate:"required"`
	Name    string   `json:"name"`
	Kind    StepKind `json:"kind"    validate:"required,oneof=map filter sort pick omit rename jq custom"`
	Config  string   `json:"config"`
	Enabled bool     `json:"enabled"`
}

// NewStep builds an enabled step with a generated id. The engine itself never
// generates ids; collaborators either call this or supply their own.
func NewStep(name string, kind StepKind, config string) Step {
	return Step{
		ID:      uuid.NewString(),
		Name:    name,
		Kind:    kind,
		Config:  config,
		Enabled: true,
	}
}

// Transform is a compiled step ready to run. Apply must not mutate its input.
type Transform interface {
	Apply(value *jsonvalue.Value) (*jsonvalue.Value, error)
}

// Factory compiles step config text into a Transform.
type Factory interface {
	Kind() StepKind
	Description() string
	Create(config string) (Transform, error)
}
