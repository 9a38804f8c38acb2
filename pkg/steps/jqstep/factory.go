package jqstep

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates jq steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindJQ }

func (f *Factory) Description() string {
	return "Runs a jq-subset filter chain; a bare `.path` extracts a single field."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
