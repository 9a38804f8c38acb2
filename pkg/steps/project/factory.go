package project

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates projection steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindMap }

func (f *Factory) Description() string {
	return "Projects fields over every element of an array, with optional rename (`new:source.path`)."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
