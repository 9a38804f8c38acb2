package filter

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates filter steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindFilter }

func (f *Factory) Description() string {
	return "Keeps elements matching `field OP value` (>=, <=, !=, ==, >, <, contains)."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
