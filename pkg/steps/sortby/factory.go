package sortby

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates sort steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindSort }

func (f *Factory) Description() string {
	return "Stable sort of an array by `field [asc|desc]`, numeric-aware."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
