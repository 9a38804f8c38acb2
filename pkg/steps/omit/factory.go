package omit

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates omit steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindOmit }

func (f *Factory) Description() string {
	return "Drops the listed top-level fields, element-wise on arrays."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
