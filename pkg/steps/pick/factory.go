package pick

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates pick steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindPick }

func (f *Factory) Description() string {
	return "Keeps only the listed top-level fields, element-wise on arrays."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
