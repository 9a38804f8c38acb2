package custom

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates custom-expression steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindCustom }

func (f *Factory) Description() string {
	return "Evaluates a restricted expression (paths, arithmetic, comparison, builtins) over the current value."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
