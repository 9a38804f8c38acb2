package rename

import "github.com/queryon/queryon/pkg/workflow"

// Factory creates rename steps for registry integration.
type Factory struct{}

func (f *Factory) Kind() workflow.StepKind { return workflow.StepKindRename }

func (f *Factory) Description() string {
	return "Renames top-level fields per `old:new` pairs; unmatched keys pass through."
}

func (f *Factory) Create(config string) (workflow.Transform, error) {
	return NewStep(config)
}
