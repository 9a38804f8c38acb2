package workflow

import (
	"fmt"
	"log/slog"
)

// Registry maps step kinds to their factories.
type Registry struct {
	logger    *slog.Logger
	factories map[StepKind]Factory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:    logger,
		factories: make(map[StepKind]Factory),
	}
}

func (r *Registry) Register(factory Factory) {
	r.factories[factory.Kind()] = factory
}

// Create compiles a step's config into a Transform via the registered
// factory for its kind.
func (r *Registry) Create(kind StepKind, config string) (Transform, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStepKind, kind)
	}

	return factory.Create(config)
}

// Kinds lists the registered step kinds.
func (r *Registry) Kinds() []StepKind {
	kinds := make([]StepKind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}

	return kinds
}
