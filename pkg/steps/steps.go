// Package steps wires every built-in step factory into a workflow registry.
package steps

import (
	"log/slog"

	"github.com/queryon/queryon/pkg/steps/custom"
	"github.com/queryon/queryon/pkg/steps/filter"
	"github.com/queryon/queryon/pkg/steps/jqstep"
	"github.com/queryon/queryon/pkg/steps/omit"
	"github.com/queryon/queryon/pkg/steps/pick"
	"github.com/queryon/queryon/pkg/steps/project"
	"github.com/queryon/queryon/pkg/steps/rename"
	"github.com/queryon/queryon/pkg/steps/sortby"
	"github.com/queryon/queryon/pkg/workflow"
)

// NewRegistry returns a registry with all built-in step kinds registered.
func NewRegistry(logger *slog.Logger) *workflow.Registry {
	registry := workflow.NewRegistry(logger)

	registry.Register(&project.Factory{})
	registry.Register(&filter.Factory{})
	registry.Register(&sortby.Factory{})
	registry.Register(&pick.Factory{})
	registry.Register(&omit.Factory{})
	registry.Register(&rename.Factory{})
	registry.Register(&jqstep.Factory{})
	registry.Register(&custom.Factory{})

	return registry
}
