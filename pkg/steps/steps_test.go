package steps

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/queryon/queryon/pkg/workflow"
)

func TestNewRegistryCoversAllKinds(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	kinds := []workflow.StepKind{
		workflow.StepKindMap,
		workflow.StepKindFilter,
		workflow.StepKindSort,
		workflow.StepKindPick,
		workflow.StepKindOmit,
		workflow.StepKindRename,
		workflow.StepKindJQ,
		workflow.StepKindCustom,
	}

	configs := map[workflow.StepKind]string{
		workflow.StepKindMap:    "name",
		workflow.StepKindFilter: "age > 1",
		workflow.StepKindSort:   "name",
		workflow.StepKindPick:   "a",
		workflow.StepKindOmit:   "a",
		workflow.StepKindRename: "a:b",
		workflow.StepKindJQ:     ".",
		workflow.StepKindCustom: "$",
	}

	if len(registry.Kinds()) != len(kinds) {
		t.Fatalf("expected %d registered kinds, got %d", len(kinds), len(registry.Kinds()))
	}

	for _, kind := range kinds {
		if _, err := registry.Create(kind, configs[kind]); err != nil {
			t.Errorf("Create(%q) failed: %v", kind, err)
		}
	}
}

func TestCreateUnknownKind(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	_, err := registry.Create("teleport", "")
	if !errors.Is(err, workflow.ErrUnknownStepKind) {
		t.Errorf("expected ErrUnknownStepKind, got %v", err)
	}
}
