package project

import (
	"testing"

	"github.com/queryon/queryon/pkg/jsonvalue"
	"github.com/queryon/queryon/pkg/workflow"
)

func mustParse(t *testing.T, text string) *jsonvalue.Value {
	t.Helper()

	value, err := jsonvalue.Parse(text)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	return value
}

func TestFactory(t *testing.T) {
	factory := &Factory{}

	if factory.Kind() != workflow.StepKindMap {
		t.Errorf("expected kind %q, got %q", workflow.StepKindMap, factory.Kind())
	}

	if _, err := factory.Create("name"); err != nil {
		t.Errorf("expected valid config to create, got: %v", err)
	}

	if _, err := factory.Create(""); err == nil {
		t.Error("expected empty config to fail")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		config string
		input  string
		want   string
	}{
		{
			"keep fields",
			"name, age",
			`[{"name":"ana","age":17,"extra":true}]`,
			`[{"name":"ana","age":17}]`,
		},
		{
			"rename from path",
			"who:user.name",
			`[{"user":{"name":"ana"}},{"user":{"name":"bo"}}]`,
			`[{"who":"ana"},{"who":"bo"}]`,
		},
		{
			"absent source omitted",
			"name, city",
			`[{"name":"ana"},{"name":"bo","city":"x"}]`,
			`[{"name":"ana"},{"name":"bo","city":"x"}]`,
		},
		{
			"indexed source",
			"first:tags[0]",
			`[{"tags":["a","b"]}]`,
			`[{"first":"a"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, err := NewStep(tt.config)
			if err != nil {
				t.Fatalf("NewStep(%q) failed: %v", tt.config, err)
			}

			got, err := step.Apply(mustParse(t, tt.input))
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			if got.Render() != tt.want {
				t.Errorf("Apply = %s, want %s", got.Render(), tt.want)
			}
		})
	}
}

func TestApplyRequiresArray(t *testing.T) {
	step, err := NewStep("name")
	if err != nil {
		t.Fatalf("NewStep failed: %v", err)
	}

	if _, err := step.Apply(mustParse(t, `{"name":"ana"}`)); err == nil {
		t.Error("expected object input to fail")
	}
}

func TestNewStepErrors(t *testing.T) {
	bad := []string{"", " , ", "a:", ":b", "x:a[!]"}

	for _, config := range bad {
		if _, err := NewStep(config); err == nil {
			t.Errorf("NewStep(%q) expected error, got nil", config)
		}
	}
}
