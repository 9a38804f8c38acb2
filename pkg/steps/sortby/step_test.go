package sortby

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

	if factory.Kind() != workflow.StepKindSort {
		t.Errorf("expected kind %q, got %q", workflow.StepKindSort, factory.Kind())
	}

	if _, err := factory.Create("name desc"); err != nil {
		t.Errorf("expected valid config to create, got: %v", err)
	}

	if _, err := factory.Create(""); err == nil {
		t.Error("expected empty config to fail")
	}

	if _, err := factory.Create("name sideways"); err == nil {
		t.Error("expected invalid direction to fail")
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
			"ascending by default",
			"age",
			`[{"age":30},{"age":17},{"age":45}]`,
			`[{"age":17},{"age":30},{"age":45}]`,
		},
		{
			"descending",
			"age desc",
			`[{"age":30},{"age":17},{"age":45}]`,
			`[{"age":45},{"age":30},{"age":17}]`,
		},
		{
			"numeric-aware string order",
			"name",
			`[{"name":"item10"},{"name":"item2"},{"name":"item1"}]`,
			`[{"name":"item1"},{"name":"item2"},{"name":"item10"}]`,
		},
		{
			"absent field sorts first",
			"age",
			`[{"age":5},{},{"age":1}]`,
			`[{},{"age":1},{"age":5}]`,
		},
		{
			"dotted field",
			"user.age asc",
			`[{"user":{"age":3}},{"user":{"age":1}}]`,
			`[{"user":{"age":1}},{"user":{"age":3}}]`,
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
				t.Errorf("Apply(%q) = %s, want %s", tt.config, got.Render(), tt.want)
			}
		})
	}
}

func TestApplyNonArrayPassesThrough(t *testing.T) {
	step, err := NewStep("age")
	if err != nil {
		t.Fatalf("NewStep failed: %v", err)
	}

	input := mustParse(t, `{"age":1}`)

	got, err := step.Apply(input)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got.Render() != input.Render() {
		t.Errorf("expected pass-through, got %s", got.Render())
	}
}

func TestSortIsStable(t *testing.T) {
	step, err := NewStep("k")
	if err != nil {
		t.Fatalf("NewStep failed: %v", err)
	}

	got, err := step.Apply(mustParse(t, `[{"k":1,"n":"a"},{"k":1,"n":"b"},{"k":0,"n":"c"}]`))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := `[{"k":0,"n":"c"},{"k":1,"n":"a"},{"k":1,"n":"b"}]`
	if got.Render() != want {
		t.Errorf("Apply = %s, want %s", got.Render(), want)
	}
}
