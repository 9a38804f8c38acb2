package filter

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

	if factory.Kind() != workflow.StepKindFilter {
		t.Errorf("expected kind %q, got %q", workflow.StepKindFilter, factory.Kind())
	}

	if _, err := factory.Create("age > 18"); err != nil {
		t.Errorf("expected valid config to create, got: %v", err)
	}
}

func TestApply(t *testing.T) {
	people := `[{"name":"ana","age":17},{"name":"bo","age":30},{"name":"cy","age":45}]`

	tests := []struct {
		name   string
		config string
		input  string
		want   string
	}{
		{"greater", "age > 18", people, `[{"name":"bo","age":30},{"name":"cy","age":45}]`},
		{"greater or equal", "age >= 30", people, `[{"name":"bo","age":30},{"name":"cy","age":45}]`},
		{"equality", `name == "bo"`, people, `[{"name":"bo","age":30}]`},
		{"equality unquoted", "name == bo", people, `[{"name":"bo","age":30}]`},
		{"not equal", `name != "bo"`, people, `[{"name":"ana","age":17},{"name":"cy","age":45}]`},
		{"contains substring", "name contains a", people, `[{"name":"ana","age":17}]`},
		{"contains membership", "tags contains x", `[{"tags":["x"]},{"tags":["y"]}]`, `[{"tags":["x"]}]`},
		{"dotted field", "user.age < 20", `[{"user":{"age":17}},{"user":{"age":30}}]`, `[{"user":{"age":17}}]`},
		{"absent field never matches", "city == x", `[{"name":"ana"}]`, `[]`},
		{"numeric string coerces", `age > "18"`, people, `[{"name":"bo","age":30},{"name":"cy","age":45}]`},
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

func TestApplyScalar(t *testing.T) {
	step, err := NewStep("age > 18")
	if err != nil {
		t.Fatalf("NewStep failed: %v", err)
	}

	matched, err := step.Apply(mustParse(t, `{"age":30}`))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if matched.Render() != `{"age":30}` {
		t.Errorf("expected matching object to pass through, got %s", matched.Render())
	}

	unmatched, err := step.Apply(mustParse(t, `{"age":10}`))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !unmatched.IsNull() {
		t.Errorf("expected non-matching object to become null, got %s", unmatched.Render())
	}
}

func TestUnparseableConfigMatchesEverything(t *testing.T) {
	configs := []string{"", "no operator here", "== 5", "age >"}

	input := mustParse(t, `[{"age":1},{"age":2}]`)

	for _, config := range configs {
		step, err := NewStep(config)
		if err != nil {
			t.Fatalf("NewStep(%q) failed: %v", config, err)
		}

		got, err := step.Apply(input)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}

		if got.Render() != input.Render() {
			t.Errorf("config %q: expected pass-through, got %s", config, got.Render())
		}
	}
}

func TestOperatorTieBreak(t *testing.T) {
	// ">=" must win over ">" at the same position.
	step, err := NewStep("age >= 30")
	if err != nil {
		t.Fatalf("NewStep failed: %v", err)
	}

	got, err := step.Apply(mustParse(t, `[{"age":30}]`))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got.Render() != `[{"age":30}]` {
		t.Errorf("expected >= to match equal value, got %s", got.Render())
	}
}
