package omit

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

	if factory.Kind() != workflow.StepKindOmit {
		t.Errorf("expected kind %q, got %q", workflow.StepKindOmit, factory.Kind())
	}

	if _, err := factory.Create(" , "); err == nil {
		t.Error("expected blank config to fail")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		config string
		input  string
		want   string
	}{
		{"object", "c", `{"a":1,"b":2,"c":3}`, `{"a":1,"b":2}`},
		{"multiple fields", "a, c", `{"a":1,"b":2,"c":3}`, `{"b":2}`},
		{"array element-wise", "b", `[{"a":1,"b":2},{"a":3}]`, `[{"a":1},{"a":3}]`},
		{"missing field ignored", "z", `{"a":1}`, `{"a":1}`},
		{"scalar passes through", "a", `"text"`, `"text"`},
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
