package jsonata

import (
	"errors"
	"testing"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

const peopleDoc = `[{"name":"ana","age":17},{"name":"bo","age":30},{"name":"cy","age":45}]`

func evalJSONata(t *testing.T, input, expr string) *jsonvalue.Value {
	t.Helper()

	value, err := jsonvalue.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	result, err := New().Evaluate(value, expr)
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", expr, err)
	}

	return result
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		expr  string
		want  string
	}{
		{"root", `{"a":1}`, "$", `{"a":1}`},
		{"field", `{"a":{"b":2}}`, "a.b", `2`},
		{"missing field is null", `{"a":1}`, "b", `null`},
		{"field over array distributes", peopleDoc, "name", `["ana","bo","cy"]`},
		{"wildcard over object", `{"a":1,"b":2}`, "*", `[1,2]`},
		{"count", peopleDoc, "$count(name)", `3`},
		{"sum", peopleDoc, "$sum(age)", `92`},
		{"sum of scalar wraps", `{"age":5}`, "$sum(age)", `5`},
		{"sum skips non-numeric", `[{"v":1},{"v":"x"},{"v":2}]`, "$sum(v)", `3`},
		{"count of missing is zero", `{"a":1}`, "$count(b)", `0`},
		{"distinct", `[{"v":1},{"v":2},{"v":1}]`, "$distinct(v)", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalJSONata(t, tt.input, tt.expr)
			if got.Render() != tt.want {
				t.Errorf("Evaluate(%q) on %s = %s, want %s", tt.expr, tt.input, got.Render(), tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	doc := `{"users":[{"name":"ana","age":17},{"name":"bo","age":30},{"age":45}]}`

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"greater", "users[age>18]", `[{"name":"bo","age":30},{"age":45}]`},
		{"equality", `users[name="ana"]`, `[{"name":"ana","age":17}]`},
		{"not equal skips missing key", `users[name!="ana"]`, `[{"name":"bo","age":30}]`},
		{"less", "users[age<20]", `[{"name":"ana","age":17}]`},
		{"predicate then field", "users[age>18].name", `["bo"]`},
		{"numeric string literal", `users[age>"18"]`, `[{"name":"bo","age":30},{"age":45}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalJSONata(t, doc, tt.expr)
			if got.Render() != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.expr, got.Render(), tt.want)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	value, err := jsonvalue.Parse(`{"a":1}`)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	bad := []string{
		"",
		"$sum(a",
		"a..b",
		"a[",
		"a[~b]",
		"a[>1]",
	}

	for _, expr := range bad {
		_, err := New().Evaluate(value, expr)
		if err == nil {
			t.Errorf("Evaluate(%q) expected error, got nil", expr)

			continue
		}

		var queryErr *dialect.QueryError
		if !errors.As(err, &queryErr) {
			t.Errorf("Evaluate(%q) expected QueryError, got %T: %v", expr, err, err)
		}
	}
}

func TestAggregateOverAbsentPath(t *testing.T) {
	got := evalJSONata(t, `{"a":1}`, "$sum(missing)")
	if got.Render() != "0" {
		t.Errorf("expected sum over absent path to be 0, got %s", got.Render())
	}
}
