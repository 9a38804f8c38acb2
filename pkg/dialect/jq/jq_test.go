package jq

import (
	"errors"
	"strings"
	"testing"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

func evalJQ(t *testing.T, input, filter string) *jsonvalue.Value {
	t.Helper()

	value, err := jsonvalue.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	result, err := New().Evaluate(value, filter)
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", filter, err)
	}

	return result
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		filter string
		want   string
	}{
		{"identity", `{"a":1}`, ".", `{"a":1}`},
		{"field access", `{"a":{"b":2}}`, ".a.b", `2`},
		{"missing field is null", `{"a":1}`, ".b", `null`},
		{"indexed path", `{"a":[10,20,30]}`, ".a[1]", `20`},
		{"explode array", `[1,2,3]`, ".[]", `[1,2,3]`},
		{"explode object", `{"a":1,"b":2}`, ".[]", `[1,2]`},
		{"pipe chain", `{"a":[3,1,2]}`, ".a | sort | reverse", `[3,2,1]`},
		{"keys in insertion order", `{"z":1,"a":2}`, "keys", `["z","a"]`},
		{"values", `{"a":1,"b":2}`, "values", `[1,2]`},
		{"length of array", `[1,2,3]`, "length", `3`},
		{"length of string", `"héllo"`, "length", `5`},
		{"length of null", `null`, "length", `0`},
		{"length of number is abs", `-7`, "length", `7`},
		{"type", `[1]`, "type", `"array"`},
		{"sort", `[3,1,2]`, "sort", `[1,2,3]`},
		{"unique keeps first occurrence", `[3,1,3,2,1]`, "unique", `[3,1,2]`},
		{"first", `[5,6]`, "first", `5`},
		{"last", `[5,6]`, "last", `6`},
		{"first of empty", `[]`, "first", `null`},
		{"not", `true`, "not", `false`},
		{"map", `[1,2,3]`, "map(type)", `["number","number","number"]`},
		{"map path", `[{"n":1},{"n":2}]`, "map(.n)", `[1,2]`},
		{"select comparison", `[{"age":17},{"age":30},{"age":45}]`, ".[] | select(.age > 18)", `[{"age":30},{"age":45}]`},
		{"select equality", `[{"s":"a"},{"s":"b"}]`, `.[] | select(.s == "a")`, `[{"s":"a"}]`},
		{"select truthiness", `[{"ok":true},{"ok":false},{}]`, ".[] | select(.ok)", `[{"ok":true}]`},
		{"bare index", `[10,20,30]`, "[1]", `20`},
		{"negative index", `[10,20,30]`, "[-1]", `30`},
		{"index out of range", `[10]`, "[5]", `null`},
		{"slice", `[1,2,3,4,5]`, "[1:3]", `[2,3]`},
		{"slice open end", `[1,2,3]`, "[1:]", `[2,3]`},
		{"slice negative", `[1,2,3,4]`, "[-2:]", `[3,4]`},
		{"slice clamps", `[1,2]`, "[0:99]", `[1,2]`},
		{"to_entries", `{"a":1}`, "to_entries", `[{"key":"a","value":1}]`},
		{"from_entries", `[{"key":"a","value":1},{"k":"b","v":2}]`, "from_entries", `{"a":1,"b":2}`},
		{"entries round trip", `{"a":1,"b":2}`, "to_entries | from_entries", `{"a":1,"b":2}`},
		{"implicit distribution", `[{"name":"x"},{"name":"y"},{}]`, ".name", `["x","y"]`},
		{"distribution through field", `{"users":[{"n":1},{"n":2}]}`, ".users.n", `[1,2]`},
		{"path with trailing brackets", `{"a":[{"b":1},{"b":2}]}`, ".a[].b", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalJQ(t, tt.input, tt.filter)
			if got.Render() != tt.want {
				t.Errorf("Evaluate(%q) on %s = %s, want %s", tt.filter, tt.input, got.Render(), tt.want)
			}
		})
	}
}

func TestTypeMismatchPassesThrough(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		filter string
	}{
		{"sort on object", `{"a":1}`, "sort"},
		{"keys on number", `5`, "keys"},
		{"map on scalar", `"text"`, "map(.)"},
		{"slice on object", `{"a":1}`, "[0:2]"},
		{"reverse on string", `"abc"`, "reverse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalJQ(t, tt.input, tt.filter)
			if got.Render() != tt.input {
				t.Errorf("expected pass-through of %s, got %s", tt.input, got.Render())
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
		". | ",
		"frobnicate",
		"[x]",
		"[1:x]",
		`select(.a ==)`,
		`."unterminated`,
		"map(.a",
	}

	for _, filter := range bad {
		_, err := New().Evaluate(value, filter)
		if err == nil {
			t.Errorf("Evaluate(%q) expected error, got nil", filter)

			continue
		}

		var queryErr *dialect.QueryError
		if !errors.As(err, &queryErr) {
			t.Errorf("Evaluate(%q) expected QueryError, got %T: %v", filter, err, err)
		}
	}
}

func TestDepthLimit(t *testing.T) {
	nested := strings.Repeat("[", 250) + "1" + strings.Repeat("]", 250)

	value, err := jsonvalue.Parse(nested)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	filter := strings.Repeat("map(", 250) + "." + strings.Repeat(")", 250)

	_, err = New().Evaluate(value, filter)
	if err == nil {
		t.Fatal("expected depth error, got nil")
	}

	var depthErr *dialect.DepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("expected DepthError, got %T: %v", err, err)
	}
}

func TestIdentityIsNoOp(t *testing.T) {
	inputs := []string{`null`, `[1,2]`, `{"a":{"b":[true,"x"]}}`}

	for _, input := range inputs {
		got := evalJQ(t, input, ".")
		if got.Render() != input {
			t.Errorf("identity changed %s to %s", input, got.Render())
		}
	}
}

func TestUniqueIsIdempotent(t *testing.T) {
	once := evalJQ(t, `[3,1,3,2,2]`, "unique")
	twice := evalJQ(t, once.Render(), "unique")

	if !once.Equal(twice) {
		t.Errorf("unique not idempotent: %s vs %s", once.Render(), twice.Render())
	}
}

func TestReverseIsInvolution(t *testing.T) {
	input := `[1,"a",null,{"x":1}]`

	got := evalJQ(t, input, "reverse | reverse")
	if got.Render() != input {
		t.Errorf("double reverse changed %s to %s", input, got.Render())
	}
}
