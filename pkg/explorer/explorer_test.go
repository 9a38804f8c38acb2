package explorer

import (
	"testing"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

func mustParse(t *testing.T, text string) *jsonvalue.Value {
	t.Helper()

	value, err := jsonvalue.Parse(text)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	return value
}

func TestExploreDottedPaths(t *testing.T) {
	doc := mustParse(t, `{"users":[{"name":"ana","age":17},{"name":"bo","age":30}]}`)

	tests := []struct {
		name      string
		expr      string
		wantPaths []string
	}{
		{"single field", "users[0].name", []string{"users[0].name"}},
		{"wildcard fan-out", "users[*].name", []string{"users[0].name", "users[1].name"}},
		{"star segment", "users.*.age", []string{"users[0].age", "users[1].age"}},
		{"root", ".", []string{"."}},
		{"no matches", "missing.path", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Explore(doc, tt.expr)
			if err != nil {
				t.Fatalf("Explore(%q) failed: %v", tt.expr, err)
			}

			if len(results) != len(tt.wantPaths) {
				t.Fatalf("Explore(%q) returned %d results, want %d", tt.expr, len(results), len(tt.wantPaths))
			}

			for i, want := range tt.wantPaths {
				if results[i].Path != want {
					t.Errorf("result[%d].Path = %q, want %q", i, results[i].Path, want)
				}
			}
		})
	}
}

func TestExploreReportsValueAndType(t *testing.T) {
	doc := mustParse(t, `{"a":{"b":[1,2]}}`)

	results, err := Explore(doc, "a.b")
	if err != nil {
		t.Fatalf("Explore failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Value != "[1,2]" || results[0].Type != "array" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestExploreJSONPath(t *testing.T) {
	doc := mustParse(t, `{"store":{"book":[{"price":5},{"price":15}]}}`)

	results, err := Explore(doc, `$.store.book[?@.price > 10].price`)
	if err != nil {
		t.Fatalf("Explore failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Value != "15" {
		t.Errorf("expected value 15, got %s", results[0].Value)
	}
}

func TestExploreErrors(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)

	bad := []string{
		"",
		"a..b",
		"$[invalid",
	}

	for _, expr := range bad {
		if _, err := Explore(doc, expr); err == nil {
			t.Errorf("Explore(%q) expected error, got nil", expr)
		}
	}
}
