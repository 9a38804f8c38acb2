// Package accessor parses dotted/bracketed path text (`a.b[2].c`) and walks
// it against a jsonvalue tree. It is the single resolver shared by the jq
// dialect's plain field access, the workflow pick/omit/rename/filter/sort
// steps and the path explorer.
//
// A path that leads nowhere yields Absent (found=false), never an error:
// callers decide whether Absent becomes null, filters an element out or
// fails the step.
package accessor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

// StepKind discriminates accessor steps.
type StepKind uint8

const (
	StepField StepKind = iota
	StepIndex
	StepWildcard
)

// Step is one unit of a parsed accessor.
type Step struct {
	Kind  StepKind
	Field string
	Index int
}

// Accessor is a parsed path. It is produced once per evaluation and never
// persisted.
type Accessor []Step

// SyntaxError reports malformed accessor text.
type SyntaxError struct {
	Text    string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Text, e.Message)
}

// ParsePath parses `a.b[2].c` style text. `*` segments and `[*]` brackets
// become wildcard steps. Negative indices and slices are not part of this
// layer.
func ParsePath(text string) (Accessor, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "."))
	if trimmed == "" {
		return Accessor{}, nil
	}

	var acc Accessor

	for _, segment := range strings.Split(trimmed, ".") {
		if segment == "" {
			return nil, &SyntaxError{Text: text, Message: "empty path segment"}
		}

		name := segment

		var brackets string

		if i := strings.IndexByte(segment, '['); i >= 0 {
			name = segment[:i]
			brackets = segment[i:]
		}

		switch name {
		case "":
			// bare bracket segment like `[0]`
		case "*":
			acc = append(acc, Step{Kind: StepWildcard})
		default:
			acc = append(acc, Step{Kind: StepField, Field: name})
		}

		for brackets != "" {
			if brackets[0] != '[' {
				return nil, &SyntaxError{Text: text, Message: "expected '['"}
			}

			end := strings.IndexByte(brackets, ']')
			if end < 0 {
				return nil, &SyntaxError{Text: text, Message: "unterminated index"}
			}

			inner := strings.TrimSpace(brackets[1:end])
			switch {
			case inner == "*" || inner == "":
				acc = append(acc, Step{Kind: StepWildcard})
			default:
				idx, err := strconv.Atoi(inner)
				if err != nil || idx < 0 {
					return nil, &SyntaxError{Text: text, Message: fmt.Sprintf("invalid index %q", inner)}
				}

				acc = append(acc, Step{Kind: StepIndex, Index: idx})
			}

			brackets = brackets[end+1:]
		}
	}

	return acc, nil
}

// Resolve walks pathText against value. found=false is the Absent result:
// a missing intermediate field or an out-of-range index, distinct from a
// present JSON null. Wildcard steps collect matches into an array.
func Resolve(value *jsonvalue.Value, pathText string) (*jsonvalue.Value, bool, error) {
	acc, err := ParsePath(pathText)
	if err != nil {
		return nil, false, err
	}

	result, found := acc.Apply(value)

	return result, found, nil
}

// Apply walks the parsed accessor against a value.
func (a Accessor) Apply(value *jsonvalue.Value) (*jsonvalue.Value, bool) {
	current := value

	for i, step := range a {
		switch step.Kind {
		case StepField:
			next, ok := current.Field(step.Field)
			if !ok {
				return nil, false
			}

			current = next
		case StepIndex:
			next, ok := current.Index(step.Index)
			if !ok {
				return nil, false
			}

			current = next
		case StepWildcard:
			rest := a[i+1:]
			matches := []*jsonvalue.Value{}

			for _, child := range childValues(current) {
				if resolved, ok := rest.Apply(child); ok {
					matches = append(matches, resolved)
				}
			}

			return jsonvalue.NewArray(matches...), true
		}
	}

	return current, true
}

func childValues(v *jsonvalue.Value) []*jsonvalue.Value {
	switch v.Kind() {
	case jsonvalue.KindArray:
		return v.Items()
	case jsonvalue.KindObject:
		children := make([]*jsonvalue.Value, 0, len(v.Keys()))

		for _, key := range v.Keys() {
			child, _ := v.Field(key)
			children = append(children, child)
		}

		return children
	default:
		return nil
	}
}
