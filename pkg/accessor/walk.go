package accessor

import (
	"strconv"
	"strings"

	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Match is one concrete location produced by Walk.
type Match struct {
	Path  string
	Value *jsonvalue.Value
}

// Walk resolves pathText against value and reports every concrete match with
// its normalized path. Wildcards fan out; plain paths yield at most one
// match. Used by the path explorer, which needs locations as well as values.
func Walk(value *jsonvalue.Value, pathText string) ([]Match, error) {
	acc, err := ParsePath(pathText)
	if err != nil {
		return nil, err
	}

	return walk(value, acc, ""), nil
}

func walk(value *jsonvalue.Value, acc Accessor, prefix string) []Match {
	if len(acc) == 0 {
		return []Match{{Path: normalizePath(prefix), Value: value}}
	}

	step, rest := acc[0], acc[1:]

	switch step.Kind {
	case StepField:
		child, ok := value.Field(step.Field)
		if !ok {
			return nil
		}

		return walk(child, rest, prefix+"."+step.Field)
	case StepIndex:
		child, ok := value.Index(step.Index)
		if !ok {
			return nil
		}

		return walk(child, rest, prefix+"["+strconv.Itoa(step.Index)+"]")
	case StepWildcard:
		var matches []Match

		switch value.Kind() {
		case jsonvalue.KindArray:
			for i, child := range value.Items() {
				matches = append(matches, walk(child, rest, prefix+"["+strconv.Itoa(i)+"]")...)
			}
		case jsonvalue.KindObject:
			for _, key := range value.Keys() {
				child, _ := value.Field(key)
				matches = append(matches, walk(child, rest, prefix+"."+key)...)
			}
		}

		return matches
	}

	return nil
}

func normalizePath(p string) string {
	trimmed := strings.TrimPrefix(p, ".")
	if trimmed == "" {
		return "."
	}

	return trimmed
}
