package jq

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

func applyStage(value *jsonvalue.Value, stage string, depth int) (*jsonvalue.Value, error) {
	switch stage {
	case ".":
		return value, nil
	case ".[]":
		return explode(value), nil
	case "keys":
		return stageKeys(value), nil
	case "values":
		return stageValues(value), nil
	case "length":
		return stageLength(value), nil
	case "type":
		return jsonvalue.NewString(value.TypeTag()), nil
	case "sort":
		return stageSort(value), nil
	case "unique":
		return stageUnique(value), nil
	case "reverse":
		return stageReverse(value), nil
	case "first":
		return stageEdge(value, true), nil
	case "last":
		return stageEdge(value, false), nil
	case "not":
		return jsonvalue.NewBool(!jsonvalue.Truthy(value)), nil
	case "to_entries":
		return stageToEntries(value), nil
	case "from_entries":
		return stageFromEntries(value), nil
	}

	switch {
	case strings.HasPrefix(stage, "map(") && strings.HasSuffix(stage, ")"):
		return stageMap(value, stage[4:len(stage)-1], depth)
	case strings.HasPrefix(stage, "select(") && strings.HasSuffix(stage, ")"):
		return stageSelect(value, stage[7:len(stage)-1])
	case strings.HasPrefix(stage, "["):
		return stageBracket(value, stage)
	case strings.HasPrefix(stage, "."):
		return stagePath(value, stage)
	}

	return nil, dialect.NewQueryError(dialectName, "unrecognized stage %q", stage)
}

// explode implements `.[]`: arrays pass through as the collection of their
// elements, objects yield their values in key order.
func explode(value *jsonvalue.Value) *jsonvalue.Value {
	switch value.Kind() {
	case jsonvalue.KindArray:
		return value
	case jsonvalue.KindObject:
		return stageValues(value)
	default:
		return value
	}
}

// stagePath handles `.field`, `.a.b[0]` and `.field[]` stages. Dotted
// traversal into an array distributes the remaining path over every element
// and drops elements where the field is absent, matching jq's implicit
// mapping.
func stagePath(value *jsonvalue.Value, stage string) (*jsonvalue.Value, error) {
	acc, err := accessor.ParsePath(stage)
	if err != nil {
		return nil, dialect.NewQueryError(dialectName, "invalid path stage %q", stage)
	}

	result, found := resolveDistributed(value, acc)
	if !found {
		return jsonvalue.Null, nil
	}

	return result, nil
}

func resolveDistributed(value *jsonvalue.Value, steps accessor.Accessor) (*jsonvalue.Value, bool) {
	current := value

	for i, step := range steps {
		rest := steps[i:]

		switch step.Kind {
		case accessor.StepField:
			if current.Kind() == jsonvalue.KindArray {
				return distribute(current, rest), true
			}

			next, ok := current.Field(step.Field)
			if !ok {
				return nil, false
			}

			current = next
		case accessor.StepIndex:
			next, ok := current.Index(step.Index)
			if !ok {
				return nil, false
			}

			current = next
		case accessor.StepWildcard:
			exploded := explode(current)
			if len(steps[i+1:]) == 0 {
				return exploded, true
			}

			return distribute(exploded, steps[i+1:]), true
		}
	}

	return current, true
}

func distribute(arr *jsonvalue.Value, steps accessor.Accessor) *jsonvalue.Value {
	out := []*jsonvalue.Value{}

	for _, item := range arr.Items() {
		if resolved, ok := resolveDistributed(item, steps); ok {
			out = append(out, resolved)
		}
	}

	return jsonvalue.NewArray(out...)
}

func stageMap(value *jsonvalue.Value, inner string, depth int) (*jsonvalue.Value, error) {
	if value.Kind() != jsonvalue.KindArray {
		return value, nil
	}

	out := make([]*jsonvalue.Value, 0, value.Len())

	for _, item := range value.Items() {
		mapped, err := evaluate(item, inner, depth+1)
		if err != nil {
			return nil, err
		}

		out = append(out, mapped)
	}

	return jsonvalue.NewArray(out...), nil
}

func stageSelect(value *jsonvalue.Value, condText string) (*jsonvalue.Value, error) {
	cond, err := parseCondition(condText)
	if err != nil {
		return nil, err
	}

	if value.Kind() != jsonvalue.KindArray {
		return value, nil
	}

	out := []*jsonvalue.Value{}

	for _, item := range value.Items() {
		if cond.holds(item) {
			out = append(out, item)
		}
	}

	return jsonvalue.NewArray(out...), nil
}

// stageBracket handles bare `[n]` and `[a:b]` stages.
func stageBracket(value *jsonvalue.Value, stage string) (*jsonvalue.Value, error) {
	if !strings.HasSuffix(stage, "]") {
		return nil, dialect.NewQueryError(dialectName, "unterminated index %q", stage)
	}

	inner := strings.TrimSpace(stage[1 : len(stage)-1])

	if strings.Contains(inner, ":") {
		return stageSlice(value, inner, stage)
	}

	idx, err := strconv.Atoi(inner)
	if err != nil {
		return nil, dialect.NewQueryError(dialectName, "invalid index %q", stage)
	}

	if value.Kind() != jsonvalue.KindArray {
		return value, nil
	}

	if idx < 0 {
		idx += value.Len()
	}

	item, ok := value.Index(idx)
	if !ok {
		return jsonvalue.Null, nil
	}

	return item, nil
}

func stageSlice(value *jsonvalue.Value, inner, stage string) (*jsonvalue.Value, error) {
	parts := strings.SplitN(inner, ":", 2)

	parseBound := func(text string, fallback int) (int, error) {
		text = strings.TrimSpace(text)
		if text == "" {
			return fallback, nil
		}

		return strconv.Atoi(text)
	}

	if value.Kind() != jsonvalue.KindArray {
		// Bounds are still validated so malformed syntax fails even when the
		// stage is a pass-through.
		if _, err := parseBound(parts[0], 0); err != nil {
			return nil, dialect.NewQueryError(dialectName, "invalid slice %q", stage)
		}

		if _, err := parseBound(parts[1], 0); err != nil {
			return nil, dialect.NewQueryError(dialectName, "invalid slice %q", stage)
		}

		return value, nil
	}

	length := value.Len()

	from, err := parseBound(parts[0], 0)
	if err != nil {
		return nil, dialect.NewQueryError(dialectName, "invalid slice %q", stage)
	}

	to, err := parseBound(parts[1], length)
	if err != nil {
		return nil, dialect.NewQueryError(dialectName, "invalid slice %q", stage)
	}

	if from < 0 {
		from += length
	}

	if to < 0 {
		to += length
	}

	from = clamp(from, 0, length)
	to = clamp(to, from, length)

	return jsonvalue.NewArray(value.Items()[from:to]...), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func stageKeys(value *jsonvalue.Value) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindObject {
		return value
	}

	keys := make([]*jsonvalue.Value, 0, value.Len())
	for _, key := range value.Keys() {
		keys = append(keys, jsonvalue.NewString(key))
	}

	return jsonvalue.NewArray(keys...)
}

func stageValues(value *jsonvalue.Value) *jsonvalue.Value {
	switch value.Kind() {
	case jsonvalue.KindArray:
		return value
	case jsonvalue.KindObject:
		vals := make([]*jsonvalue.Value, 0, value.Len())

		for _, key := range value.Keys() {
			field, _ := value.Field(key)
			vals = append(vals, field)
		}

		return jsonvalue.NewArray(vals...)
	default:
		return value
	}
}

func stageLength(value *jsonvalue.Value) *jsonvalue.Value {
	switch value.Kind() {
	case jsonvalue.KindArray, jsonvalue.KindObject, jsonvalue.KindString:
		return jsonvalue.NewNumber(float64(value.Len()))
	case jsonvalue.KindNull:
		return jsonvalue.NewNumber(0)
	case jsonvalue.KindNumber:
		return jsonvalue.NewNumber(math.Abs(value.Number()))
	default:
		return value
	}
}

func stageSort(value *jsonvalue.Value) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindArray {
		return value
	}

	items := append([]*jsonvalue.Value(nil), value.Items()...)
	sort.SliceStable(items, func(i, j int) bool {
		return lessValues(items[i], items[j])
	})

	return jsonvalue.NewArray(items...)
}

// lessValues orders values via the shared coercion, falling back to type tag
// and rendered text so that mixed arrays sort deterministically.
func lessValues(a, b *jsonvalue.Value) bool {
	if c, ok := jsonvalue.Compare(a, b); ok {
		return c < 0
	}

	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}

	return a.Render() < b.Render()
}

func stageUnique(value *jsonvalue.Value) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindArray {
		return value
	}

	out := []*jsonvalue.Value{}

	for _, item := range value.Items() {
		seen := false

		for _, kept := range out {
			if kept.Equal(item) {
				seen = true

				break
			}
		}

		if !seen {
			out = append(out, item)
		}
	}

	return jsonvalue.NewArray(out...)
}

func stageReverse(value *jsonvalue.Value) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindArray {
		return value
	}

	items := value.Items()
	out := make([]*jsonvalue.Value, len(items))

	for i, item := range items {
		out[len(items)-1-i] = item
	}

	return jsonvalue.NewArray(out...)
}

func stageEdge(value *jsonvalue.Value, first bool) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindArray {
		return value
	}

	items := value.Items()
	if len(items) == 0 {
		return jsonvalue.Null
	}

	if first {
		return items[0]
	}

	return items[len(items)-1]
}

func stageToEntries(value *jsonvalue.Value) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindObject {
		return value
	}

	entries := make([]*jsonvalue.Value, 0, value.Len())

	for _, key := range value.Keys() {
		field, _ := value.Field(key)
		entry := jsonvalue.NewObject().
			Set("key", jsonvalue.NewString(key)).
			Set("value", field)
		entries = append(entries, entry)
	}

	return jsonvalue.NewArray(entries...)
}

func stageFromEntries(value *jsonvalue.Value) *jsonvalue.Value {
	if value.Kind() != jsonvalue.KindArray {
		return value
	}

	obj := jsonvalue.NewObject()

	for _, entry := range value.Items() {
		key, ok := entryKey(entry)
		if !ok {
			continue
		}

		val, ok := entry.Field("value")
		if !ok {
			if val, ok = entry.Field("v"); !ok {
				val = jsonvalue.Null
			}
		}

		obj.Set(key, val)
	}

	return obj
}

func entryKey(entry *jsonvalue.Value) (string, bool) {
	for _, candidate := range []string{"key", "k", "name"} {
		if field, ok := entry.Field(candidate); ok {
			if field.Kind() == jsonvalue.KindString {
				return field.Str(), true
			}

			return field.Render(), true
		}
	}

	return "", false
}
