package jsonvalue

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Render serializes the value back to compact JSON text, emitting object
// fields in insertion order.
func (v *Value) Render() string {
	var sb strings.Builder

	v.render(&sb)

	return sb.String()
}

func (v *Value) render(sb *strings.Builder) {
	switch v.Kind() {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(FormatNumber(v.n))
	case KindString:
		encoded, _ := json.Marshal(v.s)
		sb.Write(encoded)
	case KindArray:
		sb.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}

			item.render(sb)
		}

		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')

		for i, key := range v.keys {
			if i > 0 {
				sb.WriteByte(',')
			}

			encoded, _ := json.Marshal(key)
			sb.Write(encoded)
			sb.WriteByte(':')
			v.fields[key].render(sb)
		}

		sb.WriteByte('}')
	}
}

// RenderIndent serializes the value with two-space indentation for
// human-facing output.
func (v *Value) RenderIndent() string {
	var out bytes.Buffer

	if err := json.Indent(&out, []byte(v.Render()), "", "  "); err != nil {
		return v.Render()
	}

	return out.String()
}

// FormatNumber renders a float the way JSON does: integral values without a
// fractional part, everything else in shortest form.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToInterface converts the value to the generic encoding/json representation
// (map[string]any, []any, float64, ...), losing key order. It exists for
// interop with libraries that evaluate over generic values.
func (v *Value) ToInterface() any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToInterface()
		}

		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for key, val := range v.fields {
			out[key] = val.ToInterface()
		}

		return out
	}

	return nil
}

// FromInterface builds a Value from the generic encoding/json representation.
// Map key order is not recoverable from a Go map; callers that need ordered
// objects must Parse the original text instead.
func FromInterface(raw any) *Value {
	switch t := raw.(type) {
	case nil:
		return Null
	case bool:
		return NewBool(t)
	case float64:
		return NewNumber(t)
	case int:
		return NewNumber(float64(t))
	case int64:
		return NewNumber(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return NewString(t.String())
		}

		return NewNumber(f)
	case string:
		return NewString(t)
	case []any:
		items := make([]*Value, len(t))
		for i, item := range t {
			items[i] = FromInterface(item)
		}

		return NewArray(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		obj := NewObject()
		for _, key := range keys {
			obj.Set(key, FromInterface(t[key]))
		}

		return obj
	default:
		return Null
	}
}
