// Package jsonvalue defines the tagged JSON value representation shared by
// every query dialect and the workflow engine. Objects keep their keys in
// insertion order, and values are treated as immutable once constructed:
// transformations always build new values instead of mutating in place, so a
// single parsed document can be fed to several evaluators safely.
package jsonvalue

// Kind identifies which member of the JSON union a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the type tag used uniformly by interpreters and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a closed tagged union over the six JSON shapes.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string

	items []*Value

	keys   []string
	fields map[string]*Value
}

// Null is the shared null value. Values are immutable, so one instance is
// enough.
var Null = &Value{kind: KindNull}

func NewBool(b bool) *Value   { return &Value{kind: KindBool, b: b} }
func NewNumber(n float64) *Value { return &Value{kind: KindNumber, n: n} }
func NewString(s string) *Value  { return &Value{kind: KindString, s: s} }

// NewArray builds an array value over the given items. The slice is owned by
// the new value and must not be mutated afterwards.
func NewArray(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}

	return &Value{kind: KindArray, items: items}
}

// NewObject builds an empty object value. Populate it with Set during
// construction, before sharing it.
func NewObject() *Value {
	return &Value{kind: KindObject, fields: make(map[string]*Value)}
}

// Set adds or replaces a field, preserving first-insertion key order. It is a
// construction helper; callers must not call it on a value that has already
// been handed out.
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindObject {
		return v
	}

	if _, exists := v.fields[key]; !exists {
		v.keys = append(v.keys, key)
	}

	v.fields[key] = val

	return v
}

// Kind returns the union tag.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}

	return v.kind
}

// TypeTag returns the lowercase type name (null|bool|number|string|array|object).
func (v *Value) TypeTag() string { return v.Kind().String() }

func (v *Value) IsNull() bool { return v.Kind() == KindNull }

// Bool returns the boolean payload (false for non-bool values).
func (v *Value) Bool() bool { return v != nil && v.kind == KindBool && v.b }

// Number returns the numeric payload (0 for non-number values).
func (v *Value) Number() float64 {
	if v == nil || v.kind != KindNumber {
		return 0
	}

	return v.n
}

// Str returns the string payload ("" for non-string values).
func (v *Value) Str() string {
	if v == nil || v.kind != KindString {
		return ""
	}

	return v.s
}

// Items returns the backing slice of an array value. Callers must treat it as
// read-only.
func (v *Value) Items() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}

	return v.items
}

// Keys returns object keys in insertion order.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindObject {
		return nil
	}

	return v.keys
}

// Field looks up an object field. The second return is false when the field
// is absent, which callers must keep distinct from a present null.
func (v *Value) Field(name string) (*Value, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}

	val, ok := v.fields[name]

	return val, ok
}

// Index returns the i-th array element; false when out of range.
func (v *Value) Index(i int) (*Value, bool) {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}

	return v.items[i], true
}

// Len returns the element count for arrays, the field count for objects and
// the rune count for strings; 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.keys)
	case KindString:
		return len([]rune(v.s))
	default:
		return 0
	}
}

// Equal reports deep structural equality. Object comparison is key-order
// insensitive: insertion order is a presentation property, not an identity
// one.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}

	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}

		for i, item := range v.items {
			if !item.Equal(o.items[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.keys) != len(o.keys) {
			return false
		}

		for key, val := range v.fields {
			other, ok := o.fields[key]
			if !ok || !val.Equal(other) {
				return false
			}
		}

		return true
	}

	return false
}
