package jsonvalue

import (
	"strconv"
	"strings"
)

// ToNumber applies the coercion used by every dialect's comparison
// operators: numbers pass through, numeric strings parse, booleans map to
// 1/0, null maps to 0. The second return is false when the value has no
// numeric interpretation.
func ToNumber(v *Value) (float64, bool) {
	switch v.Kind() {
	case KindNumber:
		return v.n, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}

		return f, true
	case KindBool:
		if v.b {
			return 1, true
		}

		return 0, true
	case KindNull:
		return 0, true
	default:
		return 0, false
	}
}

// Truthy reports the truthiness test used by bare-field conditions: null,
// false, 0 and "" are falsy, everything else (including empty arrays and
// objects) is truthy.
func Truthy(v *Value) bool {
	switch v.Kind() {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	default:
		return true
	}
}

// Compare orders two values: numerically when both sides coerce to numbers,
// lexically when both are strings. The second return is false when no
// ordering applies.
func Compare(a, b *Value) (int, bool) {
	if an, aok := ToNumber(a); aok {
		if bn, bok := ToNumber(b); bok {
			switch {
			case an < bn:
				return -1, true
			case an > bn:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	if a.Kind() == KindString && b.Kind() == KindString {
		return strings.Compare(a.s, b.s), true
	}

	return 0, false
}

// LooseEqual is structural equality with a numeric fallback, tolerating the
// number/string shape mismatches that round-tripped JSON produces.
func LooseEqual(a, b *Value) bool {
	if a.Equal(b) {
		return true
	}

	if a.Kind() == b.Kind() {
		return false
	}

	an, aok := ToNumber(a)
	bn, bok := ToNumber(b)

	return aok && bok && an == bn
}
