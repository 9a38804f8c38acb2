package expr

import (
	"math"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// DefaultBudget caps the number of node evaluations per expression so a
// pathological input cannot spin the engine.
const DefaultBudget = 10000

// builtins is the stage vocabulary available as functions.
var builtins = map[string]func(arg *jsonvalue.Value) *jsonvalue.Value{
	"length":   builtinLength,
	"count":    builtinCount,
	"sum":      builtinSum,
	"distinct": builtinDistinct,
	"keys":     builtinKeys,
	"values":   builtinValues,
	"not":      func(v *jsonvalue.Value) *jsonvalue.Value { return jsonvalue.NewBool(!jsonvalue.Truthy(v)) },
	"type":     func(v *jsonvalue.Value) *jsonvalue.Value { return jsonvalue.NewString(v.TypeTag()) },
}

// Evaluate parses and evaluates an expression against value with the default
// step budget. Paths resolve relative to value; `$` names the whole value.
func Evaluate(value *jsonvalue.Value, input string) (*jsonvalue.Value, error) {
	return EvaluateWithBudget(value, input, DefaultBudget)
}

// EvaluateWithBudget is Evaluate with an explicit step budget.
func EvaluateWithBudget(value *jsonvalue.Value, input string, budget int) (*jsonvalue.Value, error) {
	root, err := parse(input)
	if err != nil {
		return nil, err
	}

	ev := &evaluator{value: value, remaining: budget}

	return ev.eval(root)
}

type evaluator struct {
	value     *jsonvalue.Value
	remaining int
}

func (ev *evaluator) eval(n node) (*jsonvalue.Value, error) {
	ev.remaining--
	if ev.remaining < 0 {
		return nil, expressionError("evaluation budget exceeded")
	}

	switch t := n.(type) {
	case literalNode:
		return literalValue(t.value), nil
	case wholeNode:
		return ev.value, nil
	case pathNode:
		resolved, found, err := accessor.Resolve(ev.value, t.path)
		if err != nil {
			return nil, expressionError("invalid path %q", t.path)
		}

		if !found {
			return jsonvalue.Null, nil
		}

		return resolved, nil
	case callNode:
		arg, err := ev.eval(t.arg)
		if err != nil {
			return nil, err
		}

		return builtins[t.name](arg), nil
	case unaryNode:
		return ev.evalUnary(t)
	case binaryNode:
		return ev.evalBinary(t)
	default:
		return nil, expressionError("unsupported expression node")
	}
}

func literalValue(v any) *jsonvalue.Value {
	switch t := v.(type) {
	case nil:
		return jsonvalue.Null
	case bool:
		return jsonvalue.NewBool(t)
	case float64:
		return jsonvalue.NewNumber(t)
	case string:
		return jsonvalue.NewString(t)
	default:
		return jsonvalue.Null
	}
}

func (ev *evaluator) evalUnary(n unaryNode) (*jsonvalue.Value, error) {
	right, err := ev.eval(n.right)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case tokenNot:
		return jsonvalue.NewBool(!jsonvalue.Truthy(right)), nil
	case tokenMinus:
		f, ok := jsonvalue.ToNumber(right)
		if !ok {
			return jsonvalue.Null, nil
		}

		return jsonvalue.NewNumber(-f), nil
	default:
		return nil, expressionError("unsupported unary operator")
	}
}

func (ev *evaluator) evalBinary(n binaryNode) (*jsonvalue.Value, error) {
	// Logical operators short-circuit.
	switch n.op {
	case tokenAnd, tokenOr:
		left, err := ev.eval(n.left)
		if err != nil {
			return nil, err
		}

		truthy := jsonvalue.Truthy(left)
		if (n.op == tokenAnd && !truthy) || (n.op == tokenOr && truthy) {
			return jsonvalue.NewBool(truthy), nil
		}

		right, err := ev.eval(n.right)
		if err != nil {
			return nil, err
		}

		return jsonvalue.NewBool(jsonvalue.Truthy(right)), nil
	}

	left, err := ev.eval(n.left)
	if err != nil {
		return nil, err
	}

	right, err := ev.eval(n.right)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case tokenEqual:
		return jsonvalue.NewBool(jsonvalue.LooseEqual(left, right)), nil
	case tokenNotEqual:
		return jsonvalue.NewBool(!jsonvalue.LooseEqual(left, right)), nil
	case tokenGreater, tokenGreaterEq, tokenLess, tokenLessEq:
		cmp, ok := jsonvalue.Compare(left, right)
		if !ok {
			return jsonvalue.NewBool(false), nil
		}

		switch n.op {
		case tokenGreater:
			return jsonvalue.NewBool(cmp > 0), nil
		case tokenGreaterEq:
			return jsonvalue.NewBool(cmp >= 0), nil
		case tokenLess:
			return jsonvalue.NewBool(cmp < 0), nil
		default:
			return jsonvalue.NewBool(cmp <= 0), nil
		}
	case tokenPlus:
		// String concatenation when both sides are strings, numeric addition
		// otherwise.
		if left.Kind() == jsonvalue.KindString && right.Kind() == jsonvalue.KindString {
			return jsonvalue.NewString(left.Str() + right.Str()), nil
		}

		return arith(left, right, func(a, b float64) float64 { return a + b }), nil
	case tokenMinus:
		return arith(left, right, func(a, b float64) float64 { return a - b }), nil
	case tokenStar:
		return arith(left, right, func(a, b float64) float64 { return a * b }), nil
	case tokenSlash:
		return arith(left, right, func(a, b float64) float64 {
			if b == 0 {
				return math.NaN()
			}

			return a / b
		}), nil
	case tokenPercent:
		return arith(left, right, math.Mod), nil
	default:
		return nil, expressionError("unsupported binary operator")
	}
}

// arith applies fn under numeric coercion; a non-numeric operand or NaN
// result degrades to null rather than erroring.
func arith(left, right *jsonvalue.Value, fn func(a, b float64) float64) *jsonvalue.Value {
	a, aok := jsonvalue.ToNumber(left)
	b, bok := jsonvalue.ToNumber(right)

	if !aok || !bok {
		return jsonvalue.Null
	}

	result := fn(a, b)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return jsonvalue.Null
	}

	return jsonvalue.NewNumber(result)
}

func builtinLength(v *jsonvalue.Value) *jsonvalue.Value {
	return jsonvalue.NewNumber(float64(v.Len()))
}

func builtinCount(v *jsonvalue.Value) *jsonvalue.Value {
	switch v.Kind() {
	case jsonvalue.KindArray:
		return jsonvalue.NewNumber(float64(v.Len()))
	case jsonvalue.KindNull:
		return jsonvalue.NewNumber(0)
	default:
		return jsonvalue.NewNumber(1)
	}
}

func builtinSum(v *jsonvalue.Value) *jsonvalue.Value {
	var total float64

	for _, item := range v.Items() {
		if f, ok := jsonvalue.ToNumber(item); ok {
			total += f
		}
	}

	return jsonvalue.NewNumber(total)
}

func builtinDistinct(v *jsonvalue.Value) *jsonvalue.Value {
	if v.Kind() != jsonvalue.KindArray {
		return v
	}

	out := []*jsonvalue.Value{}

	for _, item := range v.Items() {
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

func builtinKeys(v *jsonvalue.Value) *jsonvalue.Value {
	keys := make([]*jsonvalue.Value, 0, v.Len())
	for _, key := range v.Keys() {
		keys = append(keys, jsonvalue.NewString(key))
	}

	return jsonvalue.NewArray(keys...)
}

func builtinValues(v *jsonvalue.Value) *jsonvalue.Value {
	switch v.Kind() {
	case jsonvalue.KindArray:
		return v
	case jsonvalue.KindObject:
		vals := make([]*jsonvalue.Value, 0, v.Len())

		for _, key := range v.Keys() {
			field, _ := v.Field(key)
			vals = append(vals, field)
		}

		return jsonvalue.NewArray(vals...)
	default:
		return jsonvalue.NewArray()
	}
}
