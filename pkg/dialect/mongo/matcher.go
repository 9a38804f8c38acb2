package mongo

import (
	"regexp"
	"strings"

	"github.com/queryon/queryon/pkg/accessor"
	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

type condition interface {
	matches(document *jsonvalue.Value) bool
}

type andCondition []condition

func (c andCondition) matches(document *jsonvalue.Value) bool {
	for _, sub := range c {
		if !sub.matches(document) {
			return false
		}
	}

	return true
}

type orCondition []condition

func (c orCondition) matches(document *jsonvalue.Value) bool {
	for _, sub := range c {
		if sub.matches(document) {
			return true
		}
	}

	return false
}

type notCondition struct {
	inner condition
}

func (c notCondition) matches(document *jsonvalue.Value) bool {
	return !c.inner.matches(document)
}

type opKind uint8

const (
	opEq opKind = iota
	opNe
	opGt
	opGte
	opLt
	opLte
	opIn
	opNin
	opExists
	opRegex
)

var opNames = map[string]opKind{
	"$eq":     opEq,
	"$ne":     opNe,
	"$gt":     opGt,
	"$gte":    opGte,
	"$lt":     opLt,
	"$lte":    opLte,
	"$in":     opIn,
	"$nin":    opNin,
	"$exists": opExists,
	"$regex":  opRegex,
}

type fieldOp struct {
	kind    opKind
	operand *jsonvalue.Value
	re      *regexp.Regexp
}

// fieldCondition holds the pre-parsed accessor for a (possibly dotted) field
// plus the operator set applied to it.
type fieldCondition struct {
	path accessor.Accessor
	ops  []fieldOp
}

func (c fieldCondition) matches(document *jsonvalue.Value) bool {
	resolved, found := c.path.Apply(document)

	for _, op := range c.ops {
		if !op.matches(resolved, found) {
			return false
		}
	}

	return true
}

func (op fieldOp) matches(resolved *jsonvalue.Value, found bool) bool {
	switch op.kind {
	case opExists:
		return found == jsonvalue.Truthy(op.operand)
	case opNe:
		// An absent field satisfies $ne, matching MongoDB semantics.
		return !found || !jsonvalue.LooseEqual(resolved, op.operand)
	case opNin:
		return !found || !valueInList(resolved, op.operand)
	}

	if !found {
		return false
	}

	switch op.kind {
	case opEq:
		return jsonvalue.LooseEqual(resolved, op.operand)
	case opIn:
		return valueInList(resolved, op.operand)
	case opRegex:
		return resolved.Kind() == jsonvalue.KindString && op.re.MatchString(resolved.Str())
	}

	cmp, ok := jsonvalue.Compare(resolved, op.operand)
	if !ok {
		return false
	}

	switch op.kind {
	case opGt:
		return cmp > 0
	case opGte:
		return cmp >= 0
	case opLt:
		return cmp < 0
	case opLte:
		return cmp <= 0
	}

	return false
}

func valueInList(v *jsonvalue.Value, list *jsonvalue.Value) bool {
	for _, candidate := range list.Items() {
		if jsonvalue.LooseEqual(v, candidate) {
			return true
		}
	}

	return false
}

// compileQuery turns a parsed query document into a condition tree.
func compileQuery(query *jsonvalue.Value) (condition, error) {
	if query.Kind() != jsonvalue.KindObject {
		return nil, dialect.NewQueryError(dialectName, "query must be an object, got %s", query.TypeTag())
	}

	conds := make(andCondition, 0, query.Len())

	for _, key := range query.Keys() {
		entry, _ := query.Field(key)

		switch key {
		case "$and", "$or":
			if entry.Kind() != jsonvalue.KindArray {
				return nil, dialect.NewQueryError(dialectName, "%s expects an array of queries", key)
			}

			subs := make([]condition, 0, entry.Len())

			for _, sub := range entry.Items() {
				compiled, err := compileQuery(sub)
				if err != nil {
					return nil, err
				}

				subs = append(subs, compiled)
			}

			if key == "$and" {
				conds = append(conds, andCondition(subs))
			} else {
				conds = append(conds, orCondition(subs))
			}
		case "$not":
			compiled, err := compileQuery(entry)
			if err != nil {
				return nil, err
			}

			conds = append(conds, notCondition{inner: compiled})
		default:
			if strings.HasPrefix(key, "$") {
				return nil, dialect.NewQueryError(dialectName, "unknown top-level operator %q", key)
			}

			compiled, err := compileField(key, entry)
			if err != nil {
				return nil, err
			}

			conds = append(conds, compiled)
		}
	}

	return conds, nil
}

func compileField(field string, spec *jsonvalue.Value) (condition, error) {
	path, err := accessor.ParsePath(field)
	if err != nil {
		return nil, dialect.NewQueryError(dialectName, "invalid field path %q", field)
	}

	if !isOperatorObject(spec) {
		// A non-operator value is direct equality.
		return fieldCondition{path: path, ops: []fieldOp{{kind: opEq, operand: spec}}}, nil
	}

	ops := make([]fieldOp, 0, spec.Len())

	for _, opName := range spec.Keys() {
		operand, _ := spec.Field(opName)

		kind, ok := opNames[opName]
		if !ok {
			return nil, dialect.NewQueryError(dialectName, "unknown operator %q for field %q", opName, field)
		}

		op := fieldOp{kind: kind, operand: operand}

		switch kind {
		case opIn, opNin:
			if operand.Kind() != jsonvalue.KindArray {
				return nil, dialect.NewQueryError(dialectName, "%s for field %q expects an array", opName, field)
			}
		case opRegex:
			if operand.Kind() != jsonvalue.KindString {
				return nil, dialect.NewQueryError(dialectName, "$regex for field %q expects a string", field)
			}

			re, err := regexp.Compile(operand.Str())
			if err != nil {
				return nil, dialect.NewQueryError(dialectName, "invalid regex for field %q: %v", field, err)
			}

			op.re = re
		}

		ops = append(ops, op)
	}

	return fieldCondition{path: path, ops: ops}, nil
}

// isOperatorObject reports whether spec is an object whose keys all start
// with '$'. A mixed or plain object is literal equality.
func isOperatorObject(spec *jsonvalue.Value) bool {
	if spec.Kind() != jsonvalue.KindObject || spec.Len() == 0 {
		return false
	}

	for _, key := range spec.Keys() {
		if !strings.HasPrefix(key, "$") {
			return false
		}
	}

	return true
}
