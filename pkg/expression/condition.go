package expression

import (
	"fmt"
	"strconv"
	"strings"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

// Operator tags a condition node. The textual value doubles as the serialized
// operator tag for the JSON/YAML round-trip.
type Operator string

const (
	OperatorEq         Operator = "="
	OperatorNe         Operator = "<>"
	OperatorLt         Operator = "<"
	OperatorLe         Operator = "<="
	OperatorGt         Operator = ">"
	OperatorGe         Operator = ">="
	OperatorBetween    Operator = "between"
	OperatorIn         Operator = "in"
	OperatorExists     Operator = "attribute_exists"
	OperatorNotExists  Operator = "attribute_not_exists"
	OperatorType       Operator = "attribute_type"
	OperatorBeginsWith Operator = "begins_with"
	OperatorContains   Operator = "contains"
	OperatorSize       Operator = "size"
	OperatorNot        Operator = "not"
	OperatorAnd        Operator = "and"
	OperatorOr         Operator = "or"
)

var knownOperators = map[Operator]bool{
	OperatorEq: true, OperatorNe: true, OperatorLt: true, OperatorLe: true,
	OperatorGt: true, OperatorGe: true, OperatorBetween: true, OperatorIn: true,
	OperatorExists: true, OperatorNotExists: true, OperatorType: true,
	OperatorBeginsWith: true, OperatorContains: true, OperatorSize: true,
	OperatorNot: true, OperatorAnd: true, OperatorOr: true,
}

// Condition is an immutable single-attribute predicate. It is rendered
// against the attribute path it is mapped to in a ConditionSet, and can also
// be evaluated locally against an in-memory candidate value.
type Condition struct {
	operator Operator
	operands []any
}

// Operator returns the node's operator tag.
func (c *Condition) Operator() Operator {
	return c.operator
}

// Eq matches attributes equal to v.
func Eq(v any) *Condition { return &Condition{operator: OperatorEq, operands: []any{v}} }

// Ne matches attributes not equal to v.
func Ne(v any) *Condition { return &Condition{operator: OperatorNe, operands: []any{v}} }

// Lt matches attributes less than v.
func Lt(v any) *Condition { return &Condition{operator: OperatorLt, operands: []any{v}} }

// Le matches attributes less than or equal to v.
func Le(v any) *Condition { return &Condition{operator: OperatorLe, operands: []any{v}} }

// Gt matches attributes greater than v.
func Gt(v any) *Condition { return &Condition{operator: OperatorGt, operands: []any{v}} }

// Ge matches attributes greater than or equal to v.
func Ge(v any) *Condition { return &Condition{operator: OperatorGe, operands: []any{v}} }

// Between matches attributes in the inclusive range [lo, hi].
func Between(lo, hi any) *Condition {
	return &Condition{operator: OperatorBetween, operands: []any{lo, hi}}
}

// In matches attributes equal to any of the given values.
func In(values ...any) *Condition {
	return &Condition{operator: OperatorIn, operands: values}
}

// AttributeExists matches items where the attribute is present.
func AttributeExists() *Condition { return &Condition{operator: OperatorExists} }

// AttributeNotExists matches items where the attribute is absent.
func AttributeNotExists() *Condition { return &Condition{operator: OperatorNotExists} }

// AttributeType matches attributes whose DynamoDB type descriptor equals tag
// (e.g. "S", "N", "L").
func AttributeType(tag string) *Condition {
	return &Condition{operator: OperatorType, operands: []any{tag}}
}

// BeginsWith matches string attributes starting with the given prefix.
func BeginsWith(prefix any) *Condition {
	return &Condition{operator: OperatorBeginsWith, operands: []any{prefix}}
}

// Contains matches string attributes containing a substring, or set/list
// attributes containing a member.
func Contains(v any) *Condition {
	return &Condition{operator: OperatorContains, operands: []any{v}}
}

// Size applies cond to the size of the attribute rather than its value, e.g.
// Size(Gt(3)) renders size(#attr) > :v.
func Size(cond *Condition) *Condition {
	return &Condition{operator: OperatorSize, operands: []any{cond}}
}

// Not negates a condition.
func Not(cond *Condition) *Condition {
	return &Condition{operator: OperatorNot, operands: []any{cond}}
}

// And combines conditions on a single attribute; operands may be conditions
// or bare values, which imply equality. All operands are rendered against the
// same attribute path.
func And(operands ...any) *Condition {
	return &Condition{operator: OperatorAnd, operands: operands}
}

// Or is the disjunctive counterpart of And.
func Or(operands ...any) *Condition {
	return &Condition{operator: OperatorOr, operands: operands}
}

// render emits the condition against an already-resolved path expression.
// All placeholder bindings route through the same Params so repeated
// references stay stable within one render pass.
func (c *Condition) render(p *Params, pathExpr, hint string) (string, error) {
	switch c.operator {
	case OperatorEq, OperatorNe, OperatorLt, OperatorLe, OperatorGt, OperatorGe:
		operand, err := p.resolveOperand(c.operands[0], RoleValue, hint)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", pathExpr, c.operator, operand), nil

	case OperatorBetween:
		lo, err := p.resolveOperand(c.operands[0], RoleValue, hint+"0")
		if err != nil {
			return "", err
		}
		hi, err := p.resolveOperand(c.operands[1], RoleValue, hint+"1")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", pathExpr, lo, hi), nil

	case OperatorIn:
		refs := make([]string, len(c.operands))
		for i, operand := range c.operands {
			ref, err := p.resolveOperand(operand, RoleValue, hint+strconv.Itoa(i))
			if err != nil {
				return "", err
			}
			refs[i] = ref
		}
		return fmt.Sprintf("%s IN (%s)", pathExpr, strings.Join(refs, ", ")), nil

	case OperatorExists:
		return fmt.Sprintf("attribute_exists(%s)", pathExpr), nil

	case OperatorNotExists:
		return fmt.Sprintf("attribute_not_exists(%s)", pathExpr), nil

	case OperatorType, OperatorBeginsWith, OperatorContains:
		operand, err := p.resolveOperand(c.operands[0], RoleValue, hint)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s, %s)", c.operator, pathExpr, operand), nil

	case OperatorSize:
		inner, ok := c.operands[0].(*Condition)
		if !ok {
			return "", fmt.Errorf("%w: size requires a condition operand", exprErrors.ErrInvalidOperand)
		}
		return inner.render(p, fmt.Sprintf("size(%s)", pathExpr), hint)

	case OperatorNot:
		inner, ok := c.operands[0].(*Condition)
		if !ok {
			return "", fmt.Errorf("%w: not requires a condition operand", exprErrors.ErrInvalidOperand)
		}
		rendered, err := inner.render(p, pathExpr, hint)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT (%s)", rendered), nil

	case OperatorAnd, OperatorOr:
		fragments := make([]string, len(c.operands))
		for i, operand := range c.operands {
			fragment, err := asCondition(operand).render(p, pathExpr, hint+strconv.Itoa(i))
			if err != nil {
				return "", err
			}
			fragments[i] = fragment
		}
		joined := strings.Join(fragments, " "+logicalWord(c.operator)+" ")
		if len(fragments) > 1 {
			return "(" + joined + ")", nil
		}
		return joined, nil

	default:
		return "", fmt.Errorf("%w: %q", exprErrors.ErrUnknownOperator, c.operator)
	}
}

func logicalWord(op Operator) string {
	if op == OperatorOr {
		return "OR"
	}
	return "AND"
}

// asCondition wraps bare values in an implicit equality condition.
func asCondition(v any) *Condition {
	if cond, ok := v.(*Condition); ok {
		return cond
	}
	return Eq(v)
}
