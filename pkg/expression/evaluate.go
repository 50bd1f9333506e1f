package expression

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/henhal/dynamodb-expressions/internal/avutil"
)

// Matches evaluates the condition against an in-memory candidate value,
// without touching DynamoDB. A nil candidate represents a missing attribute.
// Values that cannot be converted to an attribute value never match.
func (c *Condition) Matches(value any) bool {
	if value == nil {
		return c.matches(nil)
	}
	av, err := avutil.Marshal(value)
	if err != nil {
		return false
	}
	return c.matches(av)
}

func (c *Condition) matches(av types.AttributeValue) bool {
	switch c.operator {
	case OperatorExists:
		return av != nil
	case OperatorNotExists:
		return av == nil
	case OperatorNot:
		inner, ok := c.operands[0].(*Condition)
		return ok && !inner.matches(av)
	case OperatorAnd:
		for _, operand := range c.operands {
			if !asCondition(operand).matches(av) {
				return false
			}
		}
		return true
	case OperatorOr:
		for _, operand := range c.operands {
			if asCondition(operand).matches(av) {
				return true
			}
		}
		return false
	}

	// The remaining operators never match a missing attribute.
	if av == nil {
		return false
	}

	switch c.operator {
	case OperatorEq:
		operand, ok := c.operandValue(0)
		return ok && avutil.Equal(av, operand)
	case OperatorNe:
		operand, ok := c.operandValue(0)
		return ok && !avutil.Equal(av, operand)
	case OperatorLt:
		return c.compares(av, func(n int) bool { return n < 0 })
	case OperatorLe:
		return c.compares(av, func(n int) bool { return n <= 0 })
	case OperatorGt:
		return c.compares(av, func(n int) bool { return n > 0 })
	case OperatorGe:
		return c.compares(av, func(n int) bool { return n >= 0 })
	case OperatorBetween:
		lo, okLo := c.operandValue(0)
		hi, okHi := c.operandValue(1)
		if !okLo || !okHi {
			return false
		}
		cmpLo, ok := avutil.Compare(av, lo)
		if !ok || cmpLo < 0 {
			return false
		}
		cmpHi, ok := avutil.Compare(av, hi)
		return ok && cmpHi <= 0
	case OperatorIn:
		for i := range c.operands {
			if operand, ok := c.operandValue(i); ok && avutil.Equal(av, operand) {
				return true
			}
		}
		return false
	case OperatorType:
		tag, ok := c.operands[0].(string)
		return ok && avutil.TypeTag(av) == tag
	case OperatorBeginsWith:
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		operand, okOp := c.operandValue(0)
		if !okOp {
			return false
		}
		prefix, okPrefix := operand.(*types.AttributeValueMemberS)
		return okPrefix && len(s.Value) >= len(prefix.Value) && s.Value[:len(prefix.Value)] == prefix.Value
	case OperatorContains:
		operand, ok := c.operandValue(0)
		return ok && avutil.Contains(av, operand)
	case OperatorSize:
		inner, ok := c.operands[0].(*Condition)
		if !ok {
			return false
		}
		n, ok := avutil.SizeOf(av)
		if !ok {
			return false
		}
		return inner.matches(&types.AttributeValueMemberN{Value: strconv.Itoa(n)})
	default:
		return false
	}
}

func (c *Condition) compares(av types.AttributeValue, accept func(int) bool) bool {
	operand, ok := c.operandValue(0)
	if !ok {
		return false
	}
	n, comparable := avutil.Compare(av, operand)
	return comparable && accept(n)
}

func (c *Condition) operandValue(i int) (types.AttributeValue, bool) {
	av, err := avutil.Marshal(c.operands[i])
	if err != nil {
		return nil, false
	}
	return av, true
}

// WithDefaultValue augments a condition for attributes that may be absent:
// when the supplied fallback value would itself satisfy the condition, the
// result also accepts missing attributes via OR attribute_not_exists(path).
// Otherwise the condition is returned unchanged.
func (c *Condition) WithDefaultValue(def any) *Condition {
	if def == nil {
		return c
	}
	if c.Matches(def) {
		return Or(c, AttributeNotExists())
	}
	return c
}
