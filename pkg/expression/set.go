package expression

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

// LogicalOperator combines nested condition sets inside a Composite.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

// ConditionSet is a flat mapping of attribute path to a Condition or a bare
// value (which implies equality). Entries are implicitly AND-combined and
// rendered in sorted key order so output is deterministic. Paths may be
// dotted and carry bracketed index suffixes (a.b[0]); a path key may also use
// the '#'/':' escape grammar, e.g. "##weird" for an attribute literally named
// "#weird".
type ConditionSet map[string]any

// And combines this set with further sets or composites into a new AND node.
func (s ConditionSet) And(others ...any) *Composite {
	return newComposite(LogicalAnd, s, others)
}

// Or combines this set with further sets or composites into a new OR node.
func (s ConditionSet) Or(others ...any) *Composite {
	return newComposite(LogicalOr, s, others)
}

// Composite is a logical AND/OR combination of nested condition sets. It is
// immutable: And and Or return new nodes and never mutate the receiver.
type Composite struct {
	operator LogicalOperator
	operands []any
}

// CompositeAnd builds an AND node over condition sets and/or composites.
func CompositeAnd(members ...any) *Composite {
	return &Composite{operator: LogicalAnd, operands: members}
}

// CompositeOr builds an OR node over condition sets and/or composites.
func CompositeOr(members ...any) *Composite {
	return &Composite{operator: LogicalOr, operands: members}
}

// And returns a new AND node over this composite and the given members.
func (c *Composite) And(others ...any) *Composite {
	return newComposite(LogicalAnd, c, others)
}

// Or returns a new OR node over this composite and the given members.
func (c *Composite) Or(others ...any) *Composite {
	return newComposite(LogicalOr, c, others)
}

func newComposite(op LogicalOperator, first any, rest []any) *Composite {
	operands := make([]any, 0, len(rest)+1)
	operands = append(operands, first)
	operands = append(operands, rest...)
	return &Composite{operator: op, operands: operands}
}

// renderConditions walks a condition set or composite against the shared
// Params and returns the expression fragment. An empty result means nothing
// rendered; callers decide whether that is an error.
func renderConditions(p *Params, node any) (string, error) {
	switch n := node.(type) {
	case nil:
		return "", nil

	case ConditionSet:
		return renderFlatSet(p, n)

	case map[string]any:
		return renderFlatSet(p, n)

	case *Composite:
		if n == nil {
			return "", nil
		}
		fragments := make([]string, 0, len(n.operands))
		for _, operand := range n.operands {
			fragment, err := renderConditions(p, operand)
			if err != nil {
				return "", err
			}
			if fragment != "" {
				fragments = append(fragments, fragment)
			}
		}
		switch len(fragments) {
		case 0:
			return "", nil
		case 1:
			// A degenerate nest flattens to its sole operand, unwrapped.
			return fragments[0], nil
		default:
			return "(" + strings.Join(fragments, " "+string(n.operator)+" ") + ")", nil
		}

	default:
		return "", fmt.Errorf("%w: unsupported condition input %T", exprErrors.ErrInvalidOperand, node)
	}
}

func renderFlatSet(p *Params, set map[string]any) (string, error) {
	fragments := make([]string, 0, len(set))
	paths := maps.Keys(set)
	slices.Sort(paths)
	for _, path := range paths {
		pathExpr, err := p.resolveOperand(path, RoleName, hintFor(path))
		if err != nil {
			return "", err
		}
		fragment, err := asCondition(set[path]).render(p, pathExpr, hintFor(path))
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fragment)
	}
	return strings.Join(fragments, " AND "), nil
}
