package expression

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/henhal/dynamodb-expressions/internal/avutil"
	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

// ActionKind is one of the four DynamoDB update-expression clause types.
type ActionKind string

const (
	ActionSet    ActionKind = "SET"
	ActionRemove ActionKind = "REMOVE"
	ActionAdd    ActionKind = "ADD"
	ActionDelete ActionKind = "DELETE"
)

// actionOrder is the fixed clause order of a rendered update expression.
var actionOrder = []ActionKind{ActionSet, ActionRemove, ActionAdd, ActionDelete}

// UpdateAction is an immutable update operation on a single attribute.
type UpdateAction struct {
	kind    ActionKind
	operand any
}

// Kind returns the action's clause type.
func (a *UpdateAction) Kind() ActionKind {
	return a.kind
}

// Set assigns a value to the attribute. The operand may be a literal or a
// SetValue function result (Plus, Minus, Append, IfNotExists).
func Set(value any) *UpdateAction {
	return &UpdateAction{kind: ActionSet, operand: value}
}

// Remove deletes the attribute.
func Remove() *UpdateAction {
	return &UpdateAction{kind: ActionRemove}
}

// Add increments a number attribute or unions elements into a set attribute.
func Add(value any) *UpdateAction {
	return &UpdateAction{kind: ActionAdd, operand: value}
}

// Delete removes elements from a set attribute.
func Delete(value any) *UpdateAction {
	return &UpdateAction{kind: ActionDelete, operand: value}
}

// SetValue is a nested expression-producing function usable only inside SET
// actions. SetValues compose arbitrarily deeply; an IfNotExists result may be
// an Append operand and so on.
type SetValue struct {
	function string
	operands []any
}

// Plus renders a + b. String operands denote attribute paths; escape with a
// leading ':' to force a literal.
func Plus(a, b any) *SetValue {
	return &SetValue{function: "+", operands: []any{a, b}}
}

// Minus renders a - b, with the same operand rules as Plus.
func Minus(a, b any) *SetValue {
	return &SetValue{function: "-", operands: []any{a, b}}
}

// Append renders list_append(a, b). Each operand is a list literal or an
// attribute path string.
func Append(a, b any) *SetValue {
	return &SetValue{function: "list_append", operands: []any{a, b}}
}

// IfNotExists renders if_not_exists(path, def): assign def only when the
// attribute at path is absent.
func IfNotExists(path string, def any) *SetValue {
	return &SetValue{function: "if_not_exists", operands: []any{path, def}}
}

// UpdateAttributes maps attribute paths to update actions. Bare values imply
// a SET of that value.
type UpdateAttributes map[string]any

// renderUpdate walks the attribute mapping, bucketing rendered items per
// action kind, and emits one clause per non-empty kind in fixed SET, REMOVE,
// ADD, DELETE order. An empty result means the update is a no-op.
func renderUpdate(p *Params, attrs UpdateAttributes) (string, error) {
	buckets := make(map[ActionKind][]string)

	paths := maps.Keys(attrs)
	slices.Sort(paths)
	for _, path := range paths {
		nameExpr, err := p.resolveOperand(path, RoleName, hintFor(path))
		if err != nil {
			return "", err
		}

		action := asAction(attrs[path])
		hint := hintFor(path)

		var item string
		switch action.kind {
		case ActionSet:
			valueExpr, err := renderSetValue(p, action.operand, hint)
			if err != nil {
				return "", err
			}
			item = fmt.Sprintf("%s = %s", nameExpr, valueExpr)

		case ActionRemove:
			item = nameExpr

		case ActionAdd:
			valueExpr, err := renderAddOperand(p, action.operand, "add_"+hint)
			if err != nil {
				return "", err
			}
			item = fmt.Sprintf("%s %s", nameExpr, valueExpr)

		case ActionDelete:
			set, err := avutil.MarshalSet(action.operand)
			if err != nil {
				return "", err
			}
			valueExpr, err := p.BindValue(set, "delete_"+hint)
			if err != nil {
				return "", err
			}
			item = fmt.Sprintf("%s %s", nameExpr, valueExpr)

		default:
			return "", fmt.Errorf("%w: unknown action kind %q", exprErrors.ErrInvalidOperand, action.kind)
		}

		buckets[action.kind] = append(buckets[action.kind], item)
	}

	clauses := make([]string, 0, len(buckets))
	for _, kind := range actionOrder {
		if items := buckets[kind]; len(items) > 0 {
			clauses = append(clauses, fmt.Sprintf("%s %s", kind, strings.Join(items, ", ")))
		}
	}
	return strings.Join(clauses, " "), nil
}

// renderSetValue resolves a SET operand: a SetValue function renders
// recursively through the shared Params, anything else binds as a literal.
func renderSetValue(p *Params, operand any, hint string) (string, error) {
	sv, ok := operand.(*SetValue)
	if !ok {
		return p.resolveOperand(operand, RoleValue, hint)
	}

	switch sv.function {
	case "+", "-":
		a, err := resolveSetOperand(p, sv.operands[0], hint+"0")
		if err != nil {
			return "", err
		}
		b, err := resolveSetOperand(p, sv.operands[1], hint+"1")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", a, sv.function, b), nil

	case "list_append":
		a, err := resolveSetOperand(p, sv.operands[0], hint+"0")
		if err != nil {
			return "", err
		}
		b, err := resolveSetOperand(p, sv.operands[1], hint+"1")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("list_append(%s, %s)", a, b), nil

	case "if_not_exists":
		pathExpr, err := p.resolveOperand(sv.operands[0], RoleName, hint+"0")
		if err != nil {
			return "", err
		}
		def, err := renderSetValue(p, sv.operands[1], hint+"1")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("if_not_exists(%s, %s)", pathExpr, def), nil

	default:
		return "", fmt.Errorf("%w: unknown set-value function %q", exprErrors.ErrInvalidOperand, sv.function)
	}
}

// resolveSetOperand resolves a SetValue function operand: nested SetValues
// render recursively, strings denote attribute paths (subject to the escape
// grammar), anything else is a literal.
func resolveSetOperand(p *Params, operand any, hint string) (string, error) {
	if sv, ok := operand.(*SetValue); ok {
		return renderSetValue(p, sv, hint)
	}
	if _, ok := operand.(string); ok {
		return p.resolveOperand(operand, RoleName, hint)
	}
	return p.BindValue(operand, hint)
}

// renderAddOperand binds an ADD operand, converting slices to sets so that
// ADD works for both numeric increments and set unions.
func renderAddOperand(p *Params, operand any, hint string) (string, error) {
	if operand != nil && reflect.TypeOf(operand).Kind() == reflect.Slice {
		set, err := avutil.MarshalSet(operand)
		if err != nil {
			return "", err
		}
		return p.BindValue(set, hint)
	}
	return p.BindValue(operand, hint)
}

// asAction wraps bare values in an implicit SET action.
func asAction(v any) *UpdateAction {
	if action, ok := v.(*UpdateAction); ok {
		return action
	}
	return Set(v)
}
