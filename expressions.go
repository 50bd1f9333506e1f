// Package expressions builds DynamoDB update, condition, filter and
// key-condition expression strings together with the escaped name/value
// placeholder tables the wire protocol requires.
//
// Import path:
//
//	import "github.com/henhal/dynamodb-expressions"
//
// Implementation lives in `pkg/expression`; this package re-exports the
// public surface.
package expressions

import (
	"github.com/henhal/dynamodb-expressions/pkg/expression"
)

type (
	Params       = expression.Params
	Condition    = expression.Condition
	ConditionSet = expression.ConditionSet
	Composite    = expression.Composite

	UpdateAction     = expression.UpdateAction
	UpdateAttributes = expression.UpdateAttributes
	SetValue         = expression.SetValue

	ConditionParams    = expression.ConditionParams
	KeyConditionParams = expression.KeyConditionParams
	FilterParams       = expression.FilterParams
	UpdateParams       = expression.UpdateParams
)

// Re-export condition factories for convenience.
var (
	Eq                 = expression.Eq
	Ne                 = expression.Ne
	Lt                 = expression.Lt
	Le                 = expression.Le
	Gt                 = expression.Gt
	Ge                 = expression.Ge
	Between            = expression.Between
	In                 = expression.In
	AttributeExists    = expression.AttributeExists
	AttributeNotExists = expression.AttributeNotExists
	AttributeType      = expression.AttributeType
	BeginsWith         = expression.BeginsWith
	Contains           = expression.Contains
	Size               = expression.Size
	Not                = expression.Not
	And                = expression.And
	Or                 = expression.Or

	CompositeAnd = expression.CompositeAnd
	CompositeOr  = expression.CompositeOr
)

// Re-export update action and SET-value factories.
var (
	Set         = expression.Set
	Remove      = expression.Remove
	Add         = expression.Add
	Delete      = expression.Delete
	Plus        = expression.Plus
	Minus       = expression.Minus
	Append      = expression.Append
	IfNotExists = expression.IfNotExists
)

func NewParams() *expression.Params {
	return expression.NewParams()
}

func BuildConditionParams(conditions any, params *expression.Params) (*expression.ConditionParams, error) {
	return expression.BuildConditionParams(conditions, params)
}

func BuildKeyConditionParams(conditions any, params *expression.Params) (*expression.KeyConditionParams, error) {
	return expression.BuildKeyConditionParams(conditions, params)
}

func BuildFilterParams(conditions any, params *expression.Params) (*expression.FilterParams, error) {
	return expression.BuildFilterParams(conditions, params)
}

func BuildUpdateParams(attrs expression.UpdateAttributes, params *expression.Params) (*expression.UpdateParams, error) {
	return expression.BuildUpdateParams(attrs, params)
}

func BuildConditionExpression(params *expression.Params, conditions any) (string, error) {
	return expression.BuildConditionExpression(params, conditions)
}

func BuildUpdateExpression(params *expression.Params, attrs expression.UpdateAttributes) (string, error) {
	return expression.BuildUpdateExpression(params, attrs)
}

func ConditionFromJSON(data []byte) (*expression.Condition, error) {
	return expression.ConditionFromJSON(data)
}

func ConditionFromYAML(data []byte) (*expression.Condition, error) {
	return expression.ConditionFromYAML(data)
}
