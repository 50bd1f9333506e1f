package expression

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

// ConditionParams is the result of BuildConditionParams: the rendered
// expression plus the accumulated placeholder tables. The table maps are the
// same maps held by the Params the build ran against, so pre-existing entries
// are preserved and extended.
type ConditionParams struct {
	ConditionExpression string
	Names               map[string]string
	Values              map[string]types.AttributeValue
}

// KeyConditionParams is the key-condition counterpart of ConditionParams.
type KeyConditionParams struct {
	KeyConditionExpression string
	Names                  map[string]string
	Values                 map[string]types.AttributeValue
}

// FilterParams is the filter-expression counterpart of ConditionParams.
type FilterParams struct {
	FilterExpression string
	Names            map[string]string
	Values           map[string]types.AttributeValue
}

// UpdateParams is the result of BuildUpdateParams.
type UpdateParams struct {
	UpdateExpression string
	Names            map[string]string
	Values           map[string]types.AttributeValue
}

// BuildConditionExpression renders a condition set or composite against the
// given Params, mutating its tables. It returns an empty string, not an
// error, when nothing renders; callers must check. Note that the tables may
// have been partially populated when an error is returned, in which case the
// whole accumulated parameter set should be discarded.
func BuildConditionExpression(p *Params, conditions any) (string, error) {
	return renderConditions(p, conditions)
}

// BuildUpdateExpression renders update attributes against the given Params,
// mutating its tables. An empty string result means the update is a no-op.
func BuildUpdateExpression(p *Params, attrs UpdateAttributes) (string, error) {
	return renderUpdate(p, attrs)
}

// BuildConditionParams renders conditions into a ConditionExpression with its
// placeholder tables. Pass an existing Params to accumulate across multiple
// builds sharing one placeholder namespace, or nil for a fresh table.
// Returns ErrEmptyExpression when nothing renders.
func BuildConditionParams(conditions any, p *Params) (*ConditionParams, error) {
	p, expr, err := buildConditions("BuildConditionParams", conditions, p)
	if err != nil {
		return nil, err
	}
	return &ConditionParams{ConditionExpression: expr, Names: p.Names, Values: p.Values}, nil
}

// BuildKeyConditionParams renders conditions into a KeyConditionExpression.
func BuildKeyConditionParams(conditions any, p *Params) (*KeyConditionParams, error) {
	p, expr, err := buildConditions("BuildKeyConditionParams", conditions, p)
	if err != nil {
		return nil, err
	}
	return &KeyConditionParams{KeyConditionExpression: expr, Names: p.Names, Values: p.Values}, nil
}

// BuildFilterParams renders conditions into a FilterExpression.
func BuildFilterParams(conditions any, p *Params) (*FilterParams, error) {
	p, expr, err := buildConditions("BuildFilterParams", conditions, p)
	if err != nil {
		return nil, err
	}
	return &FilterParams{FilterExpression: expr, Names: p.Names, Values: p.Values}, nil
}

// BuildUpdateParams renders update attributes into an UpdateExpression with
// its placeholder tables. Returns ErrEmptyExpression when no actions render.
func BuildUpdateParams(attrs UpdateAttributes, p *Params) (*UpdateParams, error) {
	if p == nil {
		p = NewParams()
	}
	expr, err := renderUpdate(p, attrs)
	if err != nil {
		return nil, exprErrors.NewError("BuildUpdateParams", err)
	}
	if expr == "" {
		return nil, exprErrors.NewError("BuildUpdateParams", exprErrors.ErrEmptyExpression)
	}
	return &UpdateParams{UpdateExpression: expr, Names: p.Names, Values: p.Values}, nil
}

func buildConditions(op string, conditions any, p *Params) (*Params, string, error) {
	if p == nil {
		p = NewParams()
	}
	expr, err := renderConditions(p, conditions)
	if err != nil {
		return nil, "", exprErrors.NewError(op, err)
	}
	if expr == "" {
		return nil, "", exprErrors.NewError(op, exprErrors.ErrEmptyExpression)
	}
	return p, expr, nil
}
