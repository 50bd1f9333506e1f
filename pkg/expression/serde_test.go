package expression_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
	"github.com/henhal/dynamodb-expressions/pkg/expression"
)

func TestConditionJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		condition *expression.Condition
	}{
		{"comparator", expression.Gt(10)},
		{"between", expression.Between(1, 10)},
		{"in", expression.In(1, 2, 4)},
		{"attribute function", expression.BeginsWith(":USER#")},
		{"existence", expression.AttributeNotExists()},
		{"nested not", expression.Not(expression.Eq("x"))},
		{"nested logic", expression.And(expression.Gt(1), expression.Lt(5))},
		{"deep nesting", expression.Or(expression.Not(expression.In(1, 2)), expression.Size(expression.Gt(0)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.condition)
			require.NoError(t, err)

			restored, err := expression.ConditionFromJSON(data)
			require.NoError(t, err)

			original := expression.NewParams()
			originalExpr, err := expression.BuildConditionExpression(original, expression.ConditionSet{"x": tt.condition})
			require.NoError(t, err)

			roundTripped := expression.NewParams()
			restoredExpr, err := expression.BuildConditionExpression(roundTripped, expression.ConditionSet{"x": restored})
			require.NoError(t, err)

			assert.Equal(t, originalExpr, restoredExpr)
			assert.Equal(t, original.Names, roundTripped.Names)
			assert.Equal(t, original.Values, roundTripped.Values)
		})
	}
}

func TestConditionYAMLRoundTrip(t *testing.T) {
	cond := expression.And(expression.Ge(18), expression.Lt(65))

	data, err := yaml.Marshal(cond)
	require.NoError(t, err)

	restored, err := expression.ConditionFromYAML(data)
	require.NoError(t, err)

	original := expression.NewParams()
	originalExpr, err := expression.BuildConditionExpression(original, expression.ConditionSet{"age": cond})
	require.NoError(t, err)

	roundTripped := expression.NewParams()
	restoredExpr, err := expression.BuildConditionExpression(roundTripped, expression.ConditionSet{"age": restored})
	require.NoError(t, err)

	assert.Equal(t, originalExpr, restoredExpr)
	assert.Equal(t, original.Values, roundTripped.Values)
}

func TestConditionFromRejectsUnknownOperator(t *testing.T) {
	_, err := expression.ConditionFromJSON([]byte(`{"operator":"frobnicate","operands":[1]}`))
	require.Error(t, err)
	assert.True(t, exprErrors.IsUnknownOperator(err))

	var c expression.Condition
	err = yaml.Unmarshal([]byte("operator: bogus\noperands: [1]\n"), &c)
	require.Error(t, err)
}

func TestConditionFrom(t *testing.T) {
	cond, err := expression.ConditionFrom("in", []any{1, 2, 4})
	require.NoError(t, err)

	p := expression.NewParams()
	expr, err := expression.BuildConditionExpression(p, expression.ConditionSet{"x": cond})
	require.NoError(t, err)
	assert.Equal(t, "#x IN (:x0, :x1, :x2)", expr)
}

func TestConditionFromNestedRecords(t *testing.T) {
	cond, err := expression.ConditionFrom("or", []any{
		map[string]any{"operator": ">", "operands": []any{10}},
		map[string]any{"operator": "attribute_not_exists"},
	})
	require.NoError(t, err)

	p := expression.NewParams()
	expr, err := expression.BuildConditionExpression(p, expression.ConditionSet{"n": cond})
	require.NoError(t, err)
	assert.Equal(t, "(#n > :n0 OR attribute_not_exists(#n))", expr)
}
