package expression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
	"github.com/henhal/dynamodb-expressions/pkg/expression"
)

func TestBuildConditionParams(t *testing.T) {
	params, err := expression.BuildConditionParams(expression.ConditionSet{"a": 42}, nil)
	require.NoError(t, err)

	assert.Equal(t, "#a = :a", params.ConditionExpression)
	assert.Equal(t, "a", params.Names["#a"])
	assert.Len(t, params.Values, 1)
}

func TestBuildKeyConditionAndFilterParams(t *testing.T) {
	// '#' in a literal must be escaped with a leading ':' or it would be
	// taken for an attribute reference.
	key, err := expression.BuildKeyConditionParams(expression.ConditionSet{
		"pk": ":USER#1",
		"sk": expression.BeginsWith(":ORDER#"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "#pk = :pk AND begins_with(#sk, :sk)", key.KeyConditionExpression)

	filter, err := expression.BuildFilterParams(expression.ConditionSet{"status": "open"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "#status = :status", filter.FilterExpression)
}

func TestBuildParamsEmptyExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{
			name: "empty condition set",
			build: func() error {
				_, err := expression.BuildConditionParams(expression.ConditionSet{}, nil)
				return err
			},
		},
		{
			name: "empty composite",
			build: func() error {
				_, err := expression.BuildKeyConditionParams(expression.CompositeAnd(), nil)
				return err
			},
		},
		{
			name: "empty filter",
			build: func() error {
				_, err := expression.BuildFilterParams(expression.ConditionSet{}, nil)
				return err
			},
		},
		{
			name: "empty update attributes",
			build: func() error {
				_, err := expression.BuildUpdateParams(expression.UpdateAttributes{}, nil)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.True(t, exprErrors.IsEmptyExpression(err))
		})
	}
}

func TestSharedParamsAccumulate(t *testing.T) {
	// An update expression and a condition expression for one request share
	// a single placeholder namespace.
	p := expression.NewParams()

	update, err := expression.BuildUpdateParams(expression.UpdateAttributes{
		"count": expression.Set(expression.Plus("count", 1)),
	}, p)
	require.NoError(t, err)

	condition, err := expression.BuildConditionParams(expression.ConditionSet{
		"count": expression.Lt(10),
	}, p)
	require.NoError(t, err)

	assert.Equal(t, "SET #count = #count + :count1", update.UpdateExpression)
	assert.Equal(t, "#count < :count", condition.ConditionExpression)

	// Both results expose the same accumulated tables.
	assert.Equal(t, update.Names, condition.Names)
	assert.Equal(t, update.Values, condition.Values)
	assert.Equal(t, map[string]string{"#count": "count"}, condition.Names)
	assert.Len(t, condition.Values, 2)
}

func TestBuildPreservesExistingEntries(t *testing.T) {
	p := expression.NewParams()
	p.BindName("existing")
	_, err := p.BindValue("kept", "keep")
	require.NoError(t, err)

	params, err := expression.BuildConditionParams(expression.ConditionSet{"a": 1}, p)
	require.NoError(t, err)

	assert.Equal(t, "existing", params.Names["#existing"])
	assert.Contains(t, params.Values, ":keep")
}
