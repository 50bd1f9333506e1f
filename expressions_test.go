package expressions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	expressions "github.com/henhal/dynamodb-expressions"
)

func TestFacadeConditionBuild(t *testing.T) {
	params, err := expressions.BuildConditionParams(expressions.ConditionSet{
		"status": expressions.In(":open", ":pending"),
		"age":    expressions.Ge(18),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "#age >= :age AND #status IN (:status0, :status1)", params.ConditionExpression)
}

func TestFacadeUpdateBuild(t *testing.T) {
	p := expressions.NewParams()
	update, err := expressions.BuildUpdateParams(expressions.UpdateAttributes{
		"visits": expressions.Add(1),
		"draft":  expressions.Remove(),
		"tags":   expressions.Set(expressions.Append("tags", []string{"new"})),
	}, p)
	require.NoError(t, err)

	assert.Equal(t, "SET #tags = list_append(#tags, :tags1) REMOVE #draft ADD #visits :add_visits", update.UpdateExpression)
}

func TestFacadeSerde(t *testing.T) {
	cond, err := expressions.ConditionFromJSON([]byte(`{"operator":">","operands":[10]}`))
	require.NoError(t, err)

	expr, err := expressions.BuildConditionExpression(expressions.NewParams(), expressions.ConditionSet{"n": cond})
	require.NoError(t, err)
	assert.Equal(t, "#n > :n", expr)
}
