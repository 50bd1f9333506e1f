package expression_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henhal/dynamodb-expressions/pkg/expression"
)

func TestOperandEscapeGrammar(t *testing.T) {
	tests := []struct {
		name          string
		operand       any
		expectedExpr  string
		expectedValue types.AttributeValue
	}{
		{
			name:          "explicit value escape",
			operand:       ":literal",
			expectedExpr:  "#a = :a",
			expectedValue: &types.AttributeValueMemberS{Value: "literal"},
		},
		{
			name:          "double colon yields single-colon literal",
			operand:       "::foo",
			expectedExpr:  "#a = :a",
			expectedValue: &types.AttributeValueMemberS{Value: ":foo"},
		},
		{
			name:          "colon hash yields hash literal",
			operand:       ":#foo",
			expectedExpr:  "#a = :a",
			expectedValue: &types.AttributeValueMemberS{Value: "#foo"},
		},
		{
			name:         "bare hash references an attribute",
			operand:      "#other",
			expectedExpr: "#a = #other",
		},
		{
			name:         "function-wrapped reference is spliced",
			operand:      "size(#other)",
			expectedExpr: "#a = size(#other)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := expression.NewParams()
			expr, err := expression.BuildConditionExpression(p, expression.ConditionSet{"a": tt.operand})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedExpr, expr)
			if tt.expectedValue != nil {
				assert.Equal(t, tt.expectedValue, p.Values[":a"])
			} else {
				assert.Empty(t, p.Values)
			}
		})
	}
}

func TestPathKeyEscapes(t *testing.T) {
	t.Run("double hash key names an attribute containing a hash", func(t *testing.T) {
		p := expression.NewParams()
		expr, err := expression.BuildConditionExpression(p, expression.ConditionSet{"##foo": expression.Eq(1)})
		require.NoError(t, err)

		assert.Equal(t, "#foo = :foo", expr)
		assert.Equal(t, "#foo", p.Names["#foo"])
	})

	t.Run("size-wrapped key form", func(t *testing.T) {
		p := expression.NewParams()
		expr, err := expression.BuildConditionExpression(p, expression.ConditionSet{"size(#items)": expression.Gt(3)})
		require.NoError(t, err)

		assert.Equal(t, "size(#items) > :sizeitems", expr)
		assert.Equal(t, "items", p.Names["#items"])
	})

	t.Run("dotted path with index suffix", func(t *testing.T) {
		p := expression.NewParams()
		expr, err := expression.BuildConditionExpression(p, expression.ConditionSet{"orders[2].total": expression.Ge(100)})
		require.NoError(t, err)

		assert.Equal(t, "#orders[2].#total >= :orders2total", expr)
		assert.Equal(t, map[string]string{"#orders": "orders", "#total": "total"}, p.Names)
	})
}

func TestCollisionSafetyAcrossEscapedPaths(t *testing.T) {
	// "##foo" binds raw key "#foo"; "foo" would naturally take the same
	// placeholder and must be disambiguated instead of clobbering it.
	p := expression.NewParams()
	_, err := expression.BuildConditionExpression(p, expression.ConditionSet{
		"##foo": expression.Eq(1),
		"foo":   expression.Eq(2),
	})
	require.NoError(t, err)

	require.Len(t, p.Names, 2)
	seen := make(map[string]bool)
	for placeholder, raw := range p.Names {
		seen[raw] = true
		assert.NotEmpty(t, placeholder)
	}
	assert.True(t, seen["#foo"])
	assert.True(t, seen["foo"])
}
