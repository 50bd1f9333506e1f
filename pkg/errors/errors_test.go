package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

func TestExpressionError(t *testing.T) {
	err := exprErrors.NewError("BuildConditionParams", exprErrors.ErrEmptyExpression)

	assert.Contains(t, err.Error(), "BuildConditionParams")
	assert.ErrorIs(t, err, exprErrors.ErrEmptyExpression)
	assert.Equal(t, exprErrors.ErrEmptyExpression, err.Unwrap())
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", exprErrors.ErrUnknownOperator)

	assert.True(t, exprErrors.IsUnknownOperator(wrapped))
	assert.False(t, exprErrors.IsEmptyExpression(wrapped))
	assert.True(t, exprErrors.IsEmptyExpression(exprErrors.NewError("op", exprErrors.ErrEmptyExpression)))
}
