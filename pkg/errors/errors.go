// Package errors defines error types and utilities for dynamodb-expressions
package errors

import (
	"errors"
	"fmt"
)

// Common errors that can occur while building expressions
var (
	// ErrEmptyExpression is returned when a set of conditions or update
	// attributes renders to zero clauses
	ErrEmptyExpression = errors.New("empty expression")

	// ErrUnknownOperator is returned when a serialized condition carries an
	// operator tag outside the known set
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnsupportedValue is returned when a value cannot be converted to a
	// DynamoDB attribute value
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrInvalidOperand is returned when an operand does not fit the operator
	// it is used with (e.g. a non-set operand to a DELETE action)
	ErrInvalidOperand = errors.New("invalid operand")
)

// ExpressionError represents a build failure with the operation that produced it
type ExpressionError struct {
	Err error
	Op  string
}

// Error implements the error interface
func (e *ExpressionError) Error() string {
	if e == nil {
		return "expressions: build failed"
	}
	return fmt.Sprintf("expressions: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *ExpressionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is checks if the error matches the target error
func (e *ExpressionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new ExpressionError
func NewError(op string, err error) *ExpressionError {
	return &ExpressionError{Op: op, Err: err}
}

// IsEmptyExpression checks if an error indicates that nothing rendered
func IsEmptyExpression(err error) bool {
	return errors.Is(err, ErrEmptyExpression)
}

// IsUnknownOperator checks if an error indicates an unrecognized operator tag
func IsUnknownOperator(err error) bool {
	return errors.Is(err, ErrUnknownOperator)
}
