// Package avutil provides helpers for working with DynamoDB attribute values:
// marshaling Go values, structural equality, ordering comparisons and the
// conversions needed by set-typed update operands.
package avutil

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

// Marshal converts a Go value to a DynamoDB AttributeValue. Values that are
// already attribute values pass through unchanged.
func Marshal(value any) (types.AttributeValue, error) {
	if av, ok := value.(types.AttributeValue); ok {
		return av, nil
	}

	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exprErrors.ErrUnsupportedValue, err)
	}
	return av, nil
}

// Equal reports whether two attribute values are structurally identical.
func Equal(a, b types.AttributeValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberB:
		bv, ok := b.(*types.AttributeValueMemberB)
		return ok && bytes.Equal(av.Value, bv.Value)
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberNULL:
		bv, ok := b.(*types.AttributeValueMemberNULL)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberSS:
		bv, ok := b.(*types.AttributeValueMemberSS)
		return ok && reflect.DeepEqual(av.Value, bv.Value)
	case *types.AttributeValueMemberNS:
		bv, ok := b.(*types.AttributeValueMemberNS)
		return ok && reflect.DeepEqual(av.Value, bv.Value)
	case *types.AttributeValueMemberBS:
		bv, ok := b.(*types.AttributeValueMemberBS)
		if !ok || len(av.Value) != len(bv.Value) {
			return false
		}
		for i := range av.Value {
			if !bytes.Equal(av.Value[i], bv.Value[i]) {
				return false
			}
		}
		return true
	case *types.AttributeValueMemberL:
		bv, ok := b.(*types.AttributeValueMemberL)
		if !ok || len(av.Value) != len(bv.Value) {
			return false
		}
		for i := range av.Value {
			if !Equal(av.Value[i], bv.Value[i]) {
				return false
			}
		}
		return true
	case *types.AttributeValueMemberM:
		bv, ok := b.(*types.AttributeValueMemberM)
		if !ok || len(av.Value) != len(bv.Value) {
			return false
		}
		for k, v := range av.Value {
			other, present := bv.Value[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// Compare orders two attribute values of the same comparable type (string,
// number or binary). The second result is false when the pair is not
// comparable.
func Compare(a, b types.AttributeValue) (int, bool) {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		if !ok {
			return 0, false
		}
		return strings.Compare(av.Value, bv.Value), true
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return 0, false
		}
		an, aerr := strconv.ParseFloat(av.Value, 64)
		bn, berr := strconv.ParseFloat(bv.Value, 64)
		if aerr != nil || berr != nil {
			return strings.Compare(av.Value, bv.Value), true
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	case *types.AttributeValueMemberB:
		bv, ok := b.(*types.AttributeValueMemberB)
		if !ok {
			return 0, false
		}
		return bytes.Compare(av.Value, bv.Value), true
	default:
		return 0, false
	}
}

// TypeTag returns the DynamoDB type descriptor for an attribute value, as
// used by attribute_type conditions.
func TypeTag(av types.AttributeValue) string {
	switch av.(type) {
	case *types.AttributeValueMemberS:
		return "S"
	case *types.AttributeValueMemberN:
		return "N"
	case *types.AttributeValueMemberB:
		return "B"
	case *types.AttributeValueMemberBOOL:
		return "BOOL"
	case *types.AttributeValueMemberNULL:
		return "NULL"
	case *types.AttributeValueMemberL:
		return "L"
	case *types.AttributeValueMemberM:
		return "M"
	case *types.AttributeValueMemberSS:
		return "SS"
	case *types.AttributeValueMemberNS:
		return "NS"
	case *types.AttributeValueMemberBS:
		return "BS"
	default:
		return ""
	}
}

// SizeOf returns the element or character count the DynamoDB size() function
// reports for an attribute value.
func SizeOf(av types.AttributeValue) (int, bool) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return len(v.Value), true
	case *types.AttributeValueMemberB:
		return len(v.Value), true
	case *types.AttributeValueMemberL:
		return len(v.Value), true
	case *types.AttributeValueMemberM:
		return len(v.Value), true
	case *types.AttributeValueMemberSS:
		return len(v.Value), true
	case *types.AttributeValueMemberNS:
		return len(v.Value), true
	case *types.AttributeValueMemberBS:
		return len(v.Value), true
	default:
		return 0, false
	}
}

// Contains mirrors the DynamoDB contains() semantics: substring match for
// strings, membership for sets and lists.
func Contains(container, item types.AttributeValue) bool {
	switch c := container.(type) {
	case *types.AttributeValueMemberS:
		s, ok := item.(*types.AttributeValueMemberS)
		return ok && strings.Contains(c.Value, s.Value)
	case *types.AttributeValueMemberSS:
		s, ok := item.(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		for _, member := range c.Value {
			if member == s.Value {
				return true
			}
		}
		return false
	case *types.AttributeValueMemberNS:
		n, ok := item.(*types.AttributeValueMemberN)
		if !ok {
			return false
		}
		for _, member := range c.Value {
			if member == n.Value {
				return true
			}
		}
		return false
	case *types.AttributeValueMemberBS:
		b, ok := item.(*types.AttributeValueMemberB)
		if !ok {
			return false
		}
		for _, member := range c.Value {
			if bytes.Equal(member, b.Value) {
				return true
			}
		}
		return false
	case *types.AttributeValueMemberL:
		for _, member := range c.Value {
			if Equal(member, item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MarshalSet converts a value to a DynamoDB set attribute value for ADD and
// DELETE update operands. Scalars are wrapped in a single-element set.
func MarshalSet(value any) (types.AttributeValue, error) {
	if av, ok := value.(types.AttributeValue); ok {
		switch av.(type) {
		case *types.AttributeValueMemberSS, *types.AttributeValueMemberNS, *types.AttributeValueMemberBS:
			return av, nil
		}
		return nil, fmt.Errorf("%w: attribute value is not a set", exprErrors.ErrInvalidOperand)
	}

	switch v := value.(type) {
	case string:
		return &types.AttributeValueMemberSS{Value: []string{v}}, nil
	case []string:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty set", exprErrors.ErrInvalidOperand)
		}
		return &types.AttributeValueMemberSS{Value: v}, nil
	case []byte:
		return &types.AttributeValueMemberBS{Value: [][]byte{v}}, nil
	case [][]byte:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty set", exprErrors.ErrInvalidOperand)
		}
		return &types.AttributeValueMemberBS{Value: v}, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		if n, ok := numberString(rv); ok {
			return &types.AttributeValueMemberNS{Value: []string{n}}, nil
		}
		return nil, fmt.Errorf("%w: set operand requires a slice or scalar, got %T", exprErrors.ErrInvalidOperand, value)
	}
	if rv.Len() == 0 {
		return nil, fmt.Errorf("%w: empty set", exprErrors.ErrInvalidOperand)
	}

	first := rv.Index(0)
	if first.Kind() == reflect.Interface {
		first = first.Elem()
	}

	if first.Kind() == reflect.String {
		set := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			if elem.Kind() == reflect.Interface {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.String {
				return nil, fmt.Errorf("%w: mixed types in string set", exprErrors.ErrInvalidOperand)
			}
			set[i] = elem.String()
		}
		return &types.AttributeValueMemberSS{Value: set}, nil
	}

	set := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		n, ok := numberString(elem)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported set element type %s", exprErrors.ErrInvalidOperand, elem.Kind())
		}
		set[i] = n
	}
	return &types.AttributeValueMemberNS{Value: set}, nil
}

func numberString(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	default:
		return "", false
	}
}
