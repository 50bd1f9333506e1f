// Package request applies built expression params to DynamoDB SDK inputs.
// It only constructs input structs; issuing the call is left to the caller's
// client. Empty name/value tables are omitted, since DynamoDB rejects empty
// expression attribute maps.
package request

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/henhal/dynamodb-expressions/pkg/expression"
)

// Update builds an UpdateItemInput from update params and an optional
// condition built against the same expression.Params.
func Update(table string, key map[string]types.AttributeValue, update *expression.UpdateParams, condition *expression.ConditionParams) *dynamodb.UpdateItemInput {
	input := &dynamodb.UpdateItemInput{
		TableName:        aws.String(table),
		Key:              key,
		UpdateExpression: aws.String(update.UpdateExpression),
	}

	names := mergeNames(update.Names, nil)
	values := mergeValues(update.Values, nil)
	if condition != nil {
		input.ConditionExpression = aws.String(condition.ConditionExpression)
		names = mergeNames(names, condition.Names)
		values = mergeValues(values, condition.Values)
	}

	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if len(values) > 0 {
		input.ExpressionAttributeValues = values
	}
	return input
}

// Query builds a QueryInput from a key condition and an optional filter
// built against the same expression.Params.
func Query(table string, keyCondition *expression.KeyConditionParams, filter *expression.FilterParams) *dynamodb.QueryInput {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String(keyCondition.KeyConditionExpression),
	}

	names := mergeNames(keyCondition.Names, nil)
	values := mergeValues(keyCondition.Values, nil)
	if filter != nil {
		input.FilterExpression = aws.String(filter.FilterExpression)
		names = mergeNames(names, filter.Names)
		values = mergeValues(values, filter.Values)
	}

	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if len(values) > 0 {
		input.ExpressionAttributeValues = values
	}
	return input
}

// Scan builds a ScanInput with an optional filter.
func Scan(table string, filter *expression.FilterParams) *dynamodb.ScanInput {
	input := &dynamodb.ScanInput{
		TableName: aws.String(table),
	}
	if filter != nil {
		input.FilterExpression = aws.String(filter.FilterExpression)
		if len(filter.Names) > 0 {
			input.ExpressionAttributeNames = mergeNames(filter.Names, nil)
		}
		if len(filter.Values) > 0 {
			input.ExpressionAttributeValues = mergeValues(filter.Values, nil)
		}
	}
	return input
}

// Put builds a PutItemInput with an optional condition.
func Put(table string, item map[string]types.AttributeValue, condition *expression.ConditionParams) *dynamodb.PutItemInput {
	input := &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}
	applyCondition(condition, &input.ConditionExpression, &input.ExpressionAttributeNames, &input.ExpressionAttributeValues)
	return input
}

// Delete builds a DeleteItemInput with an optional condition.
func Delete(table string, key map[string]types.AttributeValue, condition *expression.ConditionParams) *dynamodb.DeleteItemInput {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	}
	applyCondition(condition, &input.ConditionExpression, &input.ExpressionAttributeNames, &input.ExpressionAttributeValues)
	return input
}

// ConditionCheck builds a transact-write condition check item.
func ConditionCheck(table string, key map[string]types.AttributeValue, condition *expression.ConditionParams) types.TransactWriteItem {
	check := &types.ConditionCheck{
		TableName:           aws.String(table),
		Key:                 key,
		ConditionExpression: aws.String(condition.ConditionExpression),
	}
	if len(condition.Names) > 0 {
		check.ExpressionAttributeNames = mergeNames(condition.Names, nil)
	}
	if len(condition.Values) > 0 {
		check.ExpressionAttributeValues = mergeValues(condition.Values, nil)
	}
	return types.TransactWriteItem{ConditionCheck: check}
}

// TransactWrite bundles transact-write items with a fresh client request
// token, so retries of the same bundle stay idempotent.
func TransactWrite(items ...types.TransactWriteItem) *dynamodb.TransactWriteItemsInput {
	return &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(uuid.NewString()),
	}
}

func applyCondition(condition *expression.ConditionParams, expr **string, names *map[string]string, values *map[string]types.AttributeValue) {
	if condition == nil {
		return
	}
	*expr = aws.String(condition.ConditionExpression)
	if len(condition.Names) > 0 {
		*names = mergeNames(condition.Names, nil)
	}
	if len(condition.Values) > 0 {
		*values = mergeValues(condition.Values, nil)
	}
}

func mergeNames(a, b map[string]string) map[string]string {
	merged := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

func mergeValues(a, b map[string]types.AttributeValue) map[string]types.AttributeValue {
	merged := make(map[string]types.AttributeValue, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}
