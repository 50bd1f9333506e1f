package expression

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	exprErrors "github.com/henhal/dynamodb-expressions/pkg/errors"
)

// conditionRecord is the transport shape of a condition tree: an operator tag
// plus its operand list, with nested conditions as nested records.
type conditionRecord struct {
	Operator string `json:"operator" yaml:"operator"`
	Operands []any  `json:"operands,omitempty" yaml:"operands,omitempty"`
}

// MarshalJSON serializes the condition as an operator+operands record.
func (c *Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionRecord{Operator: string(c.operator), Operands: c.operands})
}

// UnmarshalJSON rebuilds a condition from its record form. Unknown operator
// tags are rejected with ErrUnknownOperator.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var record conditionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	parsed, err := ConditionFrom(record.Operator, record.Operands)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// MarshalYAML serializes the condition as an operator+operands record.
func (c *Condition) MarshalYAML() (any, error) {
	return conditionRecord{Operator: string(c.operator), Operands: c.operands}, nil
}

// UnmarshalYAML rebuilds a condition from its record form.
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	var record conditionRecord
	if err := node.Decode(&record); err != nil {
		return err
	}
	parsed, err := ConditionFrom(record.Operator, record.Operands)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// ConditionFromJSON deserializes a condition tree from JSON.
func ConditionFromJSON(data []byte) (*Condition, error) {
	var c Condition
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ConditionFromYAML deserializes a condition tree from YAML, e.g. conditions
// stored in configuration files.
func ConditionFromYAML(data []byte) (*Condition, error) {
	var c Condition
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ConditionFrom rebuilds a condition node from an operator tag and operand
// list. Operands that are themselves records (maps carrying an "operator"
// key) become nested conditions; everything else stays a literal operand.
func ConditionFrom(operator string, operands []any) (*Condition, error) {
	op := Operator(operator)
	if !knownOperators[op] {
		return nil, fmt.Errorf("%w: %q", exprErrors.ErrUnknownOperator, operator)
	}

	rebuilt := make([]any, len(operands))
	for i, operand := range operands {
		nested, ok, err := nestedRecord(operand)
		if err != nil {
			return nil, err
		}
		if ok {
			rebuilt[i] = nested
		} else {
			rebuilt[i] = operand
		}
	}
	return &Condition{operator: op, operands: rebuilt}, nil
}

// nestedRecord detects and rebuilds a nested condition record operand.
func nestedRecord(operand any) (*Condition, bool, error) {
	m, ok := operand.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	tag, ok := m["operator"].(string)
	if !ok {
		return nil, false, nil
	}

	var operands []any
	if raw, present := m["operands"]; present {
		operands, ok = raw.([]any)
		if !ok {
			return nil, false, fmt.Errorf("%w: operands of %q is not a list", exprErrors.ErrInvalidOperand, tag)
		}
	}

	nested, err := ConditionFrom(tag, operands)
	if err != nil {
		return nil, false, err
	}
	return nested, true, nil
}
