/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package executor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riaz37/clarifaior/internal/agent/constants"
)

// Condition operators.
const (
	OperatorEquals      = "equals"
	OperatorNotEquals   = "not-equals"
	OperatorContains    = "contains"
	OperatorGreaterThan = "greater-than"
	OperatorLessThan    = "less-than"
)

// ConditionExecutor handles condition nodes. Its boolean output selects the
// true or false branch via the outgoing edges' source handles.
type ConditionExecutor struct{}

// NewConditionExecutor creates a condition executor.
func NewConditionExecutor() *ConditionExecutor {
	return &ConditionExecutor{}
}

// GetType returns the node type handled by this executor.
func (e *ConditionExecutor) GetType() string {
	return constants.NodeTypeCondition
}

// Execute evaluates the resolved condition against the comparison value.
func (e *ConditionExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	condition, ok := config["condition"]
	if !ok {
		return ExecutionResult{}, fmt.Errorf("missing required configuration: condition")
	}

	operator := optionalString(config, "operator")
	if operator == "" {
		operator = OperatorEquals
	}

	result, err := evaluate(condition, operator, config["value"])
	if err != nil {
		return ExecutionResult{}, err
	}

	return ExecutionResult{
		Output: map[string]any{
			"result": result,
		},
	}, nil
}

// evaluate applies the operator to the condition and comparison values.
func evaluate(condition any, operator string, value any) (bool, error) {
	switch operator {
	case OperatorEquals:
		return asComparableString(condition) == asComparableString(value), nil
	case OperatorNotEquals:
		return asComparableString(condition) != asComparableString(value), nil
	case OperatorContains:
		return strings.Contains(asComparableString(condition), asComparableString(value)), nil
	case OperatorGreaterThan, OperatorLessThan:
		left, err := asNumber(condition)
		if err != nil {
			return false, err
		}
		right, err := asNumber(value)
		if err != nil {
			return false, err
		}
		if operator == OperatorGreaterThan {
			return left > right, nil
		}
		return left < right, nil
	default:
		return false, fmt.Errorf("unsupported condition operator: %s", operator)
	}
}

// asComparableString renders a value for string comparison.
func asComparableString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asNumber coerces a value for numeric comparison.
func asNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		number, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value is not numeric: %q", v)
		}
		return number, nil
	default:
		return 0, fmt.Errorf("value is not numeric: %v", value)
	}
}
