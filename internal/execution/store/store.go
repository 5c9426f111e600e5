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

// Package store provides persistence for executions and execution steps.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/riaz37/clarifaior/internal/execution/model"
	"github.com/riaz37/clarifaior/internal/system/database/provider"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

// ErrExecutionNotFound is returned when the requested execution does not exist.
var ErrExecutionNotFound = errors.New("execution not found")

// ExecutionStoreInterface defines the interface for execution persistence operations.
type ExecutionStoreInterface interface {
	CreateExecution(execution model.Execution) error
	GetExecution(id string) (model.Execution, error)
	UpdateExecutionStatus(execution model.Execution) error
	CreateExecutionStep(step model.ExecutionStep) error
	CompleteExecutionStep(step model.ExecutionStep) error
	ListExecutionSteps(executionID string) ([]model.ExecutionStep, error)
}

// executionStore is the default implementation of ExecutionStoreInterface.
type executionStore struct {
	dbProvider provider.DBProviderInterface
}

// NewExecutionStore creates a new execution store backed by the runtime database.
func NewExecutionStore(dbProvider provider.DBProviderInterface) ExecutionStoreInterface {
	return &executionStore{
		dbProvider: dbProvider,
	}
}

// CreateExecution inserts a new execution record.
func (s *executionStore) CreateExecution(execution model.Execution) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	triggerData, err := utils.SerializeJSON(execution.TriggerData)
	if err != nil {
		return fmt.Errorf("failed to serialize trigger data: %w", err)
	}
	contextData, err := utils.SerializeJSON(execution.Context)
	if err != nil {
		return fmt.Errorf("failed to serialize context data: %w", err)
	}

	_, err = dbClient.Execute(queryCreateExecution, execution.ID, execution.AgentID, string(execution.Status),
		execution.TriggerType, triggerData, contextData, execution.TestMode, execution.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetExecution retrieves an execution by its ID.
func (s *executionStore) GetExecution(id string) (model.Execution, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return model.Execution{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetExecutionByID, id)
	if err != nil {
		return model.Execution{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return model.Execution{}, ErrExecutionNotFound
	}
	if len(results) != 1 {
		return model.Execution{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildExecutionFromResultRow(results[0])
}

// UpdateExecutionStatus persists the status, error and transition timestamps.
func (s *executionStore) UpdateExecutionStatus(execution model.Execution) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(queryUpdateExecutionStatus, execution.ID, string(execution.Status),
		execution.Error, timeOrNil(execution.StartedAt), timeOrNil(execution.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExecutionNotFound
	}

	return nil
}

// CreateExecutionStep inserts a step record in its running state.
func (s *executionStore) CreateExecutionStep(step model.ExecutionStep) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	inputData, err := utils.SerializeJSON(step.Input)
	if err != nil {
		return fmt.Errorf("failed to serialize step input: %w", err)
	}

	_, err = dbClient.Execute(queryCreateExecutionStep, step.ExecutionID, step.NodeID, step.StepNumber,
		string(step.Status), inputData, step.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// CompleteExecutionStep finalizes a step with its output, error and metrics.
func (s *executionStore) CompleteExecutionStep(step model.ExecutionStep) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	outputData, err := utils.SerializeJSON(step.Output)
	if err != nil {
		return fmt.Errorf("failed to serialize step output: %w", err)
	}

	_, err = dbClient.Execute(queryCompleteExecutionStep, step.ExecutionID, step.StepNumber, string(step.Status),
		outputData, step.Error, step.DurationMs, step.TokensUsed, step.Cost, timeOrNil(step.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// ListExecutionSteps retrieves all steps of an execution ordered by step number.
func (s *executionStore) ListExecutionSteps(executionID string) ([]model.ExecutionStep, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryListExecutionSteps, executionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	steps := make([]model.ExecutionStep, 0, len(results))
	for _, row := range results {
		step, err := buildExecutionStepFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build execution step from result row: %w", err)
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// buildExecutionFromResultRow constructs an execution from a database result row.
func buildExecutionFromResultRow(row map[string]interface{}) (model.Execution, error) {
	executionID, ok := row["execution_id"].(string)
	if !ok {
		return model.Execution{}, fmt.Errorf("failed to parse execution_id as string")
	}
	agentID, ok := row["agent_id"].(string)
	if !ok {
		return model.Execution{}, fmt.Errorf("failed to parse agent_id as string")
	}
	status, ok := row["status"].(string)
	if !ok {
		return model.Execution{}, fmt.Errorf("failed to parse status as string")
	}

	execution := model.Execution{
		ID:          executionID,
		AgentID:     agentID,
		Status:      model.ExecutionStatus(status),
		TriggerType: parseOptionalString(row["trigger_type"]),
		TestMode:    parseBoolean(row["test_mode"]),
		Error:       parseOptionalString(row["error_message"]),
		StartedAt:   parseOptionalTime(row["started_at"]),
		CompletedAt: parseOptionalTime(row["completed_at"]),
	}

	if createdAt := parseOptionalTime(row["created_at"]); createdAt != nil {
		execution.CreatedAt = *createdAt
	}

	if data := parseOptionalString(row["trigger_data"]); data != "" {
		if err := utils.DeserializeJSON(data, &execution.TriggerData); err != nil {
			return model.Execution{}, fmt.Errorf("failed to deserialize trigger data: %w", err)
		}
	}
	if data := parseOptionalString(row["context_data"]); data != "" {
		if err := utils.DeserializeJSON(data, &execution.Context); err != nil {
			return model.Execution{}, fmt.Errorf("failed to deserialize context data: %w", err)
		}
	}

	return execution, nil
}

// buildExecutionStepFromResultRow constructs an execution step from a database result row.
func buildExecutionStepFromResultRow(row map[string]interface{}) (model.ExecutionStep, error) {
	executionID, ok := row["execution_id"].(string)
	if !ok {
		return model.ExecutionStep{}, fmt.Errorf("failed to parse execution_id as string")
	}
	nodeID, ok := row["node_id"].(string)
	if !ok {
		return model.ExecutionStep{}, fmt.Errorf("failed to parse node_id as string")
	}
	status, ok := row["status"].(string)
	if !ok {
		return model.ExecutionStep{}, fmt.Errorf("failed to parse status as string")
	}

	step := model.ExecutionStep{
		ExecutionID: executionID,
		NodeID:      nodeID,
		StepNumber:  int(parseInt64(row["step_number"])),
		Status:      model.StepStatus(status),
		Error:       parseOptionalString(row["error_message"]),
		DurationMs:  parseInt64(row["duration_ms"]),
		TokensUsed:  int(parseInt64(row["tokens_used"])),
		Cost:        parseFloat64(row["cost"]),
		CompletedAt: parseOptionalTime(row["completed_at"]),
	}

	if startedAt := parseOptionalTime(row["started_at"]); startedAt != nil {
		step.StartedAt = *startedAt
	}

	if data := parseOptionalString(row["input_data"]); data != "" {
		if err := utils.DeserializeJSON(data, &step.Input); err != nil {
			return model.ExecutionStep{}, fmt.Errorf("failed to deserialize step input: %w", err)
		}
	}
	if data := parseOptionalString(row["output_data"]); data != "" {
		if err := utils.DeserializeJSON(data, &step.Output); err != nil {
			return model.ExecutionStep{}, fmt.Errorf("failed to deserialize step output: %w", err)
		}
	}

	return step, nil
}

// timeOrNil converts an optional time into a driver-friendly value.
func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// parseOptionalString parses a nullable string column.
func parseOptionalString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// parseOptionalTime parses a nullable timestamp column across database drivers.
func parseOptionalTime(value interface{}) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case string:
		if v == "" {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &parsed
		}
		return nil
	default:
		return nil
	}
}

// parseInt64 parses an integer column across database drivers.
func parseInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// parseFloat64 parses a floating point column across database drivers.
func parseFloat64(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		return 0
	default:
		return 0
	}
}

// parseBoolean parses a boolean column across database drivers.
func parseBoolean(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}
