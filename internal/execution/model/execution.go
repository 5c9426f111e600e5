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

// Package model defines the data structures for executions and execution steps.
package model

import (
	"fmt"
	"time"
)

// ExecutionStatus represents the lifecycle state of an execution.
type ExecutionStatus string

// Execution lifecycle states.
const (
	// StatusPending is the initial state set at enqueue time.
	StatusPending ExecutionStatus = "pending"
	// StatusRunning is entered exactly once, when a coordinator begins processing.
	StatusRunning ExecutionStatus = "running"
	// StatusCompleted is the terminal state of a successful run.
	StatusCompleted ExecutionStatus = "completed"
	// StatusFailed is the terminal state of a run aborted by a node error.
	StatusFailed ExecutionStatus = "failed"
	// StatusCancelled is the terminal state of an externally cancelled run.
	StatusCancelled ExecutionStatus = "cancelled"
)

// allowedTransitions defines the execution state machine.
var allowedTransitions = map[ExecutionStatus][]ExecutionStatus{
	StatusPending: {StatusRunning, StatusCancelled},
	StatusRunning: {StatusCompleted, StatusFailed, StatusCancelled},
}

// IsTerminal reports whether the status permits no further transitions.
func (s ExecutionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (s ExecutionStatus) CanTransitionTo(next ExecutionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Execution represents one run of an agent's flow graph.
type Execution struct {
	ID          string          `json:"id"`
	AgentID     string          `json:"agentId"`
	Status      ExecutionStatus `json:"status"`
	TriggerType string          `json:"triggerType"`
	TriggerData map[string]any  `json:"triggerData,omitempty"`
	Context     map[string]any  `json:"context,omitempty"`
	TestMode    bool            `json:"testMode"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// TransitionTo moves the execution to the next status, stamping the start time
// on entering running and the completion time on entering a terminal state.
// Transitions out of terminal states are rejected.
func (e *Execution) TransitionTo(next ExecutionStatus, at time.Time) error {
	if !e.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid status transition: %s -> %s", e.Status, next)
	}

	e.Status = next
	switch {
	case next == StatusRunning:
		e.StartedAt = &at
	case next.IsTerminal():
		e.CompletedAt = &at
	}
	return nil
}

// StepStatus represents the lifecycle state of an execution step.
type StepStatus string

// Execution step states.
const (
	// StepStatusRunning is set when a node begins executing.
	StepStatusRunning StepStatus = "running"
	// StepStatusCompleted is set when the node's executor returned successfully.
	StepStatusCompleted StepStatus = "completed"
	// StepStatusFailed is set when the node's executor returned an error.
	StepStatusFailed StepStatus = "failed"
)

// ExecutionStep represents one node's outcome within an execution.
// Step numbers are 1-based and assigned at dispatch time.
type ExecutionStep struct {
	ExecutionID string         `json:"executionId"`
	NodeID      string         `json:"nodeId"`
	StepNumber  int            `json:"stepNumber"`
	Status      StepStatus     `json:"status"`
	Input       map[string]any `json:"input,omitempty"`
	Output      map[string]any `json:"output,omitempty"`
	Error       string         `json:"error,omitempty"`
	DurationMs  int64          `json:"durationMs"`
	TokensUsed  int            `json:"tokensUsed,omitempty"`
	Cost        float64        `json:"cost,omitempty"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}
