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

// Package service provides execution management operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	agentconstants "github.com/riaz37/clarifaior/internal/agent/constants"
	agentstore "github.com/riaz37/clarifaior/internal/agent/store"
	"github.com/riaz37/clarifaior/internal/execution/constants"
	"github.com/riaz37/clarifaior/internal/execution/model"
	execstore "github.com/riaz37/clarifaior/internal/execution/store"
	"github.com/riaz37/clarifaior/internal/flow/engine"
	"github.com/riaz37/clarifaior/internal/flow/validator"
	"github.com/riaz37/clarifaior/internal/runqueue"
	"github.com/riaz37/clarifaior/internal/system/error/serviceerror"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

const loggerComponentName = "ExecutionService"

// ExecutionRequest is a request to run an agent flow.
type ExecutionRequest struct {
	AgentID     string         `json:"agentId"`
	TriggerType string         `json:"triggerType"`
	TriggerData map[string]any `json:"triggerData,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
	TestMode    bool           `json:"testMode,omitempty"`
}

// JobCanceller withdraws a queued or running job by its id.
type JobCanceller interface {
	Cancel(jobID string) bool
}

// ExecutionServiceInterface defines the interface for execution management operations.
type ExecutionServiceInterface interface {
	EnqueueExecution(request ExecutionRequest) (model.Execution, *serviceerror.ServiceError)
	CancelExecution(id string) *serviceerror.ServiceError
	GetExecution(id string) (model.Execution, *serviceerror.ServiceError)
	ListExecutionSteps(id string) ([]model.ExecutionStep, *serviceerror.ServiceError)
	RunJob(ctx context.Context, job runqueue.Job) error
	SetJobCanceller(canceller JobCanceller)
}

type executionService struct {
	execStore   execstore.ExecutionStoreInterface
	agentStore  agentstore.AgentStoreInterface
	coordinator engine.CoordinatorInterface
	queue       runqueue.QueueInterface
	canceller   JobCanceller
	policy      runqueue.RetryPolicy
	testPolicy  runqueue.RetryPolicy
}

// NewExecutionService creates a new execution service. The retry policies must
// match the worker pool's so the runner can tell a final attempt from an
// intermediate one.
func NewExecutionService(execStore execstore.ExecutionStoreInterface,
	agentStore agentstore.AgentStoreInterface, coordinator engine.CoordinatorInterface,
	queue runqueue.QueueInterface, policy, testPolicy runqueue.RetryPolicy) ExecutionServiceInterface {
	return &executionService{
		execStore:   execStore,
		agentStore:  agentStore,
		coordinator: coordinator,
		queue:       queue,
		policy:      policy,
		testPolicy:  testPolicy,
	}
}

// SetJobCanceller wires the worker pool in after both sides exist.
func (s *executionService) SetJobCanceller(canceller JobCanceller) {
	s.canceller = canceller
}

// EnqueueExecution creates a pending execution for the agent and schedules it
// on the run queue. The agent's graph is validated again here so a graph that
// was saved before a validation rule changed cannot reach the engine.
func (s *executionService) EnqueueExecution(request ExecutionRequest) (
	model.Execution, *serviceerror.ServiceError,
) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if request.AgentID == "" {
		return model.Execution{}, &agentconstants.ErrorMissingAgentID
	}
	if request.TriggerType == "" {
		return model.Execution{}, &constants.ErrorInvalidRequestFormat
	}

	agent, err := s.agentStore.GetAgent(request.AgentID)
	if err != nil {
		if errors.Is(err, agentstore.ErrAgentNotFound) {
			return model.Execution{}, &agentconstants.ErrorAgentNotFound
		}
		logger.Error("Failed to load agent", log.String(log.LoggerKeyAgentID, request.AgentID),
			log.Error(err))
		return model.Execution{}, &constants.ErrorInternalServerError
	}

	// Test runs are allowed on inactive agents so flows can be tried out
	// before activation.
	if !agent.IsActive && !request.TestMode {
		return model.Execution{}, &agentconstants.ErrorAgentNotActive
	}

	if result := validator.Validate(agent.Graph); !result.Valid {
		logger.Debug("Rejecting execution of invalid graph",
			log.String(log.LoggerKeyAgentID, request.AgentID),
			log.Int("errorCount", len(result.Errors)))
		return model.Execution{}, &agentconstants.ErrorAgentGraphInvalid
	}

	execution := model.Execution{
		ID:          utils.GenerateUUID(),
		AgentID:     agent.ID,
		Status:      model.StatusPending,
		TriggerType: request.TriggerType,
		TriggerData: request.TriggerData,
		Context:     request.Context,
		TestMode:    request.TestMode,
		CreatedAt:   time.Now(),
	}
	if err := s.execStore.CreateExecution(execution); err != nil {
		logger.Error("Failed to create execution", log.Error(err))
		return model.Execution{}, &constants.ErrorInternalServerError
	}

	job := runqueue.Job{
		ID:          execution.ID,
		ExecutionID: execution.ID,
		AgentID:     agent.ID,
		TestMode:    request.TestMode,
		Attempt:     1,
		EnqueuedAt:  time.Now(),
	}
	if err := s.queue.Enqueue(context.Background(), job); err != nil {
		logger.Error("Failed to enqueue execution job",
			log.String(log.LoggerKeyExecutionID, execution.ID), log.Error(err))
		s.markFailed(execution, "failed to schedule execution", logger)
		return model.Execution{}, &constants.ErrorInternalServerError
	}

	logger.Debug("Execution enqueued", log.String(log.LoggerKeyExecutionID, execution.ID),
		log.String(log.LoggerKeyAgentID, agent.ID))
	return execution, nil
}

// CancelExecution cancels a pending or running execution.
func (s *executionService) CancelExecution(id string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if id == "" {
		return &constants.ErrorMissingExecutionID
	}

	execution, err := s.execStore.GetExecution(id)
	if err != nil {
		if errors.Is(err, execstore.ErrExecutionNotFound) {
			return &constants.ErrorExecutionNotFound
		}
		logger.Error("Failed to load execution", log.String(log.LoggerKeyExecutionID, id),
			log.Error(err))
		return &constants.ErrorInternalServerError
	}
	if execution.Status.IsTerminal() {
		return &constants.ErrorExecutionAlreadyTerminal
	}

	withdrawn := false
	if s.canceller != nil {
		withdrawn = s.canceller.Cancel(id)
	}

	// A running job observes the cancellation itself and the runner records
	// the terminal state. A job withdrawn from the queue, or one the pool no
	// longer knows about, never reaches the runner so the transition happens
	// here.
	if execution.Status == model.StatusPending || !withdrawn {
		if err := execution.TransitionTo(model.StatusCancelled, time.Now()); err != nil {
			logger.Error("Failed to cancel execution", log.String(log.LoggerKeyExecutionID, id),
				log.Error(err))
			return &constants.ErrorInternalServerError
		}
		if err := s.execStore.UpdateExecutionStatus(execution); err != nil {
			logger.Error("Failed to persist cancelled execution",
				log.String(log.LoggerKeyExecutionID, id), log.Error(err))
			return &constants.ErrorInternalServerError
		}
	}

	logger.Debug("Execution cancelled", log.String(log.LoggerKeyExecutionID, id))
	return nil
}

// GetExecution retrieves an execution by its id.
func (s *executionService) GetExecution(id string) (model.Execution, *serviceerror.ServiceError) {
	if id == "" {
		return model.Execution{}, &constants.ErrorMissingExecutionID
	}

	execution, err := s.execStore.GetExecution(id)
	if err != nil {
		if errors.Is(err, execstore.ErrExecutionNotFound) {
			return model.Execution{}, &constants.ErrorExecutionNotFound
		}
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to load execution", log.String(log.LoggerKeyExecutionID, id), log.Error(err))
		return model.Execution{}, &constants.ErrorInternalServerError
	}
	return execution, nil
}

// ListExecutionSteps retrieves the recorded steps of an execution in order.
func (s *executionService) ListExecutionSteps(id string) (
	[]model.ExecutionStep, *serviceerror.ServiceError,
) {
	if _, svcErr := s.GetExecution(id); svcErr != nil {
		return nil, svcErr
	}

	steps, err := s.execStore.ListExecutionSteps(id)
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to list execution steps", log.String(log.LoggerKeyExecutionID, id),
				log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	return steps, nil
}

// RunJob runs one attempt of an execution job. It is the runner handed to the
// worker pool; the pool owns re-enqueueing while this method owns the terminal
// status of the execution record.
func (s *executionService) RunJob(ctx context.Context, job runqueue.Job) error {
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyExecutionID, job.ExecutionID),
		log.Int("attempt", job.Attempt))

	execution, err := s.execStore.GetExecution(job.ExecutionID)
	if err != nil {
		return fmt.Errorf("failed to load execution %s: %w", job.ExecutionID, err)
	}
	if execution.Status.IsTerminal() {
		// Cancelled between dequeue and here; nothing left to run.
		logger.Debug("Skipping job for finished execution",
			log.String("status", string(execution.Status)))
		return nil
	}

	agent, err := s.agentStore.GetAgent(execution.AgentID)
	if err != nil {
		return s.finishAttempt(execution, job,
			fmt.Errorf("failed to load agent %s: %w", execution.AgentID, err), logger)
	}

	_, runErr := s.coordinator.Run(ctx, execution, agent.Graph)

	// The engine moved the execution to running; reload so the recorded
	// timestamps survive the terminal update.
	execution, err = s.execStore.GetExecution(job.ExecutionID)
	if err != nil {
		return fmt.Errorf("failed to reload execution %s: %w", job.ExecutionID, err)
	}

	if runErr == nil {
		if err := s.transition(execution, model.StatusCompleted, ""); err != nil {
			return err
		}
		logger.Debug("Execution completed")
		return nil
	}

	if errors.Is(runErr, context.Canceled) {
		if !execution.Status.IsTerminal() {
			if err := s.transition(execution, model.StatusCancelled, ""); err != nil {
				return err
			}
		}
		return runErr
	}

	return s.finishAttempt(execution, job, runErr, logger)
}

// finishAttempt records a failed attempt. Only the final attempt moves the
// execution to failed; earlier attempts leave it running for the retry.
func (s *executionService) finishAttempt(execution model.Execution, job runqueue.Job,
	runErr error, logger *log.Logger) error {
	policy := s.policy
	if job.TestMode {
		policy = s.testPolicy
	}

	if policy.ShouldRetry(job.Attempt) {
		logger.Warn("Execution attempt failed", log.Error(runErr))
		return runErr
	}

	logger.Error("Execution failed", log.Error(runErr))
	if err := s.transition(execution, model.StatusFailed, runErr.Error()); err != nil {
		return err
	}
	return runErr
}

func (s *executionService) transition(execution model.Execution,
	next model.ExecutionStatus, errorMessage string) error {
	if err := execution.TransitionTo(next, time.Now()); err != nil {
		return err
	}
	execution.Error = errorMessage
	return s.execStore.UpdateExecutionStatus(execution)
}

// markFailed best-effort moves a freshly created execution to failed when it
// never made it onto the queue.
func (s *executionService) markFailed(execution model.Execution, reason string, logger *log.Logger) {
	now := time.Now()
	if err := execution.TransitionTo(model.StatusRunning, now); err != nil {
		return
	}
	if err := execution.TransitionTo(model.StatusFailed, now); err != nil {
		return
	}
	execution.Error = reason
	if err := s.execStore.UpdateExecutionStatus(execution); err != nil {
		logger.Error("Failed to mark execution failed",
			log.String(log.LoggerKeyExecutionID, execution.ID), log.Error(err))
	}
}
