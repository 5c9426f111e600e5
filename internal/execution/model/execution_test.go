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

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ExecutionModelTestSuite struct {
	suite.Suite
}

func TestExecutionModelSuite(t *testing.T) {
	suite.Run(t, new(ExecutionModelTestSuite))
}

func (suite *ExecutionModelTestSuite) TestStatusTransitions() {
	testCases := []struct {
		name    string
		from    ExecutionStatus
		to      ExecutionStatus
		allowed bool
	}{
		{name: "PendingToRunning", from: StatusPending, to: StatusRunning, allowed: true},
		{name: "PendingToCancelled", from: StatusPending, to: StatusCancelled, allowed: true},
		{name: "PendingToCompleted", from: StatusPending, to: StatusCompleted, allowed: false},
		{name: "RunningToCompleted", from: StatusRunning, to: StatusCompleted, allowed: true},
		{name: "RunningToFailed", from: StatusRunning, to: StatusFailed, allowed: true},
		{name: "RunningToCancelled", from: StatusRunning, to: StatusCancelled, allowed: true},
		{name: "RunningToPending", from: StatusRunning, to: StatusPending, allowed: false},
		{name: "CompletedToRunning", from: StatusCompleted, to: StatusRunning, allowed: false},
		{name: "FailedToCancelled", from: StatusFailed, to: StatusCancelled, allowed: false},
		{name: "CancelledToRunning", from: StatusCancelled, to: StatusRunning, allowed: false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func (suite *ExecutionModelTestSuite) TestIsTerminal() {
	assert.False(suite.T(), StatusPending.IsTerminal())
	assert.False(suite.T(), StatusRunning.IsTerminal())
	assert.True(suite.T(), StatusCompleted.IsTerminal())
	assert.True(suite.T(), StatusFailed.IsTerminal())
	assert.True(suite.T(), StatusCancelled.IsTerminal())
}

func (suite *ExecutionModelTestSuite) TestTransitionToStampsTimestamps() {
	execution := &Execution{ID: "exec-1", Status: StatusPending}
	start := time.Now()

	assert.NoError(suite.T(), execution.TransitionTo(StatusRunning, start))
	assert.Equal(suite.T(), StatusRunning, execution.Status)
	assert.NotNil(suite.T(), execution.StartedAt)
	assert.Equal(suite.T(), start, *execution.StartedAt)
	assert.Nil(suite.T(), execution.CompletedAt)

	end := start.Add(2 * time.Second)
	assert.NoError(suite.T(), execution.TransitionTo(StatusCompleted, end))
	assert.NotNil(suite.T(), execution.CompletedAt)
	assert.Equal(suite.T(), end, *execution.CompletedAt)
}

func (suite *ExecutionModelTestSuite) TestTransitionOutOfTerminalRejected() {
	execution := &Execution{ID: "exec-1", Status: StatusFailed}

	err := execution.TransitionTo(StatusRunning, time.Now())

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "invalid status transition")
	assert.Equal(suite.T(), StatusFailed, execution.Status)
}

func (suite *ExecutionModelTestSuite) TestQueuedCancellationSkipsRunning() {
	execution := &Execution{ID: "exec-1", Status: StatusPending}

	assert.NoError(suite.T(), execution.TransitionTo(StatusCancelled, time.Now()))
	assert.Equal(suite.T(), StatusCancelled, execution.Status)
	assert.Nil(suite.T(), execution.StartedAt)
	assert.NotNil(suite.T(), execution.CompletedAt)
}
