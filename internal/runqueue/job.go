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

// Package runqueue provides the run queue that turns execution requests into
// jobs and drives them through a worker pool with retry and backoff.
package runqueue

import (
	"context"
	"time"
)

// Job represents one queued execution request. Exactly one job exists per
// execution id; retries re-enqueue the same job with an incremented attempt.
type Job struct {
	// ID is the job identifier, equal to the execution id it runs.
	ID string `json:"id"`
	// ExecutionID references the execution this job runs.
	ExecutionID string `json:"executionId"`
	// AgentID references the agent whose graph is executed.
	AgentID string `json:"agentId"`
	// TestMode selects the fail-fast single attempt policy.
	TestMode bool `json:"testMode"`
	// Attempt is the 1-based attempt counter.
	Attempt int `json:"attempt"`
	// NotBefore delays delivery until the given time. The zero value means
	// the job is immediately deliverable.
	NotBefore time.Time `json:"notBefore,omitempty"`
	// EnqueuedAt records when the job first entered the queue.
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// JobStatus represents the final outcome of a job.
type JobStatus string

// Job outcomes retained in the completed-job history.
const (
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// JobResult represents one finished job in the bounded history window.
// Job history is for operability only; the execution records are the system of record.
type JobResult struct {
	JobID       string    `json:"jobId"`
	ExecutionID string    `json:"executionId"`
	Attempts    int       `json:"attempts"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

// JobRunner executes one job attempt. A nil return marks the job completed;
// a context cancellation ends it cancelled; any other error is retried per policy.
type JobRunner func(ctx context.Context, job Job) error

// QueueInterface defines the interface for job delivery backends.
type QueueInterface interface {
	// Enqueue adds a job for delivery, honoring its NotBefore time.
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks until a deliverable job is available or the context ends.
	Dequeue(ctx context.Context) (Job, error)
	// Remove withdraws a not yet delivered job. It reports whether the job was found.
	Remove(jobID string) bool
	// Len returns the number of jobs currently queued.
	Len() int
	// Close releases the backend resources.
	Close() error
}
