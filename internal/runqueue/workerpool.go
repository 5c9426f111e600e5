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

package runqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riaz37/clarifaior/internal/system/log"
)

const workerLoggerComponentName = "QueueWorker"

const defaultHistorySize = 50

// WorkerPool pulls jobs from the queue and runs each to completion on one
// worker. Concurrency across execution ids is bounded only by the worker
// count; one execution id never runs on two workers because exactly one job
// exists per execution.
type WorkerPool struct {
	queue       QueueInterface
	runner      JobRunner
	policy      RetryPolicy
	testPolicy  RetryPolicy
	workers     int
	historySize int

	mutex   sync.Mutex
	running map[string]context.CancelFunc
	history []JobResult
	wg      sync.WaitGroup
	stop    context.CancelFunc
}

// WorkerPoolOptions configures a worker pool.
type WorkerPoolOptions struct {
	Workers     int
	Policy      RetryPolicy
	TestPolicy  RetryPolicy
	HistorySize int
}

// NewWorkerPool creates a worker pool over the given queue and runner.
func NewWorkerPool(queue QueueInterface, runner JobRunner, opts WorkerPoolOptions) *WorkerPool {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Policy.MaxAttempts <= 0 {
		opts.Policy = DefaultRetryPolicy()
	}
	if opts.TestPolicy.MaxAttempts <= 0 {
		opts.TestPolicy = TestModeRetryPolicy()
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = defaultHistorySize
	}

	return &WorkerPool{
		queue:       queue,
		runner:      runner,
		policy:      opts.Policy,
		testPolicy:  opts.TestPolicy,
		workers:     opts.Workers,
		historySize: opts.HistorySize,
		running:     make(map[string]context.CancelFunc),
	}
}

// Start launches the workers. They run until Stop is called.
func (p *WorkerPool) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.stop = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.workerLoop(ctx)
	}
}

// Stop signals the workers to finish their current job and waits for them.
func (p *WorkerPool) Stop() {
	if p.stop != nil {
		p.stop()
	}
	p.wg.Wait()
}

// Cancel withdraws a queued job or signals a running one to stop.
// It reports whether the job was found in either place.
func (p *WorkerPool) Cancel(jobID string) bool {
	p.mutex.Lock()
	cancelRunning, isRunning := p.running[jobID]
	p.mutex.Unlock()

	if isRunning {
		cancelRunning()
		return true
	}
	return p.queue.Remove(jobID)
}

// History returns the bounded window of finished jobs, most recent last.
func (p *WorkerPool) History() []JobResult {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	history := make([]JobResult, len(p.history))
	copy(history, p.history)
	return history
}

func (p *WorkerPool) workerLoop(ctx context.Context) {
	defer p.wg.Done()
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, workerLoggerComponentName))

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to dequeue job", log.Error(err))
			continue
		}

		// Delayed delivery guard for backends that release jobs early.
		if wait := time.Until(job.NotBefore); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return
			}
		}

		p.runJob(ctx, job, logger)
	}
}

// runJob runs one attempt and either re-enqueues the job for retry or records
// its final outcome in the history window.
func (p *WorkerPool) runJob(ctx context.Context, job Job, logger *log.Logger) {
	if job.Attempt < 1 {
		job.Attempt = 1
	}
	policy := p.policy
	if job.TestMode {
		policy = p.testPolicy
	}

	jobCtx, cancelJob := context.WithCancel(ctx)
	p.mutex.Lock()
	p.running[job.ID] = cancelJob
	p.mutex.Unlock()

	err := p.runner(jobCtx, job)

	p.mutex.Lock()
	delete(p.running, job.ID)
	p.mutex.Unlock()
	cancelJob()

	switch {
	case err == nil:
		p.recordResult(JobResult{
			JobID:       job.ID,
			ExecutionID: job.ExecutionID,
			Attempts:    job.Attempt,
			Status:      JobStatusCompleted,
			CompletedAt: time.Now(),
		})
	case errors.Is(err, context.Canceled) && ctx.Err() == nil:
		// The job was cancelled individually, not by pool shutdown.
		logger.Debug("Job cancelled", log.String(log.LoggerKeyJobID, job.ID))
		p.recordResult(JobResult{
			JobID:       job.ID,
			ExecutionID: job.ExecutionID,
			Attempts:    job.Attempt,
			Status:      JobStatusCancelled,
			CompletedAt: time.Now(),
		})
	case policy.ShouldRetry(job.Attempt):
		backoff := policy.NextBackoff(job.Attempt)
		logger.Warn("Job attempt failed, scheduling retry",
			log.String(log.LoggerKeyJobID, job.ID),
			log.Int("attempt", job.Attempt),
			log.Error(err))

		retry := job
		retry.Attempt++
		retry.NotBefore = time.Now().Add(backoff)
		if enqueueErr := p.queue.Enqueue(context.Background(), retry); enqueueErr != nil {
			logger.Error("Failed to re-enqueue job", log.String(log.LoggerKeyJobID, job.ID),
				log.Error(enqueueErr))
			p.recordResult(JobResult{
				JobID:       job.ID,
				ExecutionID: job.ExecutionID,
				Attempts:    job.Attempt,
				Status:      JobStatusFailed,
				Error:       err.Error(),
				CompletedAt: time.Now(),
			})
		}
	default:
		logger.Error("Job failed permanently",
			log.String(log.LoggerKeyJobID, job.ID),
			log.Int("attempt", job.Attempt),
			log.Error(err))
		p.recordResult(JobResult{
			JobID:       job.ID,
			ExecutionID: job.ExecutionID,
			Attempts:    job.Attempt,
			Status:      JobStatusFailed,
			Error:       err.Error(),
			CompletedAt: time.Now(),
		})
	}
}

// recordResult appends to the history, discarding the oldest entries beyond the window.
func (p *WorkerPool) recordResult(result JobResult) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.history = append(p.history, result)
	if len(p.history) > p.historySize {
		p.history = p.history[len(p.history)-p.historySize:]
	}
}
