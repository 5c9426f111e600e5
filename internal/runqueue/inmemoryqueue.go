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
	"fmt"
	"sync"
	"time"
)

// InMemoryQueue is a channel backed queue for single process deployments.
// Delayed jobs are held back by timers; removed jobs are filtered at dequeue.
type InMemoryQueue struct {
	jobs    chan Job
	mutex   sync.Mutex
	pending map[string]bool
	removed map[string]bool
	timers  map[string]*time.Timer
	closed  bool
}

// NewInMemoryQueue creates an in-memory queue with the given capacity.
func NewInMemoryQueue(capacity int) *InMemoryQueue {
	if capacity <= 0 {
		capacity = 100
	}
	return &InMemoryQueue{
		jobs:    make(chan Job, capacity),
		pending: make(map[string]bool),
		removed: make(map[string]bool),
		timers:  make(map[string]*time.Timer),
	}
}

// Enqueue adds a job for delivery, honoring its NotBefore time.
func (q *InMemoryQueue) Enqueue(ctx context.Context, job Job) error {
	q.mutex.Lock()
	if q.closed {
		q.mutex.Unlock()
		return fmt.Errorf("queue is closed")
	}
	delete(q.removed, job.ID)

	if delay := time.Until(job.NotBefore); delay > 0 {
		q.timers[job.ID] = time.AfterFunc(delay, func() {
			q.mutex.Lock()
			delete(q.timers, job.ID)
			closed := q.closed
			if !closed {
				q.pending[job.ID] = true
			}
			q.mutex.Unlock()
			if !closed {
				q.jobs <- job
			}
		})
		q.mutex.Unlock()
		return nil
	}
	q.pending[job.ID] = true
	q.mutex.Unlock()

	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		q.mutex.Lock()
		delete(q.pending, job.ID)
		q.mutex.Unlock()
		return ctx.Err()
	}
}

// Dequeue blocks until a deliverable job is available or the context ends.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		select {
		case job, ok := <-q.jobs:
			if !ok {
				return Job{}, fmt.Errorf("queue is closed")
			}
			q.mutex.Lock()
			skip := q.removed[job.ID]
			delete(q.removed, job.ID)
			delete(q.pending, job.ID)
			q.mutex.Unlock()
			if skip {
				continue
			}
			return job, nil
		case <-ctx.Done():
			return Job{}, ctx.Err()
		}
	}
}

// Remove withdraws a not yet delivered job.
func (q *InMemoryQueue) Remove(jobID string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if timer, ok := q.timers[jobID]; ok {
		timer.Stop()
		delete(q.timers, jobID)
		return true
	}

	if q.pending[jobID] {
		// The job still sits in the channel; mark it so dequeue drops it.
		q.removed[jobID] = true
		delete(q.pending, jobID)
		return true
	}
	return false
}

// Len returns the number of jobs currently deliverable.
func (q *InMemoryQueue) Len() int {
	return len(q.jobs)
}

// Close releases the queue's timers and channel.
func (q *InMemoryQueue) Close() error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	close(q.jobs)
	return nil
}
