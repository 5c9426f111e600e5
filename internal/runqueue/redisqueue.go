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
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riaz37/clarifaior/internal/system/config"
	"github.com/riaz37/clarifaior/internal/system/log"
)

const redisQueueLoggerComponentName = "RedisQueue"

const (
	readyListKey     = "clarifaior:queue:ready"
	delayedSetKey    = "clarifaior:queue:delayed"
	dequeueBlockTime = 2 * time.Second
	delayedPollTime  = 500 * time.Millisecond
)

// RedisQueue is a redis backed queue for deployments with multiple server
// processes. Deliverable jobs live in a list; delayed jobs wait in a sorted
// set scored by their NotBefore time and are promoted by a background mover.
type RedisQueue struct {
	client    *redis.Client
	moverStop context.CancelFunc
	moverDone chan struct{}
}

// NewRedisQueue creates a redis queue from the deployment configuration and
// starts the delayed-job mover.
func NewRedisQueue(redisConfig config.RedisConfig) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	moverCtx, moverStop := context.WithCancel(context.Background())
	queue := &RedisQueue{
		client:    client,
		moverStop: moverStop,
		moverDone: make(chan struct{}),
	}
	go queue.moveDelayedJobs(moverCtx)

	return queue, nil
}

// Enqueue adds a job for delivery, honoring its NotBefore time.
func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if job.NotBefore.After(time.Now()) {
		score := float64(job.NotBefore.UnixMilli())
		if err := q.client.ZAdd(ctx, delayedSetKey, redis.Z{Score: score, Member: payload}).Err(); err != nil {
			return fmt.Errorf("failed to enqueue delayed job: %w", err)
		}
		return nil
	}

	if err := q.client.LPush(ctx, readyListKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// Dequeue blocks until a deliverable job is available or the context ends.
func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		result, err := q.client.BRPop(ctx, dequeueBlockTime, readyListKey).Result()
		if err == redis.Nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Job{}, ctxErr
			}
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Job{}, ctxErr
			}
			return Job{}, fmt.Errorf("failed to dequeue job: %w", err)
		}

		var job Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, redisQueueLoggerComponentName)).
				Error("Dropping malformed job payload", log.Error(err))
			continue
		}
		return job, nil
	}
}

// Remove withdraws a not yet delivered job from the ready list and delayed set.
func (q *RedisQueue) Remove(jobID string) bool {
	ctx := context.Background()
	removed := false

	for _, payload := range q.scanPayloads(ctx, readyListKey) {
		var job Job
		if json.Unmarshal([]byte(payload), &job) == nil && job.ID == jobID {
			if q.client.LRem(ctx, readyListKey, 1, payload).Val() > 0 {
				removed = true
			}
		}
	}
	for _, payload := range q.scanPayloads(ctx, delayedSetKey) {
		var job Job
		if json.Unmarshal([]byte(payload), &job) == nil && job.ID == jobID {
			if q.client.ZRem(ctx, delayedSetKey, payload).Val() > 0 {
				removed = true
			}
		}
	}
	return removed
}

// Len returns the number of deliverable jobs in the ready list.
func (q *RedisQueue) Len() int {
	count, err := q.client.LLen(context.Background(), readyListKey).Result()
	if err != nil {
		return 0
	}
	return int(count)
}

// Close stops the delayed-job mover and releases the redis client.
func (q *RedisQueue) Close() error {
	q.moverStop()
	<-q.moverDone
	return q.client.Close()
}

// moveDelayedJobs promotes due jobs from the delayed set to the ready list.
func (q *RedisQueue) moveDelayedJobs(ctx context.Context) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, redisQueueLoggerComponentName))
	ticker := time.NewTicker(delayedPollTime)
	defer ticker.Stop()
	defer close(q.moverDone)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := strconv.FormatInt(time.Now().UnixMilli(), 10)
			due, err := q.client.ZRangeByScore(ctx, delayedSetKey, &redis.ZRangeBy{
				Min: "-inf",
				Max: now,
			}).Result()
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("Failed to read delayed jobs", log.Error(err))
				}
				continue
			}

			for _, payload := range due {
				// Only the mover that wins the removal delivers the job.
				if q.client.ZRem(ctx, delayedSetKey, payload).Val() > 0 {
					if err := q.client.LPush(ctx, readyListKey, payload).Err(); err != nil {
						logger.Error("Failed to promote delayed job", log.Error(err))
					}
				}
			}
		}
	}
}

// scanPayloads returns the raw payloads of a list or sorted set key.
func (q *RedisQueue) scanPayloads(ctx context.Context, key string) []string {
	if key == readyListKey {
		payloads, err := q.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return nil
		}
		return payloads
	}
	payloads, err := q.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil
	}
	return payloads
}
