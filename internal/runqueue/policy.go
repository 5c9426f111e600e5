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

import "time"

// RetryPolicy controls how many attempts a job gets and how retries back off.
type RetryPolicy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	BackoffMultiplier float64
}

// DefaultRetryPolicy gives normal runs three attempts with exponential backoff
// starting at two seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialBackoff:    2 * time.Second,
		BackoffMultiplier: 2,
	}
}

// TestModeRetryPolicy gives test runs exactly one attempt so authoring fails fast.
func TestModeRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       1,
		InitialBackoff:    0,
		BackoffMultiplier: 1,
	}
}

// NextBackoff returns the delay before the given retry. The attempt parameter
// is the attempt that just failed, so the first retry waits InitialBackoff.
func (p RetryPolicy) NextBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	backoff := p.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * p.BackoffMultiplier)
	}
	return backoff
}

// ShouldRetry reports whether another attempt is allowed after the given attempt failed.
func (p RetryPolicy) ShouldRetry(attempt int) bool {
	return attempt < p.MaxAttempts
}
