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

package trigger

import (
	"sync"
	"time"

	agentconstants "github.com/riaz37/clarifaior/internal/agent/constants"
	agentmodel "github.com/riaz37/clarifaior/internal/agent/model"
	"github.com/riaz37/clarifaior/internal/execution/service"
	"github.com/riaz37/clarifaior/internal/system/error/serviceerror"
	"github.com/riaz37/clarifaior/internal/system/log"
)

const schedulerLoggerComponentName = "Scheduler"

const (
	defaultPollInterval    = 30 * time.Second
	defaultScheduleSeconds = 300
)

// AgentLister provides the agents the scheduler scans for schedule triggers.
type AgentLister interface {
	GetAgentList() ([]agentmodel.Agent, *serviceerror.ServiceError)
}

// Scheduler periodically scans active agents for schedule-trigger nodes and
// enqueues an execution when a node's interval has elapsed. Intervals are read
// from the node's `data.interval` in seconds.
type Scheduler struct {
	lister       AgentLister
	enqueuer     ExecutionEnqueuer
	pollInterval time.Duration
	now          func() time.Time

	mutex   sync.Mutex
	lastRun map[string]time.Time

	stop chan struct{}
	done chan struct{}
}

// NewScheduler creates a new interval scheduler.
func NewScheduler(lister AgentLister, enqueuer ExecutionEnqueuer,
	pollInterval time.Duration) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Scheduler{
		lister:       lister,
		enqueuer:     enqueuer,
		pollInterval: pollInterval,
		now:          time.Now,
		lastRun:      make(map[string]time.Time),
	}
}

// Start launches the scheduler loop.
func (s *Scheduler) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.Poll()
			}
		}
	}()
}

// Stop stops the scheduler loop and waits for it to exit.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
}

// Poll runs one scheduler pass. It is called by the loop and directly by tests.
func (s *Scheduler) Poll() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, schedulerLoggerComponentName))

	agents, svcErr := s.lister.GetAgentList()
	if svcErr != nil {
		logger.Error("Failed to list agents for scheduling",
			log.String("errorCode", svcErr.Code))
		return
	}

	now := s.now()
	for _, agent := range agents {
		if !agent.IsActive || agent.Graph == nil {
			continue
		}
		interval, ok := scheduleInterval(agent.Graph)
		if !ok {
			continue
		}

		s.mutex.Lock()
		last, seen := s.lastRun[agent.ID]
		due := !seen || now.Sub(last) >= interval
		if due {
			s.lastRun[agent.ID] = now
		}
		s.mutex.Unlock()
		if !due {
			continue
		}

		_, svcErr := s.enqueuer.EnqueueExecution(service.ExecutionRequest{
			AgentID:     agent.ID,
			TriggerType: TriggerTypeSchedule,
			TriggerData: map[string]any{"scheduledAt": now.Format(time.RFC3339)},
		})
		if svcErr != nil {
			// Losing the race against a deactivation is routine, anything
			// else is worth a log line.
			if svcErr.Code != agentconstants.ErrorAgentNotActive.Code {
				logger.Error("Failed to enqueue scheduled execution",
					log.String(log.LoggerKeyAgentID, agent.ID),
					log.String("errorCode", svcErr.Code))
			}
			continue
		}
		logger.Debug("Scheduled execution enqueued", log.String(log.LoggerKeyAgentID, agent.ID))
	}
}

// scheduleInterval returns the shortest schedule-trigger interval in the graph.
func scheduleInterval(graph *agentmodel.Graph) (time.Duration, bool) {
	shortest := time.Duration(0)
	found := false

	for _, node := range graph.Nodes {
		if node.Type != agentconstants.NodeTypeScheduleTrigger {
			continue
		}
		seconds := defaultScheduleSeconds
		if raw, ok := node.Data["interval"]; ok {
			switch v := raw.(type) {
			case float64:
				if v > 0 {
					seconds = int(v)
				}
			case int:
				if v > 0 {
					seconds = v
				}
			}
		}
		interval := time.Duration(seconds) * time.Second
		if !found || interval < shortest {
			shortest = interval
			found = true
		}
	}
	return shortest, found
}
