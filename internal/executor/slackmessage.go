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

package executor

import (
	"fmt"

	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/integration/slack"
)

// SlackMessageExecutor handles slack-message nodes.
type SlackMessageExecutor struct {
	client slack.SlackClientInterface
}

// NewSlackMessageExecutor creates a Slack message executor backed by the given client.
func NewSlackMessageExecutor(client slack.SlackClientInterface) *SlackMessageExecutor {
	return &SlackMessageExecutor{client: client}
}

// GetType returns the node type handled by this executor.
func (e *SlackMessageExecutor) GetType() string {
	return constants.NodeTypeSlackMessage
}

// Execute posts the resolved message to the configured channel.
func (e *SlackMessageExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	channel, err := requireString(config, "channel")
	if err != nil {
		return ExecutionResult{}, err
	}
	message, err := requireString(config, "message")
	if err != nil {
		return ExecutionResult{}, err
	}

	if err := e.client.PostMessage(channel, message); err != nil {
		return ExecutionResult{}, fmt.Errorf("failed to post message: %w", err)
	}

	return ExecutionResult{
		Output: map[string]any{
			"channel":   channel,
			"delivered": true,
		},
	}, nil
}
