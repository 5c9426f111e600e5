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
	"github.com/riaz37/clarifaior/internal/integration/llm"
)

// costPerToken approximates the monetary cost of one LLM token in USD.
const costPerToken = 0.000002

// AIPromptExecutor handles ai-prompt nodes by calling the LLM provider.
type AIPromptExecutor struct {
	client llm.LLMClientInterface
}

// NewAIPromptExecutor creates an AI prompt executor backed by the given LLM client.
func NewAIPromptExecutor(client llm.LLMClientInterface) *AIPromptExecutor {
	return &AIPromptExecutor{client: client}
}

// GetType returns the node type handled by this executor.
func (e *AIPromptExecutor) GetType() string {
	return constants.NodeTypeAIPrompt
}

// Execute sends the resolved prompt to the LLM provider and captures the response.
func (e *AIPromptExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	prompt, err := requireString(config, "prompt")
	if err != nil {
		return ExecutionResult{}, err
	}

	request := llm.CompletionRequest{
		Model:  optionalString(config, "model"),
		Prompt: prompt,
		System: optionalString(config, "system"),
	}
	if temperature, ok := config["temperature"].(float64); ok {
		request.Temperature = temperature
	}
	if maxTokens, ok := config["maxTokens"].(float64); ok {
		request.MaxTokens = int(maxTokens)
	}

	response, err := e.client.Complete(request)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("completion failed: %w", err)
	}

	return ExecutionResult{
		Output: map[string]any{
			"response": response.Content,
		},
		TokensUsed: response.TokensUsed,
		Cost:       float64(response.TokensUsed) * costPerToken,
	}, nil
}
