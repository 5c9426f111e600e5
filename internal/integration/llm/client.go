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

// Package llm provides a chat completion client for OpenAI compatible providers.
package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/riaz37/clarifaior/internal/system/config"
	serverconst "github.com/riaz37/clarifaior/internal/system/constants"
	httpservice "github.com/riaz37/clarifaior/internal/system/http"
	"github.com/riaz37/clarifaior/internal/system/log"
)

const loggerComponentName = "LLMClient"

const httpClientTimeout = 60 * time.Second

// CompletionRequest represents one chat completion request.
type CompletionRequest struct {
	Model       string
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
}

// CompletionResponse represents the provider's answer and its token usage.
type CompletionResponse struct {
	Content    string
	TokensUsed int
}

// LLMClientInterface defines the interface for chat completion providers.
type LLMClientInterface interface {
	Complete(request CompletionRequest) (CompletionResponse, error)
}

// llmClient is the OpenAI compatible implementation of LLMClientInterface.
type llmClient struct {
	baseURL      string
	apiKey       string
	defaultModel string
}

// NewLLMClient creates a new LLM client from the deployment configuration.
func NewLLMClient() LLMClientInterface {
	llmConfig := config.GetClarifaiorRuntime().Config.Integrations.LLM
	return &llmClient{
		baseURL:      llmConfig.BaseURL,
		apiKey:       llmConfig.APIKey,
		defaultModel: llmConfig.DefaultModel,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends a chat completion request and returns the first choice.
func (c *llmClient) Complete(request CompletionRequest) (CompletionResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	model := request.Model
	if model == "" {
		model = c.defaultModel
	}

	messages := make([]chatMessage, 0, 2)
	if request.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: request.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: request.Prompt})

	body, err := json.Marshal(chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	})
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	req.Header.Set(serverconst.AuthorizationHeaderName, "Bearer "+c.apiKey)

	client := httpservice.NewHTTPClientWithTimeout(httpClientTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to send completion request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return CompletionResponse{}, fmt.Errorf("completion request failed, status code: %d, response: %s",
			resp.StatusCode, string(bodyBytes))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("completion response contains no choices")
	}

	logger.Debug("Received completion", log.String("model", model),
		log.Int("tokensUsed", completion.Usage.TotalTokens))

	return CompletionResponse{
		Content:    completion.Choices[0].Message.Content,
		TokensUsed: completion.Usage.TotalTokens,
	}, nil
}
