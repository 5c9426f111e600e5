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

// Package slack provides a client for posting messages to Slack channels.
package slack

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

const loggerComponentName = "SlackClient"

const httpClientTimeout = 30 * time.Second

// SlackClientInterface defines the interface for posting Slack messages.
type SlackClientInterface interface {
	PostMessage(channel, message string) error
}

// slackClient is the default implementation of SlackClientInterface.
type slackClient struct {
	baseURL  string
	botToken string
}

// NewSlackClient creates a new Slack client from the deployment configuration.
func NewSlackClient() SlackClientInterface {
	slackConfig := config.GetClarifaiorRuntime().Config.Integrations.Slack
	return &slackClient{
		baseURL:  slackConfig.BaseURL,
		botToken: slackConfig.BotToken,
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PostMessage posts a message to the given channel.
func (c *slackClient) PostMessage(channel, message string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Posting Slack message", log.String("channel", channel))

	body, err := json.Marshal(postMessageRequest{Channel: channel, Text: message})
	if err != nil {
		return fmt.Errorf("failed to marshal message request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	req.Header.Set(serverconst.AuthorizationHeaderName, "Bearer "+c.botToken)

	client := httpservice.NewHTTPClientWithTimeout(httpClientTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("message request failed, status code: %d, response: %s",
			resp.StatusCode, string(bodyBytes))
	}

	var postResp postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil {
		return fmt.Errorf("failed to decode message response: %w", err)
	}
	if !postResp.OK {
		return fmt.Errorf("slack rejected the message: %s", postResp.Error)
	}

	return nil
}
