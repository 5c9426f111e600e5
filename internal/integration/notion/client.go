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

// Package notion provides a client for appending content to Notion pages.
package notion

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

const loggerComponentName = "NotionClient"

const httpClientTimeout = 30 * time.Second

// notionVersionHeaderName carries the Notion API version on every request.
const notionVersionHeaderName = "Notion-Version"

// NotionClientInterface defines the interface for writing to Notion pages.
type NotionClientInterface interface {
	AppendToPage(pageID, content string) error
}

// notionClient is the default implementation of NotionClientInterface.
type notionClient struct {
	baseURL string
	apiKey  string
	version string
}

// NewNotionClient creates a new Notion client from the deployment configuration.
func NewNotionClient() NotionClientInterface {
	notionConfig := config.GetClarifaiorRuntime().Config.Integrations.Notion
	return &notionClient{
		baseURL: notionConfig.BaseURL,
		apiKey:  notionConfig.APIKey,
		version: notionConfig.Version,
	}
}

// AppendToPage appends a paragraph block with the given content to a page.
func (c *notionClient) AppendToPage(pageID, content string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Appending to Notion page", log.String("pageId", pageID))

	payload := map[string]any{
		"children": []any{
			map[string]any{
				"object": "block",
				"type":   "paragraph",
				"paragraph": map[string]any{
					"rich_text": []any{
						map[string]any{
							"type": "text",
							"text": map[string]any{"content": content},
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal page request: %w", err)
	}

	url := fmt.Sprintf("%s/blocks/%s/children", c.baseURL, pageID)
	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	req.Header.Set(serverconst.AuthorizationHeaderName, "Bearer "+c.apiKey)
	req.Header.Set(notionVersionHeaderName, c.version)

	client := httpservice.NewHTTPClientWithTimeout(httpClientTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send page request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("page request failed, status code: %d, response: %s",
			resp.StatusCode, string(bodyBytes))
	}

	return nil
}
