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
	"github.com/riaz37/clarifaior/internal/integration/notion"
)

// NotionPageExecutor handles notion-page nodes.
type NotionPageExecutor struct {
	client notion.NotionClientInterface
}

// NewNotionPageExecutor creates a Notion page executor backed by the given client.
func NewNotionPageExecutor(client notion.NotionClientInterface) *NotionPageExecutor {
	return &NotionPageExecutor{client: client}
}

// GetType returns the node type handled by this executor.
func (e *NotionPageExecutor) GetType() string {
	return constants.NodeTypeNotionPage
}

// Execute appends the resolved content to the configured page.
func (e *NotionPageExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	pageID, err := requireString(config, "pageId")
	if err != nil {
		return ExecutionResult{}, err
	}

	content := optionalString(config, "content")
	if content == "" {
		content = optionalString(config, "message")
	}

	if err := e.client.AppendToPage(pageID, content); err != nil {
		return ExecutionResult{}, fmt.Errorf("failed to append to page: %w", err)
	}

	return ExecutionResult{
		Output: map[string]any{
			"pageId":   pageID,
			"appended": true,
		},
	}, nil
}
