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

// Package constants defines node type and error constants for agent management operations.
package constants

// Node types supported by the flow engine.
const (
	// NodeTypeWebhookTrigger starts a flow from an inbound webhook call.
	NodeTypeWebhookTrigger = "webhook-trigger"
	// NodeTypeScheduleTrigger starts a flow on a schedule.
	NodeTypeScheduleTrigger = "schedule-trigger"
	// NodeTypeManualTrigger starts a flow from an explicit user request.
	NodeTypeManualTrigger = "manual-trigger"
	// NodeTypeAIPrompt sends a prompt to an LLM provider and captures the response.
	NodeTypeAIPrompt = "ai-prompt"
	// NodeTypeSlackMessage posts a message to a Slack channel.
	NodeTypeSlackMessage = "slack-message"
	// NodeTypeSendEmail sends an email through the configured mail provider.
	NodeTypeSendEmail = "send-email"
	// NodeTypeNotionPage appends content to a Notion page.
	NodeTypeNotionPage = "notion-page"
	// NodeTypeCondition evaluates an expression and selects the true or false branch.
	NodeTypeCondition = "condition"
	// NodeTypeTransform reshapes data between nodes.
	NodeTypeTransform = "transform"
)

// TriggerNodeTypes lists the node types that can start a flow.
var TriggerNodeTypes = []string{
	NodeTypeWebhookTrigger,
	NodeTypeScheduleTrigger,
	NodeTypeManualTrigger,
}

// IsTriggerNodeType returns true if the given node type is a trigger type.
func IsTriggerNodeType(nodeType string) bool {
	for _, triggerType := range TriggerNodeTypes {
		if nodeType == triggerType {
			return true
		}
	}
	return false
}
