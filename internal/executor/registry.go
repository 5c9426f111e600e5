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
	"github.com/riaz37/clarifaior/internal/integration/mail"
	"github.com/riaz37/clarifaior/internal/integration/notion"
	"github.com/riaz37/clarifaior/internal/integration/slack"
)

// RegistryInterface defines the interface for looking up node executors by type.
type RegistryInterface interface {
	Register(executor ExecutorInterface)
	Get(nodeType string) (ExecutorInterface, error)
}

// Registry maps node types to their executors.
// Registration happens at bootstrap; lookups at run time are read only.
type Registry struct {
	executors map[string]ExecutorInterface
}

// NewRegistry creates an empty executor registry.
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]ExecutorInterface),
	}
}

// NewDefaultRegistry creates a registry with all built-in node executors registered.
func NewDefaultRegistry(llmClient llm.LLMClientInterface, slackClient slack.SlackClientInterface,
	mailClient mail.MailClientInterface, notionClient notion.NotionClientInterface) *Registry {
	registry := NewRegistry()

	for _, triggerType := range constants.TriggerNodeTypes {
		registry.Register(NewTriggerExecutor(triggerType))
	}
	registry.Register(NewAIPromptExecutor(llmClient))
	registry.Register(NewSlackMessageExecutor(slackClient))
	registry.Register(NewSendEmailExecutor(mailClient))
	registry.Register(NewNotionPageExecutor(notionClient))
	registry.Register(NewConditionExecutor())
	registry.Register(NewTransformExecutor())

	return registry
}

// Register adds an executor for its node type, replacing any previous entry.
func (r *Registry) Register(executor ExecutorInterface) {
	r.executors[executor.GetType()] = executor
}

// Get returns the executor for the given node type.
// Unknown node types pass validation but fail here, at dispatch time.
func (r *Registry) Get(nodeType string) (ExecutorInterface, error) {
	executor, ok := r.executors[nodeType]
	if !ok {
		return nil, fmt.Errorf("no executor registered for node type: %s", nodeType)
	}
	return executor, nil
}
