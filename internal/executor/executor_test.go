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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/integration/llm"
)

type fakeLLMClient struct {
	request  llm.CompletionRequest
	response llm.CompletionResponse
	err      error
}

func (c *fakeLLMClient) Complete(request llm.CompletionRequest) (llm.CompletionResponse, error) {
	c.request = request
	return c.response, c.err
}

type fakeSlackClient struct {
	channel string
	message string
	err     error
}

func (c *fakeSlackClient) PostMessage(channel, message string) error {
	c.channel = channel
	c.message = message
	return c.err
}

type fakeMailClient struct {
	to      []string
	subject string
	body    string
	err     error
}

func (c *fakeMailClient) SendMail(to []string, subject, body string) error {
	c.to = to
	c.subject = subject
	c.body = body
	return c.err
}

type fakeNotionClient struct {
	pageID  string
	content string
	err     error
}

func (c *fakeNotionClient) AppendToPage(pageID, content string) error {
	c.pageID = pageID
	c.content = content
	return c.err
}

type ExecutorTestSuite struct {
	suite.Suite
	llm    *fakeLLMClient
	slack  *fakeSlackClient
	mail   *fakeMailClient
	notion *fakeNotionClient
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorTestSuite))
}

func (suite *ExecutorTestSuite) SetupTest() {
	suite.llm = &fakeLLMClient{response: llm.CompletionResponse{Content: "answer", TokensUsed: 100}}
	suite.slack = &fakeSlackClient{}
	suite.mail = &fakeMailClient{}
	suite.notion = &fakeNotionClient{}
}

func (suite *ExecutorTestSuite) registry() *Registry {
	return NewDefaultRegistry(suite.llm, suite.slack, suite.mail, suite.notion)
}

func (suite *ExecutorTestSuite) TestRegistryCoversAllNodeTypes() {
	registry := suite.registry()

	nodeTypes := []string{
		constants.NodeTypeWebhookTrigger,
		constants.NodeTypeScheduleTrigger,
		constants.NodeTypeManualTrigger,
		constants.NodeTypeAIPrompt,
		constants.NodeTypeSlackMessage,
		constants.NodeTypeSendEmail,
		constants.NodeTypeNotionPage,
		constants.NodeTypeCondition,
		constants.NodeTypeTransform,
	}
	for _, nodeType := range nodeTypes {
		executor, err := registry.Get(nodeType)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), nodeType, executor.GetType())
	}
}

func (suite *ExecutorTestSuite) TestRegistryUnknownType() {
	_, err := suite.registry().Get("vector-search")
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "no executor registered")
}

func (suite *ExecutorTestSuite) TestTriggerExecutorSurfacesPayload() {
	executor := NewTriggerExecutor(constants.NodeTypeWebhookTrigger)

	result, err := executor.Execute(nil, RunContext{
		TriggerType: "webhook",
		TriggerData: map[string]any{"text": "hi"},
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "hi", result.Output["text"])
	assert.Equal(suite.T(), "webhook", result.Output["triggerType"])
}

func (suite *ExecutorTestSuite) TestAIPromptExecutor() {
	executor := NewAIPromptExecutor(suite.llm)

	result, err := executor.Execute(map[string]any{
		"prompt":      "summarize this",
		"model":       "gpt-4o-mini",
		"temperature": 0.2,
	}, RunContext{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "summarize this", suite.llm.request.Prompt)
	assert.Equal(suite.T(), "gpt-4o-mini", suite.llm.request.Model)
	assert.Equal(suite.T(), "answer", result.Output["response"])
	assert.Equal(suite.T(), 100, result.TokensUsed)
	assert.InDelta(suite.T(), 100*costPerToken, result.Cost, 1e-9)
}

func (suite *ExecutorTestSuite) TestAIPromptExecutorMissingPrompt() {
	executor := NewAIPromptExecutor(suite.llm)

	_, err := executor.Execute(map[string]any{}, RunContext{})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "missing required configuration: prompt")
}

func (suite *ExecutorTestSuite) TestAIPromptExecutorProviderError() {
	suite.llm.err = errors.New("rate limited")
	executor := NewAIPromptExecutor(suite.llm)

	_, err := executor.Execute(map[string]any{"prompt": "p"}, RunContext{})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "rate limited")
}

func (suite *ExecutorTestSuite) TestSlackMessageExecutor() {
	executor := NewSlackMessageExecutor(suite.slack)

	result, err := executor.Execute(map[string]any{
		"channel": "#alerts",
		"message": "deploy done",
	}, RunContext{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "#alerts", suite.slack.channel)
	assert.Equal(suite.T(), "deploy done", suite.slack.message)
	assert.Equal(suite.T(), true, result.Output["delivered"])
}

func (suite *ExecutorTestSuite) TestSendEmailExecutorRecipients() {
	testCases := []struct {
		name      string
		to        any
		expected  []string
		expectErr bool
	}{
		{name: "SingleAddress", to: "a@example.com", expected: []string{"a@example.com"}},
		{name: "ListOfAddresses", to: []any{"a@example.com", "b@example.com"},
			expected: []string{"a@example.com", "b@example.com"}},
		{name: "EmptyList", to: []any{}, expectErr: true},
		{name: "Missing", to: nil, expectErr: true},
		{name: "NonStringEntry", to: []any{42}, expectErr: true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			recipients, err := parseRecipients(tc.to)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, recipients)
		})
	}
}

func (suite *ExecutorTestSuite) TestSendEmailExecutor() {
	executor := NewSendEmailExecutor(suite.mail)

	result, err := executor.Execute(map[string]any{
		"to":      "ops@example.com",
		"subject": "Weekly report",
		"body":    "All green.",
	}, RunContext{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"ops@example.com"}, suite.mail.to)
	assert.Equal(suite.T(), "Weekly report", suite.mail.subject)
	assert.Equal(suite.T(), 1, result.Output["recipients"])
}

func (suite *ExecutorTestSuite) TestNotionPageExecutor() {
	executor := NewNotionPageExecutor(suite.notion)

	result, err := executor.Execute(map[string]any{
		"pageId":  "page-123",
		"content": "meeting notes",
	}, RunContext{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "page-123", suite.notion.pageID)
	assert.Equal(suite.T(), "meeting notes", suite.notion.content)
	assert.Equal(suite.T(), true, result.Output["appended"])
}

func (suite *ExecutorTestSuite) TestConditionExecutor() {
	testCases := []struct {
		name     string
		config   map[string]any
		expected bool
	}{
		{
			name:     "EqualsTrue",
			config:   map[string]any{"condition": "yes", "operator": "equals", "value": "yes"},
			expected: true,
		},
		{
			name:     "EqualsFalse",
			config:   map[string]any{"condition": "no", "operator": "equals", "value": "yes"},
			expected: false,
		},
		{
			name:     "DefaultOperatorIsEquals",
			config:   map[string]any{"condition": "yes", "value": "yes"},
			expected: true,
		},
		{
			name:     "NotEquals",
			config:   map[string]any{"condition": "no", "operator": "not-equals", "value": "yes"},
			expected: true,
		},
		{
			name:     "Contains",
			config:   map[string]any{"condition": "hello world", "operator": "contains", "value": "world"},
			expected: true,
		},
		{
			name:     "GreaterThan",
			config:   map[string]any{"condition": float64(10), "operator": "greater-than", "value": float64(5)},
			expected: true,
		},
		{
			name:     "LessThanWithStringNumbers",
			config:   map[string]any{"condition": "3", "operator": "less-than", "value": "5"},
			expected: true,
		},
		{
			name:     "BooleanEqualsString",
			config:   map[string]any{"condition": true, "operator": "equals", "value": "true"},
			expected: true,
		},
	}

	executor := NewConditionExecutor()
	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			result, err := executor.Execute(tc.config, RunContext{})
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result.Output["result"])
		})
	}
}

func (suite *ExecutorTestSuite) TestConditionExecutorErrors() {
	executor := NewConditionExecutor()

	_, err := executor.Execute(map[string]any{"operator": "equals"}, RunContext{})
	assert.Error(suite.T(), err)

	_, err = executor.Execute(map[string]any{"condition": "x", "operator": "between"}, RunContext{})
	assert.Error(suite.T(), err)

	_, err = executor.Execute(map[string]any{
		"condition": "abc", "operator": "greater-than", "value": "1",
	}, RunContext{})
	assert.Error(suite.T(), err)
}

func (suite *ExecutorTestSuite) TestTransformExecutor() {
	executor := NewTransformExecutor()

	result, err := executor.Execute(map[string]any{
		"mapping": map[string]any{"summary": "resolved text"},
	}, RunContext{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]any{"summary": "resolved text"}, result.Output)

	result, err = executor.Execute(map[string]any{"a": 1}, RunContext{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]any{"a": 1}, result.Output)
}
