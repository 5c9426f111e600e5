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

package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/riaz37/clarifaior/internal/agent/model"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func position() *model.Position {
	x, y := 0.0, 0.0
	return &model.Position{X: &x, Y: &y}
}

func node(id, nodeType string, data map[string]any) model.Node {
	return model.Node{
		ID:       id,
		Type:     nodeType,
		Label:    id,
		Position: position(),
		Data:     data,
	}
}

func validGraph() *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{
			node("t1", "manual-trigger", nil),
			node("s1", "slack-message", map[string]any{"channel": "#general", "message": "hello"}),
		},
		Edges: []model.Edge{
			{ID: "e1", Source: "t1", Target: "s1"},
		},
	}
}

func countContaining(items []string, substr string) int {
	count := 0
	for _, item := range items {
		if strings.Contains(item, substr) {
			count++
		}
	}
	return count
}

func (suite *ValidatorTestSuite) TestValidGraph() {
	result := Validate(validGraph())

	assert.True(suite.T(), result.Valid)
	assert.Empty(suite.T(), result.Errors)
	assert.Empty(suite.T(), result.Warnings)
}

func (suite *ValidatorTestSuite) TestNilGraphShortCircuits() {
	result := Validate(nil)

	assert.False(suite.T(), result.Valid)
	assert.Equal(suite.T(), []string{"graph is required"}, result.Errors)
}

func (suite *ValidatorTestSuite) TestMissingSequencesShortCircuit() {
	result := Validate(&model.Graph{})

	assert.False(suite.T(), result.Valid)
	assert.Len(suite.T(), result.Errors, 2)
	// Short-circuit: no trigger error is reported when the structure is broken.
	assert.Zero(suite.T(), countContaining(result.Errors, "trigger"))
}

func (suite *ValidatorTestSuite) TestZeroTriggersIsError() {
	graph := &model.Graph{
		Nodes: []model.Node{
			node("s1", "slack-message", map[string]any{"channel": "#x", "message": "m"}),
		},
		Edges: []model.Edge{},
	}

	result := Validate(graph)

	assert.False(suite.T(), result.Valid)
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "trigger"))
}

func (suite *ValidatorTestSuite) TestMultipleTriggersIsWarning() {
	graph := validGraph()
	graph.Nodes = append(graph.Nodes, node("t2", "webhook-trigger", map[string]any{"endpoint": "/h"}))
	graph.Edges = append(graph.Edges, model.Edge{ID: "e2", Source: "t2", Target: "s1"})

	result := Validate(graph)

	assert.True(suite.T(), result.Valid)
	assert.Equal(suite.T(), 1, countContaining(result.Warnings, "more than one trigger"))
}

func (suite *ValidatorTestSuite) TestDuplicateNodeIDsReportedPerRepeat() {
	graph := validGraph()
	graph.Nodes = append(graph.Nodes,
		node("t1", "manual-trigger", nil),
		node("t1", "manual-trigger", nil),
	)

	result := Validate(graph)

	assert.False(suite.T(), result.Valid)
	assert.Equal(suite.T(), 2, countContaining(result.Errors, "duplicate node id: t1"))
}

func (suite *ValidatorTestSuite) TestNodeShapeChecks() {
	x := 1.0
	graph := validGraph()
	graph.Nodes = append(graph.Nodes,
		model.Node{ID: "n1", Position: position()},
		model.Node{ID: "n2", Type: "transform", Label: "t", Position: &model.Position{X: &x}},
		model.Node{ID: "n3", Type: "transform", Label: "t"},
	)

	result := Validate(graph)

	assert.False(suite.T(), result.Valid)
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "node n1: type is required"))
	assert.Equal(suite.T(), 1, countContaining(result.Warnings, "node n1: label is missing"))
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "node n2: position"))
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "node n3: position"))
}

func (suite *ValidatorTestSuite) TestNodeConfigurationRules() {
	testCases := []struct {
		name             string
		node             model.Node
		expectedErrors   []string
		expectedWarnings []string
	}{
		{
			name:           "WebhookTriggerMissingEndpoint",
			node:           node("w1", "webhook-trigger", nil),
			expectedErrors: []string{"node w1: data.endpoint is required"},
		},
		{
			name:             "AIPromptMissingPromptAndModel",
			node:             node("a1", "ai-prompt", map[string]any{"prompt": ""}),
			expectedErrors:   []string{"node a1: data.prompt is required"},
			expectedWarnings: []string{"node a1: data.model is recommended"},
		},
		{
			name:           "SlackMessageMissingBoth",
			node:           node("s9", "slack-message", nil),
			expectedErrors: []string{"node s9: data.channel is required", "node s9: data.message is required"},
		},
		{
			name:           "NotionPageMissingPageID",
			node:           node("n9", "notion-page", nil),
			expectedErrors: []string{"node n9: data.pageId is required"},
		},
		{
			name:             "SendEmailEmptyRecipients",
			node:             node("m1", "send-email", map[string]any{"to": []any{}}),
			expectedErrors:   []string{"node m1: data.to is required"},
			expectedWarnings: []string{"node m1: data.subject is recommended"},
		},
		{
			name:           "ConditionMissingExpression",
			node:           node("c1", "condition", nil),
			expectedErrors: []string{"node c1: data.condition is required"},
		},
		{
			name: "UnknownTypeNotChecked",
			node: node("u1", "vector-search", nil),
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			errors, warnings := checkNodeConfiguration(tc.node)
			assert.Equal(t, tc.expectedErrors, errors)
			assert.Equal(t, tc.expectedWarnings, warnings)
		})
	}
}

func (suite *ValidatorTestSuite) TestEdgeIntegrity() {
	graph := validGraph()
	graph.Edges = append(graph.Edges,
		model.Edge{ID: "e1", Source: "t1", Target: "s1"},
		model.Edge{ID: "e3", Source: "ghost", Target: "s1"},
		model.Edge{ID: "e4", Source: "t1", Target: "phantom"},
		model.Edge{Source: "t1", Target: "s1"},
	)

	result := Validate(graph)

	assert.False(suite.T(), result.Valid)
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "duplicate edge id: e1"))
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "source references unknown node: ghost"))
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "target references unknown node: phantom"))
	assert.Equal(suite.T(), 1, countContaining(result.Errors, "edge has an empty id"))
}

func (suite *ValidatorTestSuite) TestReachabilityWarnings() {
	graph := validGraph()
	graph.Nodes = append(graph.Nodes, node("x1", "transform", nil))

	result := Validate(graph)

	assert.True(suite.T(), result.Valid)
	assert.Equal(suite.T(), 1, countContaining(result.Warnings, "node x1: has no incoming edges"))
	assert.Equal(suite.T(), 1, countContaining(result.Warnings, "node x1: has no outgoing edges"))
}

func (suite *ValidatorTestSuite) TestCycleEmitsSingleWarning() {
	graph := &model.Graph{
		Nodes: []model.Node{
			node("t1", "manual-trigger", nil),
			node("a", "transform", nil),
			node("b", "transform", nil),
			node("c", "transform", nil),
		},
		Edges: []model.Edge{
			{ID: "e1", Source: "t1", Target: "a"},
			{ID: "e2", Source: "a", Target: "b"},
			{ID: "e3", Source: "b", Target: "c"},
			{ID: "e4", Source: "c", Target: "a"},
		},
	}

	result := Validate(graph)

	// Cycles are advisory only; validity is unaffected.
	assert.True(suite.T(), result.Valid)
	assert.Equal(suite.T(), 1, countContaining(result.Warnings, "cycles"))
}

func (suite *ValidatorTestSuite) TestCycleUnreachableFromTrigger() {
	graph := validGraph()
	graph.Nodes = append(graph.Nodes, node("a", "transform", nil), node("b", "transform", nil))
	graph.Edges = append(graph.Edges,
		model.Edge{ID: "e2", Source: "a", Target: "b"},
		model.Edge{ID: "e3", Source: "b", Target: "a"},
	)

	result := Validate(graph)

	assert.Equal(suite.T(), 1, countContaining(result.Warnings, "cycles"))
}
