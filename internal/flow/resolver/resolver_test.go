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

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ResolverTestSuite struct {
	suite.Suite
	scope map[string]any
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.scope = map[string]any{
		"trigger": map[string]any{
			"text": "hi",
			"user": map[string]any{"name": "maya"},
		},
		"context": map[string]any{
			"env": "production",
		},
		"L": map[string]any{
			"response": "yes",
			"usage":    map[string]any{"tokens": float64(42)},
		},
	}
}

func (suite *ResolverTestSuite) TestResolve() {
	testCases := []struct {
		name     string
		template string
		expected string
	}{
		{
			name:     "NoMarkersUnchanged",
			template: "plain text",
			expected: "plain text",
		},
		{
			name:     "TriggerPath",
			template: "{{trigger.text}}",
			expected: "hi",
		},
		{
			name:     "NestedPath",
			template: "hello {{trigger.user.name}}",
			expected: "hello maya",
		},
		{
			name:     "ContextPath",
			template: "env={{context.env}}",
			expected: "env=production",
		},
		{
			name:     "NodeOutputPath",
			template: "answer: {{L.response}}",
			expected: "answer: yes",
		},
		{
			name:     "NumberValue",
			template: "used {{L.usage.tokens}} tokens",
			expected: "used 42 tokens",
		},
		{
			name:     "MapValueSerialized",
			template: "user={{trigger.user}}",
			expected: `user={"name":"maya"}`,
		},
		{
			name:     "MultipleMarkers",
			template: "{{trigger.text}} {{L.response}}",
			expected: "hi yes",
		},
		{
			name:     "UnresolvedLeftVerbatim",
			template: "{{missing.path}}",
			expected: "{{missing.path}}",
		},
		{
			name:     "PartiallyUnresolved",
			template: "{{trigger.text}} {{trigger.nope}}",
			expected: "hi {{trigger.nope}}",
		},
		{
			name:     "PathIntoScalarUnresolved",
			template: "{{trigger.text.deeper}}",
			expected: "{{trigger.text.deeper}}",
		},
		{
			name:     "EmptyExpressionUnresolved",
			template: "{{ }}",
			expected: "{{ }}",
		},
		{
			name:     "WhitespaceTolerated",
			template: "{{ trigger.text }}",
			expected: "hi",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Resolve(tc.template, suite.scope))
		})
	}
}

func (suite *ResolverTestSuite) TestResolveIdempotent() {
	once := Resolve("hello {{trigger.user.name}}", suite.scope)
	twice := Resolve(once, suite.scope)

	assert.Equal(suite.T(), once, twice)
}

func (suite *ResolverTestSuite) TestResolveNilScope() {
	assert.Equal(suite.T(), "{{trigger.text}}", Resolve("{{trigger.text}}", nil))
}

func (suite *ResolverTestSuite) TestResolveValuePreservesType() {
	resolved := ResolveValue("{{L.usage.tokens}}", suite.scope)
	assert.Equal(suite.T(), float64(42), resolved)

	resolved = ResolveValue("{{trigger.user}}", suite.scope)
	assert.Equal(suite.T(), map[string]any{"name": "maya"}, resolved)
}

func (suite *ResolverTestSuite) TestResolveValueRecursive() {
	config := map[string]any{
		"prompt": "{{trigger.text}}",
		"options": map[string]any{
			"model": "{{context.env}}",
		},
		"recipients": []any{"{{trigger.user.name}}", "static@example.com"},
		"retries":    3,
	}

	resolved := ResolveValue(config, suite.scope)

	expected := map[string]any{
		"prompt": "hi",
		"options": map[string]any{
			"model": "production",
		},
		"recipients": []any{"maya", "static@example.com"},
		"retries":    3,
	}
	assert.Equal(suite.T(), expected, resolved)
}

func (suite *ResolverTestSuite) TestResolveConfig() {
	assert.Nil(suite.T(), ResolveConfig(nil, suite.scope))

	resolved := ResolveConfig(map[string]any{"message": "{{L.response}}"}, suite.scope)
	assert.Equal(suite.T(), map[string]any{"message": "yes"}, resolved)
}

func (suite *ResolverTestSuite) TestSingleMarkerUnresolvedKeepsString() {
	resolved := ResolveValue("{{ghost.path}}", suite.scope)
	assert.Equal(suite.T(), "{{ghost.path}}", resolved)
}
