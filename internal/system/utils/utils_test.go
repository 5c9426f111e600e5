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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestGenerateUUID() {
	first := GenerateUUID()
	second := GenerateUUID()

	assert.Len(suite.T(), first, 36)
	assert.NotEqual(suite.T(), first, second)
}

func (suite *UtilsTestSuite) TestSerializeJSON() {
	value := map[string]any{"name": "agent-1", "steps": float64(2)}

	serialized, err := SerializeJSON(value)
	assert.NoError(suite.T(), err)

	var parsed map[string]any
	assert.NoError(suite.T(), DeserializeJSON(serialized, &parsed))
	assert.Equal(suite.T(), value, parsed)
}

func (suite *UtilsTestSuite) TestDeserializeJSONEmptyString() {
	var parsed map[string]any
	assert.NoError(suite.T(), DeserializeJSON("", &parsed))
	assert.Nil(suite.T(), parsed)
}

func (suite *UtilsTestSuite) TestDeserializeJSONInvalid() {
	var parsed map[string]any
	assert.Error(suite.T(), DeserializeJSON("{invalid", &parsed))
}

func (suite *UtilsTestSuite) TestMergeMaps() {
	testCases := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{
			name:     "SrcOverridesDst",
			dst:      map[string]any{"a": 1, "b": 2},
			src:      map[string]any{"b": 3},
			expected: map[string]any{"a": 1, "b": 3},
		},
		{
			name:     "NilDst",
			dst:      nil,
			src:      map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "EmptySrcKeepsDstNil",
			dst:      nil,
			src:      nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MergeMaps(tc.dst, tc.src))
		})
	}
}

func (suite *UtilsTestSuite) TestDeepCopyMap() {
	src := map[string]any{"a": 1}
	dst := DeepCopyMap(src)

	assert.Equal(suite.T(), src, dst)

	dst["a"] = 2
	assert.Equal(suite.T(), 1, src["a"])
}

func (suite *UtilsTestSuite) TestDeepCopyMapNil() {
	assert.Nil(suite.T(), DeepCopyMap(nil))
}
