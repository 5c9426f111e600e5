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
	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

// TransformExecutor handles transform nodes, which reshape data between nodes.
// The node's resolved mapping becomes its output; downstream nodes reference it
// by the transform node's id.
type TransformExecutor struct{}

// NewTransformExecutor creates a transform executor.
func NewTransformExecutor() *TransformExecutor {
	return &TransformExecutor{}
}

// GetType returns the node type handled by this executor.
func (e *TransformExecutor) GetType() string {
	return constants.NodeTypeTransform
}

// Execute returns the resolved mapping as the node output. When no explicit
// mapping is configured the whole resolved configuration passes through.
func (e *TransformExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	if mapping, ok := config["mapping"].(map[string]any); ok {
		return ExecutionResult{Output: utils.DeepCopyMap(mapping)}, nil
	}

	output := utils.DeepCopyMap(config)
	if output == nil {
		output = map[string]any{}
	}
	return ExecutionResult{Output: output}, nil
}
