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

import "github.com/riaz37/clarifaior/internal/system/utils"

// TriggerExecutor handles trigger nodes. Triggers have no effect of their own;
// their output is the trigger payload so downstream nodes can reference it by node id.
type TriggerExecutor struct {
	nodeType string
}

// NewTriggerExecutor creates a trigger executor for the given trigger node type.
func NewTriggerExecutor(nodeType string) *TriggerExecutor {
	return &TriggerExecutor{nodeType: nodeType}
}

// GetType returns the node type handled by this executor.
func (e *TriggerExecutor) GetType() string {
	return e.nodeType
}

// Execute surfaces the trigger payload as the node's output.
func (e *TriggerExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	output := utils.DeepCopyMap(runCtx.TriggerData)
	if output == nil {
		output = map[string]any{}
	}
	output["triggerType"] = runCtx.TriggerType

	return ExecutionResult{Output: output}, nil
}
