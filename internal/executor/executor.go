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

// Package executor provides the node executors and the registry that dispatches
// a node's declared type to its executor.
package executor

import "fmt"

// RunContext carries the per-run information executors may need.
type RunContext struct {
	ExecutionID string
	AgentID     string
	TriggerType string
	TriggerData map[string]any
	TestMode    bool
}

// ExecutionResult represents a node executor's outcome.
// TokensUsed and Cost are populated only by executors that consume metered resources.
type ExecutionResult struct {
	Output     map[string]any
	TokensUsed int
	Cost       float64
}

// ExecutorInterface defines the contract every node executor implements.
// Execute receives the node configuration with all template variables resolved.
type ExecutorInterface interface {
	GetType() string
	Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error)
}

// requireString extracts a required non-empty string from the configuration.
// A missing value is a configuration error discovered at dispatch time.
func requireString(config map[string]any, key string) (string, error) {
	value, ok := config[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("missing required configuration: %s", key)
	}
	return value, nil
}

// optionalString extracts an optional string from the configuration.
func optionalString(config map[string]any, key string) string {
	value, _ := config[key].(string)
	return value
}
