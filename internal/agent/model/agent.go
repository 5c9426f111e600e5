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

// Package model defines the data structures for agent definitions and their flow graphs.
package model

// Position represents the display coordinates of a node on the canvas.
// The coordinates carry no execution semantics; they are validated for shape only.
type Position struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Node represents a single typed node within a flow graph.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Label    string         `json:"label,omitempty"`
	Position *Position      `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// Edge represents a directed connection between two nodes.
// SourceHandle carries the branch selector for condition nodes ("true" or "false").
type Edge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle string         `json:"sourceHandle,omitempty"`
	TargetHandle string         `json:"targetHandle,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

// Graph represents the complete node and edge definition of one automation.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Agent represents a user composed automation definition.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	Graph       *Graph `json:"graph"`
}

// ValidationResult represents the outcome of validating a flow graph.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
