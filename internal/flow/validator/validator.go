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

// Package validator provides structural and semantic validation of flow graphs.
package validator

import (
	"fmt"

	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/agent/model"
)

// nodeTypeRule defines the configuration completeness rules for one node type.
// Required data keys produce errors when absent; recommended keys produce warnings.
type nodeTypeRule struct {
	required    []string
	recommended []string
}

// nodeTypeRules indexes configuration rules by node type.
// Unknown node types are not checked further (forward compatible).
var nodeTypeRules = map[string]nodeTypeRule{
	constants.NodeTypeWebhookTrigger: {
		required: []string{"endpoint"},
	},
	constants.NodeTypeAIPrompt: {
		required:    []string{"prompt"},
		recommended: []string{"model"},
	},
	constants.NodeTypeSlackMessage: {
		required: []string{"channel", "message"},
	},
	constants.NodeTypeNotionPage: {
		required: []string{"pageId"},
	},
	constants.NodeTypeSendEmail: {
		required:    []string{"to"},
		recommended: []string{"subject"},
	},
	constants.NodeTypeCondition: {
		required: []string{"condition"},
	},
}

// actionNodeTypes lists node types that terminate a flow branch.
// Zero outgoing edges on these nodes is expected and not flagged.
var actionNodeTypes = map[string]bool{
	constants.NodeTypeSlackMessage: true,
	constants.NodeTypeSendEmail:    true,
	constants.NodeTypeNotionPage:   true,
}

// Validate checks a flow graph and returns the validation result.
// It is pure and deterministic; a graph is valid when no errors were found.
// Warnings never affect validity.
func Validate(graph *model.Graph) model.ValidationResult {
	errors := make([]string, 0)
	warnings := make([]string, 0)

	// Structural short-circuit: without a graph and node/edge sequences no
	// further checks are meaningful.
	if graph == nil {
		errors = append(errors, "graph is required")
		return result(errors, warnings)
	}
	if graph.Nodes == nil {
		errors = append(errors, "graph nodes must be a list")
	}
	if graph.Edges == nil {
		errors = append(errors, "graph edges must be a list")
	}
	if len(errors) > 0 {
		return result(errors, warnings)
	}

	nodeIDs := make(map[string]bool, len(graph.Nodes))
	triggerCount := 0

	for _, node := range graph.Nodes {
		if node.ID == "" {
			errors = append(errors, "node has an empty id")
			continue
		}
		if nodeIDs[node.ID] {
			errors = append(errors, fmt.Sprintf("duplicate node id: %s", node.ID))
		}
		nodeIDs[node.ID] = true

		if node.Type == "" {
			errors = append(errors, fmt.Sprintf("node %s: type is required", node.ID))
		}
		if node.Label == "" {
			warnings = append(warnings, fmt.Sprintf("node %s: label is missing", node.ID))
		}
		if node.Position == nil || node.Position.X == nil || node.Position.Y == nil {
			errors = append(errors, fmt.Sprintf("node %s: position.x and position.y must be numbers", node.ID))
		}

		if constants.IsTriggerNodeType(node.Type) {
			triggerCount++
		}

		nodeErrors, nodeWarnings := checkNodeConfiguration(node)
		errors = append(errors, nodeErrors...)
		warnings = append(warnings, nodeWarnings...)
	}

	if triggerCount == 0 {
		errors = append(errors, "flow must contain at least one trigger node")
	} else if triggerCount > 1 {
		warnings = append(warnings, "flow contains more than one trigger node")
	}

	edgeIDs := make(map[string]bool, len(graph.Edges))
	for _, edge := range graph.Edges {
		if edge.ID == "" {
			errors = append(errors, "edge has an empty id")
		} else if edgeIDs[edge.ID] {
			errors = append(errors, fmt.Sprintf("duplicate edge id: %s", edge.ID))
		} else {
			edgeIDs[edge.ID] = true
		}

		if !nodeIDs[edge.Source] {
			errors = append(errors, fmt.Sprintf("edge %s: source references unknown node: %s", edge.ID, edge.Source))
		}
		if !nodeIDs[edge.Target] {
			errors = append(errors, fmt.Sprintf("edge %s: target references unknown node: %s", edge.ID, edge.Target))
		}
	}

	warnings = append(warnings, checkReachability(graph)...)

	if hasCycle(graph) {
		warnings = append(warnings, "flow contains cycles")
	}

	return result(errors, warnings)
}

// checkNodeConfiguration applies the type-indexed rule table to a node's data map.
func checkNodeConfiguration(node model.Node) ([]string, []string) {
	rule, ok := nodeTypeRules[node.Type]
	if !ok {
		return nil, nil
	}

	var errors, warnings []string
	for _, key := range rule.required {
		if !hasDataValue(node.Data, key) {
			errors = append(errors, fmt.Sprintf("node %s: data.%s is required", node.ID, key))
		}
	}
	for _, key := range rule.recommended {
		if !hasDataValue(node.Data, key) {
			warnings = append(warnings, fmt.Sprintf("node %s: data.%s is recommended", node.ID, key))
		}
	}
	return errors, warnings
}

// hasDataValue reports whether the data map carries a non-empty value for the key.
func hasDataValue(data map[string]any, key string) bool {
	if data == nil {
		return false
	}
	value, ok := data[key]
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}

// checkReachability emits heuristic warnings for nodes with suspicious degree.
func checkReachability(graph *model.Graph) []string {
	incoming := make(map[string]int)
	outgoing := make(map[string]int)
	for _, edge := range graph.Edges {
		outgoing[edge.Source]++
		incoming[edge.Target]++
	}

	var warnings []string
	for _, node := range graph.Nodes {
		if node.ID == "" {
			continue
		}
		if !constants.IsTriggerNodeType(node.Type) && incoming[node.ID] == 0 {
			warnings = append(warnings, fmt.Sprintf("node %s: has no incoming edges and may be unreachable", node.ID))
		}
		if !actionNodeTypes[node.Type] && outgoing[node.ID] == 0 {
			warnings = append(warnings, fmt.Sprintf("node %s: has no outgoing edges", node.ID))
		}
	}
	return warnings
}

// hasCycle runs a depth first traversal over the source to target adjacency and
// reports whether any cycle is reachable from any node.
func hasCycle(graph *model.Graph) bool {
	adjacency := make(map[string][]string)
	for _, edge := range graph.Edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(graph.Nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = inStack
		for _, next := range adjacency[id] {
			switch state[next] {
			case inStack:
				return true
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}

	for _, node := range graph.Nodes {
		if state[node.ID] == unvisited {
			if visit(node.ID) {
				return true
			}
		}
	}
	return false
}

func result(errors, warnings []string) model.ValidationResult {
	return model.ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}
