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

// Package engine provides the execution coordinator that walks a flow graph,
// resolves node configurations and dispatches each node to its executor.
package engine

import (
	"context"
	"fmt"
	"time"

	agentconstants "github.com/riaz37/clarifaior/internal/agent/constants"
	agentmodel "github.com/riaz37/clarifaior/internal/agent/model"
	"github.com/riaz37/clarifaior/internal/executor"
	execmodel "github.com/riaz37/clarifaior/internal/execution/model"
	execstore "github.com/riaz37/clarifaior/internal/execution/store"
	"github.com/riaz37/clarifaior/internal/flow/resolver"
	"github.com/riaz37/clarifaior/internal/system/log"
)

const loggerComponentName = "FlowEngine"

// Result represents the outcome of one coordinator run.
type Result struct {
	StepsExecuted int
	Outputs       map[string]map[string]any
}

// CoordinatorInterface defines the interface for running one execution of a flow graph.
type CoordinatorInterface interface {
	Run(ctx context.Context, execution execmodel.Execution, graph *agentmodel.Graph) (Result, error)
}

// Coordinator walks a flow graph depth first from its trigger nodes.
// One coordinator call owns one execution id for its lifetime; the visited set
// and step counter are never shared across executions.
type Coordinator struct {
	registry executor.RegistryInterface
	store    execstore.ExecutionStoreInterface
}

// NewCoordinator creates a new execution coordinator.
func NewCoordinator(registry executor.RegistryInterface,
	store execstore.ExecutionStoreInterface) CoordinatorInterface {
	return &Coordinator{
		registry: registry,
		store:    store,
	}
}

// workItem is one pending node dispatch on the traversal work list.
type workItem struct {
	nodeID string
}

// Run executes the graph for the given execution. It marks the execution
// running, dispatches nodes in depth first pre-order and records a step per
// dispatch. The first executor error aborts the traversal; no successors of the
// failing node run. Cancellation is checked between node dispatches only.
func (c *Coordinator) Run(ctx context.Context, execution execmodel.Execution,
	graph *agentmodel.Graph) (Result, error) {
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyExecutionID, execution.ID),
		log.String(log.LoggerKeyAgentID, execution.AgentID))

	result := Result{Outputs: make(map[string]map[string]any)}

	if graph == nil {
		return result, fmt.Errorf("graph is required")
	}

	nodesByID := make(map[string]agentmodel.Node, len(graph.Nodes))
	for _, node := range graph.Nodes {
		nodesByID[node.ID] = node
	}
	outgoing := make(map[string][]agentmodel.Edge)
	for _, edge := range graph.Edges {
		outgoing[edge.Source] = append(outgoing[edge.Source], edge)
	}

	var triggers []agentmodel.Node
	for _, node := range graph.Nodes {
		if agentconstants.IsTriggerNodeType(node.Type) {
			triggers = append(triggers, node)
		}
	}
	if len(triggers) == 0 {
		// Defensive: the validator gates this before an execution is ever queued.
		return result, fmt.Errorf("graph has no trigger nodes")
	}

	if execution.Status == execmodel.StatusPending {
		if err := execution.TransitionTo(execmodel.StatusRunning, time.Now()); err != nil {
			return result, err
		}
		if err := c.store.UpdateExecutionStatus(execution); err != nil {
			return result, fmt.Errorf("failed to mark execution running: %w", err)
		}
	}

	// Step numbers continue after any steps recorded by earlier attempts of
	// this execution so that numbering stays strictly increasing.
	priorSteps, err := c.store.ListExecutionSteps(execution.ID)
	if err != nil {
		return result, fmt.Errorf("failed to list prior steps: %w", err)
	}
	stepCounter := len(priorSteps)

	runCtx := executor.RunContext{
		ExecutionID: execution.ID,
		AgentID:     execution.AgentID,
		TriggerType: execution.TriggerType,
		TriggerData: execution.TriggerData,
		TestMode:    execution.TestMode,
	}

	scope := map[string]any{
		"trigger": anyMap(execution.TriggerData),
		"context": anyMap(execution.Context),
	}

	visited := make(map[string]bool, len(graph.Nodes))

	for _, trigger := range triggers {
		// Explicit work list instead of recursion; pushing successors in
		// reverse keeps the dispatch order identical to a recursive pre-order.
		stack := []workItem{{nodeID: trigger.ID}}

		for len(stack) > 0 {
			if err := ctx.Err(); err != nil {
				logger.Debug("Execution cancelled between node dispatches",
					log.Int(log.LoggerKeyStepNumber, stepCounter))
				return result, err
			}

			item := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[item.nodeID] {
				continue
			}
			node, ok := nodesByID[item.nodeID]
			if !ok {
				continue
			}
			visited[item.nodeID] = true
			stepCounter++

			output, err := c.dispatchNode(node, stepCounter, runCtx, scope, logger)
			if err != nil {
				return result, err
			}

			result.StepsExecuted++
			result.Outputs[node.ID] = output
			scope[node.ID] = output

			successors := successorIDs(node, output, outgoing[node.ID])
			for i := len(successors) - 1; i >= 0; i-- {
				if !visited[successors[i]] {
					stack = append(stack, workItem{nodeID: successors[i]})
				}
			}
		}
	}

	return result, nil
}

// dispatchNode resolves the node configuration, records the step and invokes
// the node's executor. The step record is completed in place on both success
// and failure.
func (c *Coordinator) dispatchNode(node agentmodel.Node, stepNumber int, runCtx executor.RunContext,
	scope map[string]any, logger *log.Logger) (map[string]any, error) {
	logger.Debug("Dispatching node",
		log.String(log.LoggerKeyNodeID, node.ID),
		log.String(log.LoggerKeyNodeType, node.Type),
		log.Int(log.LoggerKeyStepNumber, stepNumber))

	resolvedInput := resolver.ResolveConfig(node.Data, scope)
	startedAt := time.Now()

	step := execmodel.ExecutionStep{
		ExecutionID: runCtx.ExecutionID,
		NodeID:      node.ID,
		StepNumber:  stepNumber,
		Status:      execmodel.StepStatusRunning,
		Input:       resolvedInput,
		StartedAt:   startedAt,
	}
	if err := c.store.CreateExecutionStep(step); err != nil {
		return nil, fmt.Errorf("failed to record step: %w", err)
	}

	var execResult executor.ExecutionResult
	nodeExecutor, err := c.registry.Get(node.Type)
	if err == nil {
		execResult, err = nodeExecutor.Execute(resolvedInput, runCtx)
	}

	completedAt := time.Now()
	step.DurationMs = completedAt.Sub(startedAt).Milliseconds()
	step.CompletedAt = &completedAt

	if err != nil {
		step.Status = execmodel.StepStatusFailed
		step.Error = err.Error()
		if storeErr := c.store.CompleteExecutionStep(step); storeErr != nil {
			logger.Error("Failed to record failed step", log.Error(storeErr))
		}
		return nil, fmt.Errorf("node %s failed: %w", node.ID, err)
	}

	step.Status = execmodel.StepStatusCompleted
	step.Output = execResult.Output
	step.TokensUsed = execResult.TokensUsed
	step.Cost = execResult.Cost
	if storeErr := c.store.CompleteExecutionStep(step); storeErr != nil {
		return nil, fmt.Errorf("failed to record step outcome: %w", storeErr)
	}

	return execResult.Output, nil
}

// successorIDs returns the targets to traverse next. For condition nodes the
// outgoing edges are filtered by the source handle matching the boolean result;
// every other node type follows all outgoing edges.
func successorIDs(node agentmodel.Node, output map[string]any, edges []agentmodel.Edge) []string {
	var branch string
	if node.Type == agentconstants.NodeTypeCondition {
		branch = "false"
		if result, ok := output["result"].(bool); ok && result {
			branch = "true"
		}
	}

	successors := make([]string, 0, len(edges))
	for _, edge := range edges {
		if branch != "" && edge.SourceHandle != branch {
			continue
		}
		successors = append(successors, edge.Target)
	}
	return successors
}

// anyMap normalizes a possibly nil map for use as a resolver scope root.
func anyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
