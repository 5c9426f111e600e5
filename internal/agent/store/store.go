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

// Package store provides persistence for agent definitions.
package store

import (
	"errors"
	"fmt"

	"github.com/riaz37/clarifaior/internal/agent/model"
	"github.com/riaz37/clarifaior/internal/system/database/provider"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

// ErrAgentNotFound is returned when the requested agent does not exist.
var ErrAgentNotFound = errors.New("agent not found")

// AgentStoreInterface defines the interface for agent persistence operations.
type AgentStoreInterface interface {
	CreateAgent(agent model.Agent) error
	GetAgent(id string) (model.Agent, error)
	GetAgentList() ([]model.Agent, error)
	UpdateAgent(agent model.Agent) error
	UpdateAgentActiveState(id string, isActive bool) error
	DeleteAgent(id string) error
}

// agentStore is the default implementation of AgentStoreInterface.
type agentStore struct {
	dbProvider provider.DBProviderInterface
}

// NewAgentStore creates a new agent store backed by the definitions database.
func NewAgentStore(dbProvider provider.DBProviderInterface) AgentStoreInterface {
	return &agentStore{
		dbProvider: dbProvider,
	}
}

// CreateAgent inserts a new agent definition.
func (s *agentStore) CreateAgent(agent model.Agent) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameDefinitions)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	graphJSON, err := utils.SerializeJSON(agent.Graph)
	if err != nil {
		return fmt.Errorf("failed to serialize graph: %w", err)
	}

	_, err = dbClient.Execute(queryCreateAgent, agent.ID, agent.Name, agent.Description, agent.IsActive, graphJSON)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetAgent retrieves an agent definition by its ID.
func (s *agentStore) GetAgent(id string) (model.Agent, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameDefinitions)
	if err != nil {
		return model.Agent{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetAgentByID, id)
	if err != nil {
		return model.Agent{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return model.Agent{}, ErrAgentNotFound
	}
	if len(results) != 1 {
		return model.Agent{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildAgentFromResultRow(results[0])
}

// GetAgentList retrieves all agent definitions without their graphs.
func (s *agentStore) GetAgentList() ([]model.Agent, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameDefinitions)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(queryGetAgentList)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	agents := make([]model.Agent, 0, len(results))
	for _, row := range results {
		agent, err := buildAgentFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build agent from result row: %w", err)
		}
		agents = append(agents, agent)
	}

	return agents, nil
}

// UpdateAgent updates the name, description and graph of an existing agent.
func (s *agentStore) UpdateAgent(agent model.Agent) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameDefinitions)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	graphJSON, err := utils.SerializeJSON(agent.Graph)
	if err != nil {
		return fmt.Errorf("failed to serialize graph: %w", err)
	}

	rowsAffected, err := dbClient.Execute(queryUpdateAgentByID, agent.ID, agent.Name, agent.Description, graphJSON)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAgentNotFound
	}

	return nil
}

// UpdateAgentActiveState toggles the active flag of an agent.
func (s *agentStore) UpdateAgentActiveState(id string, isActive bool) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameDefinitions)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(queryUpdateAgentActiveState, id, isActive)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAgentNotFound
	}

	return nil
}

// DeleteAgent removes an agent definition.
func (s *agentStore) DeleteAgent(id string) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameDefinitions)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(queryDeleteAgentByID, id); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// buildAgentFromResultRow constructs an agent from a database result row.
func buildAgentFromResultRow(row map[string]interface{}) (model.Agent, error) {
	agentID, ok := row["agent_id"].(string)
	if !ok {
		return model.Agent{}, fmt.Errorf("failed to parse agent_id as string")
	}

	name, ok := row["name"].(string)
	if !ok {
		return model.Agent{}, fmt.Errorf("failed to parse name as string")
	}

	description := ""
	if desc, ok := row["description"].(string); ok {
		description = desc
	}

	agent := model.Agent{
		ID:          agentID,
		Name:        name,
		Description: description,
		IsActive:    parseBoolean(row["is_active"]),
	}

	if graphJSON, ok := row["graph_json"].(string); ok && graphJSON != "" {
		var graph model.Graph
		if err := utils.DeserializeJSON(graphJSON, &graph); err != nil {
			return model.Agent{}, fmt.Errorf("failed to deserialize graph: %w", err)
		}
		agent.Graph = &graph
	}

	return agent, nil
}

// parseBoolean parses a boolean column across database drivers.
func parseBoolean(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}
