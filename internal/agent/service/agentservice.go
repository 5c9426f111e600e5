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

// Package service provides agent management operations.
package service

import (
	"errors"

	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/agent/model"
	"github.com/riaz37/clarifaior/internal/agent/store"
	"github.com/riaz37/clarifaior/internal/flow/validator"
	"github.com/riaz37/clarifaior/internal/system/cache"
	"github.com/riaz37/clarifaior/internal/system/error/serviceerror"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

const loggerComponentName = "AgentService"

// AgentRequest is a request to create or update an agent.
type AgentRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Graph       *model.Graph `json:"graph"`
}

// AgentServiceInterface defines the interface for agent management operations.
type AgentServiceInterface interface {
	CreateAgent(request AgentRequest) (model.Agent, *serviceerror.ServiceError)
	GetAgent(id string) (model.Agent, *serviceerror.ServiceError)
	GetAgentList() ([]model.Agent, *serviceerror.ServiceError)
	UpdateAgent(id string, request AgentRequest) (model.Agent, *serviceerror.ServiceError)
	SetAgentActiveState(id string, isActive bool) (model.Agent, *serviceerror.ServiceError)
	DeleteAgent(id string) *serviceerror.ServiceError
	ValidateAgentGraph(graph *model.Graph) model.ValidationResult
}

type agentService struct {
	agentStore store.AgentStoreInterface
	agentCache cache.CacheInterface[model.Agent]
}

// NewAgentService creates a new agent service.
func NewAgentService(agentStore store.AgentStoreInterface) AgentServiceInterface {
	return &agentService{
		agentStore: agentStore,
		agentCache: cache.NewCache[model.Agent]("AgentCache"),
	}
}

// CreateAgent creates a new agent. The graph must pass validation; validation
// warnings do not block the save.
func (as *agentService) CreateAgent(request AgentRequest) (model.Agent, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if request.Name == "" || request.Graph == nil {
		return model.Agent{}, &constants.ErrorInvalidRequestFormat
	}
	if result := validator.Validate(request.Graph); !result.Valid {
		return model.Agent{}, &constants.ErrorAgentGraphInvalid
	}

	agent := model.Agent{
		ID:          utils.GenerateUUID(),
		Name:        request.Name,
		Description: request.Description,
		IsActive:    false,
		Graph:       request.Graph,
	}
	if err := as.agentStore.CreateAgent(agent); err != nil {
		logger.Error("Failed to create agent", log.Error(err))
		return model.Agent{}, &constants.ErrorInternalServerError
	}

	logger.Debug("Agent created", log.String(log.LoggerKeyAgentID, agent.ID))
	return agent, nil
}

// GetAgent retrieves an agent by its id.
func (as *agentService) GetAgent(id string) (model.Agent, *serviceerror.ServiceError) {
	if id == "" {
		return model.Agent{}, &constants.ErrorMissingAgentID
	}

	cacheKey := cache.CacheKey{Key: id}
	if agent, ok := as.agentCache.Get(cacheKey); ok {
		return agent, nil
	}

	agent, err := as.agentStore.GetAgent(id)
	if err != nil {
		if errors.Is(err, store.ErrAgentNotFound) {
			return model.Agent{}, &constants.ErrorAgentNotFound
		}
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to load agent", log.String(log.LoggerKeyAgentID, id), log.Error(err))
		return model.Agent{}, &constants.ErrorInternalServerError
	}

	as.agentCache.Set(cacheKey, agent)
	return agent, nil
}

// GetAgentList retrieves all agents.
func (as *agentService) GetAgentList() ([]model.Agent, *serviceerror.ServiceError) {
	agents, err := as.agentStore.GetAgentList()
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to list agents", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	return agents, nil
}

// UpdateAgent updates an agent's name, description and graph. Updating keeps
// the current active state; an update with an invalid graph is rejected.
func (as *agentService) UpdateAgent(id string, request AgentRequest) (
	model.Agent, *serviceerror.ServiceError,
) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if id == "" {
		return model.Agent{}, &constants.ErrorMissingAgentID
	}
	if request.Name == "" || request.Graph == nil {
		return model.Agent{}, &constants.ErrorInvalidRequestFormat
	}
	if result := validator.Validate(request.Graph); !result.Valid {
		return model.Agent{}, &constants.ErrorAgentGraphInvalid
	}

	existing, svcErr := as.GetAgent(id)
	if svcErr != nil {
		return model.Agent{}, svcErr
	}

	agent := model.Agent{
		ID:          id,
		Name:        request.Name,
		Description: request.Description,
		IsActive:    existing.IsActive,
		Graph:       request.Graph,
	}
	if err := as.agentStore.UpdateAgent(agent); err != nil {
		if errors.Is(err, store.ErrAgentNotFound) {
			return model.Agent{}, &constants.ErrorAgentNotFound
		}
		logger.Error("Failed to update agent", log.String(log.LoggerKeyAgentID, id), log.Error(err))
		return model.Agent{}, &constants.ErrorInternalServerError
	}

	as.agentCache.Delete(cache.CacheKey{Key: id})
	logger.Debug("Agent updated", log.String(log.LoggerKeyAgentID, id))
	return agent, nil
}

// SetAgentActiveState activates or deactivates an agent. Activation re-checks
// the stored graph so an agent whose graph no longer validates cannot go live;
// deactivation is always allowed.
func (as *agentService) SetAgentActiveState(id string, isActive bool) (
	model.Agent, *serviceerror.ServiceError,
) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	agent, svcErr := as.GetAgent(id)
	if svcErr != nil {
		return model.Agent{}, svcErr
	}

	if isActive {
		if result := validator.Validate(agent.Graph); !result.Valid {
			return model.Agent{}, &constants.ErrorAgentGraphInvalid
		}
	}

	if err := as.agentStore.UpdateAgentActiveState(id, isActive); err != nil {
		if errors.Is(err, store.ErrAgentNotFound) {
			return model.Agent{}, &constants.ErrorAgentNotFound
		}
		logger.Error("Failed to update agent active state",
			log.String(log.LoggerKeyAgentID, id), log.Error(err))
		return model.Agent{}, &constants.ErrorInternalServerError
	}

	agent.IsActive = isActive
	as.agentCache.Delete(cache.CacheKey{Key: id})
	logger.Debug("Agent active state updated", log.String(log.LoggerKeyAgentID, id),
		log.Bool("isActive", isActive))
	return agent, nil
}

// DeleteAgent deletes an agent. Deleting a missing agent is not an error.
func (as *agentService) DeleteAgent(id string) *serviceerror.ServiceError {
	if id == "" {
		return &constants.ErrorMissingAgentID
	}

	if err := as.agentStore.DeleteAgent(id); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to delete agent", log.String(log.LoggerKeyAgentID, id), log.Error(err))
		return &constants.ErrorInternalServerError
	}

	as.agentCache.Delete(cache.CacheKey{Key: id})
	return nil
}

// ValidateAgentGraph validates a graph without persisting anything.
func (as *agentService) ValidateAgentGraph(graph *model.Graph) model.ValidationResult {
	return validator.Validate(graph)
}
