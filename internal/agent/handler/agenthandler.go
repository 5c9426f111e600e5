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

// Package handler provides the HTTP handlers for agent management operations.
package handler

import (
	"net/http"

	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/agent/model"
	"github.com/riaz37/clarifaior/internal/agent/service"
	"github.com/riaz37/clarifaior/internal/system/error/serviceerror"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

const loggerComponentName = "AgentHandler"

// agentActiveStateRequest is the body of an activate or deactivate request.
type agentActiveStateRequest struct {
	IsActive bool `json:"isActive"`
}

// AgentHandler is the handler for agent management operations.
type AgentHandler struct {
	service service.AgentServiceInterface
}

// NewAgentHandler creates a new instance of AgentHandler.
func NewAgentHandler(service service.AgentServiceInterface) *AgentHandler {
	return &AgentHandler{service: service}
}

// HandleAgentPostRequest handles the create agent request.
func (ah *AgentHandler) HandleAgentPostRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var request service.AgentRequest
	if err := utils.DecodeJSONBody(r, &request); err != nil {
		ah.writeParseError(w, err)
		return
	}

	agent, svcErr := ah.service.CreateAgent(request)
	if svcErr != nil {
		ah.handleError(w, svcErr)
		return
	}

	logger.Debug("Agent created", log.String(log.LoggerKeyAgentID, agent.ID))
	utils.WriteJSONResponse(w, http.StatusCreated, agent)
}

// HandleAgentListRequest handles the list agents request.
func (ah *AgentHandler) HandleAgentListRequest(w http.ResponseWriter, r *http.Request) {
	agents, svcErr := ah.service.GetAgentList()
	if svcErr != nil {
		ah.handleError(w, svcErr)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, agents)
}

// HandleAgentGetRequest handles the get agent request.
func (ah *AgentHandler) HandleAgentGetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	agent, svcErr := ah.service.GetAgent(id)
	if svcErr != nil {
		ah.handleError(w, svcErr)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, agent)
}

// HandleAgentPutRequest handles the update agent request.
func (ah *AgentHandler) HandleAgentPutRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var request service.AgentRequest
	if err := utils.DecodeJSONBody(r, &request); err != nil {
		ah.writeParseError(w, err)
		return
	}

	agent, svcErr := ah.service.UpdateAgent(id, request)
	if svcErr != nil {
		ah.handleError(w, svcErr)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, agent)
}

// HandleAgentActiveStatePutRequest handles the activate or deactivate agent request.
func (ah *AgentHandler) HandleAgentActiveStatePutRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var request agentActiveStateRequest
	if err := utils.DecodeJSONBody(r, &request); err != nil {
		ah.writeParseError(w, err)
		return
	}

	agent, svcErr := ah.service.SetAgentActiveState(id, request.IsActive)
	if svcErr != nil {
		ah.handleError(w, svcErr)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, agent)
}

// HandleAgentDeleteRequest handles the delete agent request.
func (ah *AgentHandler) HandleAgentDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if svcErr := ah.service.DeleteAgent(id); svcErr != nil {
		ah.handleError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGraphValidateRequest handles the validate graph request. It always
// answers 200; the verdict lives in the response body.
func (ah *AgentHandler) HandleGraphValidateRequest(w http.ResponseWriter, r *http.Request) {
	var graph model.Graph
	if err := utils.DecodeJSONBody(r, &graph); err != nil {
		ah.writeParseError(w, err)
		return
	}

	result := ah.service.ValidateAgentGraph(&graph)
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

func (ah *AgentHandler) writeParseError(w http.ResponseWriter, err error) {
	utils.WriteJSONError(w, constants.ErrorInvalidRequestFormat.Code,
		constants.ErrorInvalidRequestFormat.Error,
		"Failed to parse request body: "+err.Error(), http.StatusBadRequest)
}

func (ah *AgentHandler) handleError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		switch svcErr.Code {
		case constants.ErrorAgentNotFound.Code:
			statusCode = http.StatusNotFound
		default:
			statusCode = http.StatusBadRequest
		}
	}
	utils.WriteJSONError(w, svcErr.Code, svcErr.Error, svcErr.ErrorDescription, statusCode)
}
