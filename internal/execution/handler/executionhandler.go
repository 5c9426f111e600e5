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

// Package handler provides the HTTP handlers for execution management operations.
package handler

import (
	"net/http"

	agentconstants "github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/execution/constants"
	"github.com/riaz37/clarifaior/internal/execution/service"
	"github.com/riaz37/clarifaior/internal/system/error/serviceerror"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

const loggerComponentName = "ExecutionHandler"

// ExecutionHandler is the handler for execution management operations.
type ExecutionHandler struct {
	service service.ExecutionServiceInterface
}

// NewExecutionHandler creates a new instance of ExecutionHandler.
func NewExecutionHandler(service service.ExecutionServiceInterface) *ExecutionHandler {
	return &ExecutionHandler{service: service}
}

// HandleExecutionPostRequest handles the run agent request.
func (eh *ExecutionHandler) HandleExecutionPostRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var request service.ExecutionRequest
	if err := utils.DecodeJSONBody(r, &request); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequestFormat.Code,
			constants.ErrorInvalidRequestFormat.Error,
			"Failed to parse request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	execution, svcErr := eh.service.EnqueueExecution(request)
	if svcErr != nil {
		eh.handleError(w, svcErr)
		return
	}

	logger.Debug("Execution accepted", log.String(log.LoggerKeyExecutionID, execution.ID))
	utils.WriteJSONResponse(w, http.StatusAccepted, execution)
}

// HandleExecutionGetRequest handles the get execution request.
func (eh *ExecutionHandler) HandleExecutionGetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	execution, svcErr := eh.service.GetExecution(id)
	if svcErr != nil {
		eh.handleError(w, svcErr)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, execution)
}

// HandleExecutionStepsGetRequest handles the list execution steps request.
func (eh *ExecutionHandler) HandleExecutionStepsGetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	steps, svcErr := eh.service.ListExecutionSteps(id)
	if svcErr != nil {
		eh.handleError(w, svcErr)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, steps)
}

// HandleExecutionCancelRequest handles the cancel execution request.
func (eh *ExecutionHandler) HandleExecutionCancelRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	id := r.PathValue("id")

	if svcErr := eh.service.CancelExecution(id); svcErr != nil {
		eh.handleError(w, svcErr)
		return
	}

	logger.Debug("Execution cancellation accepted", log.String(log.LoggerKeyExecutionID, id))
	w.WriteHeader(http.StatusNoContent)
}

func (eh *ExecutionHandler) handleError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		switch svcErr.Code {
		case constants.ErrorExecutionNotFound.Code, agentconstants.ErrorAgentNotFound.Code:
			statusCode = http.StatusNotFound
		case constants.ErrorExecutionAlreadyTerminal.Code:
			statusCode = http.StatusConflict
		default:
			statusCode = http.StatusBadRequest
		}
	}
	utils.WriteJSONError(w, svcErr.Code, svcErr.Error, svcErr.ErrorDescription, statusCode)
}
