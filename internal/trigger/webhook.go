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

// Package trigger provides the inbound front-ends that start agent executions.
package trigger

import (
	"encoding/json"
	"io"
	"net/http"

	agentconstants "github.com/riaz37/clarifaior/internal/agent/constants"
	execconstants "github.com/riaz37/clarifaior/internal/execution/constants"
	execmodel "github.com/riaz37/clarifaior/internal/execution/model"
	"github.com/riaz37/clarifaior/internal/execution/service"
	"github.com/riaz37/clarifaior/internal/system/error/serviceerror"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

const webhookLoggerComponentName = "WebhookTrigger"

// TriggerTypeWebhook and friends name the execution trigger sources.
const (
	TriggerTypeWebhook  = "webhook"
	TriggerTypeSchedule = "schedule"
	TriggerTypeManual   = "manual"
)

// ExecutionEnqueuer schedules an execution for an agent. It is satisfied by the
// execution service; triggers never talk to the queue directly.
type ExecutionEnqueuer interface {
	EnqueueExecution(request service.ExecutionRequest) (execmodel.Execution, *serviceerror.ServiceError)
}

// WebhookHandler accepts inbound webhook calls and turns them into executions.
type WebhookHandler struct {
	enqueuer ExecutionEnqueuer
}

// NewWebhookHandler creates a new webhook trigger handler.
func NewWebhookHandler(enqueuer ExecutionEnqueuer) *WebhookHandler {
	return &WebhookHandler{enqueuer: enqueuer}
}

// HandleWebhookRequest handles an inbound webhook for an agent. The request
// body, if it is JSON, becomes `trigger.body`; query parameters become
// `trigger.query`. Non-JSON bodies are passed through as a string.
func (wh *WebhookHandler) HandleWebhookRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, webhookLoggerComponentName))
	agentID := r.PathValue("agentId")

	triggerData := map[string]any{}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteJSONError(w, execconstants.ErrorInvalidRequestFormat.Code,
			execconstants.ErrorInvalidRequestFormat.Error,
			"Failed to read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) > 0 {
		var parsed map[string]any
		if json.Unmarshal(body, &parsed) == nil {
			triggerData["body"] = parsed
		} else {
			triggerData["body"] = string(body)
		}
	}

	query := map[string]any{}
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			query[key] = values[0]
		} else {
			query[key] = values
		}
	}
	if len(query) > 0 {
		triggerData["query"] = query
	}

	execution, svcErr := wh.enqueuer.EnqueueExecution(service.ExecutionRequest{
		AgentID:     agentID,
		TriggerType: TriggerTypeWebhook,
		TriggerData: triggerData,
	})
	if svcErr != nil {
		wh.handleError(w, svcErr)
		return
	}

	logger.Debug("Webhook accepted", log.String(log.LoggerKeyAgentID, agentID),
		log.String(log.LoggerKeyExecutionID, execution.ID))
	utils.WriteJSONResponse(w, http.StatusAccepted, map[string]string{
		"executionId": execution.ID,
		"status":      string(execution.Status),
	})
}

func (wh *WebhookHandler) handleError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		switch svcErr.Code {
		case agentconstants.ErrorAgentNotFound.Code:
			statusCode = http.StatusNotFound
		case agentconstants.ErrorAgentNotActive.Code:
			statusCode = http.StatusConflict
		default:
			statusCode = http.StatusBadRequest
		}
	}
	utils.WriteJSONError(w, svcErr.Code, svcErr.Error, svcErr.ErrorDescription, statusCode)
}
