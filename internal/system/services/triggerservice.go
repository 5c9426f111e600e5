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

package services

import (
	"net/http"

	"github.com/riaz37/clarifaior/internal/system/middleware"
	"github.com/riaz37/clarifaior/internal/trigger"
)

// TriggerService is the service for inbound trigger operations.
type TriggerService struct {
	webhookHandler *trigger.WebhookHandler
}

// NewTriggerService creates a new instance of TriggerService.
func NewTriggerService(mux *http.ServeMux, enqueuer trigger.ExecutionEnqueuer) ServiceInterface {
	instance := &TriggerService{
		webhookHandler: trigger.NewWebhookHandler(enqueuer),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for inbound trigger operations.
func (s *TriggerService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("POST /triggers/webhook/{agentId}",
		s.webhookHandler.HandleWebhookRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /triggers/webhook/{agentId}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))
}
