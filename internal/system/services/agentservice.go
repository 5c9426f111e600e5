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

	"github.com/riaz37/clarifaior/internal/agent/handler"
	"github.com/riaz37/clarifaior/internal/agent/service"
	"github.com/riaz37/clarifaior/internal/system/middleware"
)

// AgentService is the service for agent management operations.
type AgentService struct {
	agentHandler *handler.AgentHandler
}

// NewAgentService creates a new instance of AgentService.
func NewAgentService(mux *http.ServeMux, agentService service.AgentServiceInterface) ServiceInterface {
	instance := &AgentService{
		agentHandler: handler.NewAgentHandler(agentService),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for agent management operations.
func (s *AgentService) RegisterRoutes(mux *http.ServeMux) {
	opts1 := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("POST /agents",
		s.agentHandler.HandleAgentPostRequest, opts1))
	mux.HandleFunc(middleware.WithCORS("GET /agents",
		s.agentHandler.HandleAgentListRequest, opts1))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /agents",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))

	mux.HandleFunc(middleware.WithCORS("POST /agents/validate",
		s.agentHandler.HandleGraphValidateRequest, opts1))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /agents/validate",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))

	opts2 := middleware.CORSOptions{
		AllowedMethods:   "GET, PUT, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /agents/{id}",
		s.agentHandler.HandleAgentGetRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("PUT /agents/{id}",
		s.agentHandler.HandleAgentPutRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("PUT /agents/{id}/active",
		s.agentHandler.HandleAgentActiveStatePutRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("DELETE /agents/{id}",
		s.agentHandler.HandleAgentDeleteRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /agents/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /agents/{id}/active",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
}
