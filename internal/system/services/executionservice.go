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

	"github.com/riaz37/clarifaior/internal/execution/handler"
	"github.com/riaz37/clarifaior/internal/execution/service"
	"github.com/riaz37/clarifaior/internal/system/middleware"
)

// ExecutionService is the service for execution management operations.
type ExecutionService struct {
	executionHandler *handler.ExecutionHandler
}

// NewExecutionService creates a new instance of ExecutionService.
func NewExecutionService(mux *http.ServeMux,
	executionService service.ExecutionServiceInterface) ServiceInterface {
	instance := &ExecutionService{
		executionHandler: handler.NewExecutionHandler(executionService),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for execution management operations.
func (s *ExecutionService) RegisterRoutes(mux *http.ServeMux) {
	opts1 := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("POST /executions",
		s.executionHandler.HandleExecutionPostRequest, opts1))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /executions",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))

	opts2 := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /executions/{id}",
		s.executionHandler.HandleExecutionGetRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("GET /executions/{id}/steps",
		s.executionHandler.HandleExecutionStepsGetRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("POST /executions/{id}/cancel",
		s.executionHandler.HandleExecutionCancelRequest, opts2))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /executions/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /executions/{id}/steps",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /executions/{id}/cancel",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts2))
}
