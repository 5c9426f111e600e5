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

// Package handler provides HTTP handlers for readiness and liveness checks.
package handler

import (
	"net/http"

	"github.com/riaz37/clarifaior/internal/system/database/provider"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

// serviceStatus represents the health status of an individual dependency.
type serviceStatus struct {
	ServiceName string `json:"serviceName"`
	Status      string `json:"status"`
}

// healthResponse represents the overall health response body.
type healthResponse struct {
	Status       string          `json:"status"`
	ServiceStats []serviceStatus `json:"serviceStats,omitempty"`
}

// HealthCheckHandler handles readiness and liveness requests.
type HealthCheckHandler struct{}

// NewHealthCheckHandler creates a new instance of HealthCheckHandler.
func NewHealthCheckHandler() *HealthCheckHandler {
	return &HealthCheckHandler{}
}

// HandleLivenessRequest responds to liveness probes.
func (h *HealthCheckHandler) HandleLivenessRequest(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, healthResponse{Status: "UP"})
}

// HandleReadinessRequest responds to readiness probes after checking database connectivity.
func (h *HealthCheckHandler) HandleReadinessRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckHandler"))

	response := healthResponse{Status: "UP"}
	statusCode := http.StatusOK

	for _, dbName := range []string{provider.DBNameDefinitions, provider.DBNameRuntime} {
		status := serviceStatus{ServiceName: dbName + " database", Status: "UP"}
		if _, err := provider.GetDBProvider().GetDBClient(dbName); err != nil {
			logger.Error("Database readiness check failed", log.String("database", dbName), log.Error(err))
			status.Status = "DOWN"
			response.Status = "DOWN"
			statusCode = http.StatusServiceUnavailable
		}
		response.ServiceStats = append(response.ServiceStats, status)
	}

	utils.WriteJSONResponse(w, statusCode, response)
}
