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

// Package managers provides functionality for managing and registering system services.
package managers

import (
	"net/http"

	agentservice "github.com/riaz37/clarifaior/internal/agent/service"
	execservice "github.com/riaz37/clarifaior/internal/execution/service"
	"github.com/riaz37/clarifaior/internal/system/services"
)

// ServiceManagerInterface defines the interface for managing services.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// ServiceManager implements the ServiceManagerInterface and is responsible for registering services.
type ServiceManager struct {
	mux              *http.ServeMux
	agentService     agentservice.AgentServiceInterface
	executionService execservice.ExecutionServiceInterface
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, agentSvc agentservice.AgentServiceInterface,
	executionSvc execservice.ExecutionServiceInterface) ServiceManagerInterface {
	return &ServiceManager{
		mux:              mux,
		agentService:     agentSvc,
		executionService: executionSvc,
	}
}

// RegisterServices registers all the services with the provided HTTP multiplexer.
func (sm *ServiceManager) RegisterServices() error {
	// Register the health service.
	services.NewHealthCheckService(sm.mux)

	// Register the agent management service.
	services.NewAgentService(sm.mux, sm.agentService)

	// Register the execution management service.
	services.NewExecutionService(sm.mux, sm.executionService)

	// Register the inbound trigger service.
	services.NewTriggerService(sm.mux, sm.executionService)

	return nil
}
