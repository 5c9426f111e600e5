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

package constants

import "github.com/riaz37/clarifaior/internal/system/error/serviceerror"

// Client errors for agent management operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request format is invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AES-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed, contains invalid data, or required fields are missing/empty",
	}
	// ErrorMissingAgentID is the error returned when the agent ID is missing.
	ErrorMissingAgentID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AES-1002",
		Error:            "Invalid request format",
		ErrorDescription: "Agent ID is required",
	}
	// ErrorAgentNotFound is the error returned when an agent is not found.
	ErrorAgentNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AES-1003",
		Error:            "Agent not found",
		ErrorDescription: "The agent with the specified id does not exist",
	}
	// ErrorAgentGraphInvalid is the error returned when the agent flow graph fails validation.
	ErrorAgentGraphInvalid = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AES-1004",
		Error:            "Invalid flow graph",
		ErrorDescription: "The agent flow graph failed validation",
	}
	// ErrorAgentNotActive is the error returned when an inactive agent is asked to run.
	ErrorAgentNotActive = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AES-1005",
		Error:            "Agent not active",
		ErrorDescription: "The agent must be activated before it can be executed",
	}
)

// Server errors for agent management operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "AES-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
