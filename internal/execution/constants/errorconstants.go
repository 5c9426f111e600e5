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

// Package constants defines error constants for execution management operations.
package constants

import "github.com/riaz37/clarifaior/internal/system/error/serviceerror"

// Client errors for execution management operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request format is invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EES-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed, contains invalid data, or required fields are missing/empty",
	}
	// ErrorMissingExecutionID is the error returned when the execution ID is missing.
	ErrorMissingExecutionID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EES-1002",
		Error:            "Invalid request format",
		ErrorDescription: "Execution ID is required",
	}
	// ErrorExecutionNotFound is the error returned when an execution is not found.
	ErrorExecutionNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EES-1003",
		Error:            "Execution not found",
		ErrorDescription: "The execution with the specified id does not exist",
	}
	// ErrorExecutionAlreadyTerminal is the error returned when cancelling a finished execution.
	ErrorExecutionAlreadyTerminal = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "EES-1004",
		Error:            "Execution already finished",
		ErrorDescription: "The execution has already reached a terminal state and cannot be cancelled",
	}
)

// Server errors for execution management operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "EES-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
