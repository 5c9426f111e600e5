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

package utils

import (
	"encoding/json"
	"net/http"

	"github.com/riaz37/clarifaior/internal/system/constants"
	"github.com/riaz37/clarifaior/internal/system/error/apierror"
	"github.com/riaz37/clarifaior/internal/system/log"
)

// DecodeJSONBody decodes the JSON request body into the target.
func DecodeJSONBody(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

// WriteJSONResponse writes the given value as a JSON response with the provided status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, value any) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.GetLogger().Error("Error encoding response", log.Error(err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteJSONError writes a JSON error response with the provided status code.
func WriteJSONError(w http.ResponseWriter, code, message, description string, statusCode int) {
	errResp := apierror.ErrorResponse{
		Code:        code,
		Message:     message,
		Description: description,
	}
	WriteJSONResponse(w, statusCode, errResp)
}
