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

package config

import "sync"

// ClarifaiorRuntime holds the runtime configuration for the Clarifaior server.
type ClarifaiorRuntime struct {
	ClarifaiorHome string `yaml:"clarifaior_home"`
	Config         Config `yaml:"config"`
}

var (
	runtimeConfig *ClarifaiorRuntime
	once          sync.Once
)

// InitializeClarifaiorRuntime initializes the ClarifaiorRuntime configuration.
func InitializeClarifaiorRuntime(clarifaiorHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &ClarifaiorRuntime{
			ClarifaiorHome: clarifaiorHome,
			Config:         *config,
		}
	})

	return nil
}

// GetClarifaiorRuntime returns the ClarifaiorRuntime configuration.
func GetClarifaiorRuntime() *ClarifaiorRuntime {
	if runtimeConfig == nil {
		panic("ClarifaiorRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetClarifaiorRuntime resets the ClarifaiorRuntime.
// This should only be used in tests to reset the singleton state.
func ResetClarifaiorRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
