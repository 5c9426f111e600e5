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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RuntimeConfigTestSuite struct {
	suite.Suite
}

func TestRuntimeConfigSuite(t *testing.T) {
	suite.Run(t, new(RuntimeConfigTestSuite))
}

func (suite *RuntimeConfigTestSuite) SetupTest() {
	ResetClarifaiorRuntime()
}

func (suite *RuntimeConfigTestSuite) TearDownTest() {
	ResetClarifaiorRuntime()
}

func (suite *RuntimeConfigTestSuite) TestInitializeAndGet() {
	cfg := &Config{
		Server: ServerConfig{Hostname: "localhost", Port: 8090},
	}

	err := InitializeClarifaiorRuntime("/opt/clarifaior", cfg)
	assert.NoError(suite.T(), err)

	runtime := GetClarifaiorRuntime()
	assert.NotNil(suite.T(), runtime)
	assert.Equal(suite.T(), "/opt/clarifaior", runtime.ClarifaiorHome)
	assert.Equal(suite.T(), "localhost", runtime.Config.Server.Hostname)
}

func (suite *RuntimeConfigTestSuite) TestInitializeIsIdempotent() {
	first := &Config{Server: ServerConfig{Port: 8090}}
	second := &Config{Server: ServerConfig{Port: 9090}}

	assert.NoError(suite.T(), InitializeClarifaiorRuntime("/first", first))
	assert.NoError(suite.T(), InitializeClarifaiorRuntime("/second", second))

	runtime := GetClarifaiorRuntime()
	assert.Equal(suite.T(), "/first", runtime.ClarifaiorHome)
	assert.Equal(suite.T(), 8090, runtime.Config.Server.Port)
}

func (suite *RuntimeConfigTestSuite) TestGetWithoutInitializePanics() {
	assert.Panics(suite.T(), func() {
		GetClarifaiorRuntime()
	})
}
