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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) writeConfigFile(content string) string {
	path := filepath.Join(suite.tempDir, "deployment.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	assert.NoError(suite.T(), err)
	return path
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	content := `
server:
  hostname: localhost
  port: 8090
  http_only: true
database:
  definitions:
    type: sqlite
    path: repository/database/definitions.db
  runtime:
    type: postgres
    hostname: localhost
    port: 5432
    name: runtimedb
    username: clarifaior
    password: secret
    sslmode: disable
queue:
  type: inmemory
  workers: 4
  capacity: 256
  max_attempts: 3
  initial_backoff: 2
  history_size: 100
integrations:
  llm:
    provider: openai
    default_model: gpt-4o-mini
  slack:
    base_url: https://slack.com/api
    bot_token: xoxb-test
`
	path := suite.writeConfigFile(content)

	cfg, err := LoadConfig(path)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 8090, cfg.Server.Port)
	assert.True(suite.T(), cfg.Server.HTTPOnly)

	assert.Equal(suite.T(), "sqlite", cfg.Database.Definitions.Type)
	assert.Equal(suite.T(), "repository/database/definitions.db", cfg.Database.Definitions.Path)
	assert.Equal(suite.T(), "postgres", cfg.Database.Runtime.Type)
	assert.Equal(suite.T(), "runtimedb", cfg.Database.Runtime.Name)

	assert.Equal(suite.T(), "inmemory", cfg.Queue.Type)
	assert.Equal(suite.T(), 4, cfg.Queue.Workers)
	assert.Equal(suite.T(), 3, cfg.Queue.MaxAttempts)
	assert.Equal(suite.T(), 2, cfg.Queue.InitialBackoff)

	assert.Equal(suite.T(), "openai", cfg.Integrations.LLM.Provider)
	assert.Equal(suite.T(), "gpt-4o-mini", cfg.Integrations.LLM.DefaultModel)
	assert.Equal(suite.T(), "xoxb-test", cfg.Integrations.Slack.BotToken)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	cfg, err := LoadConfig(filepath.Join(suite.tempDir, "missing.yaml"))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	path := suite.writeConfigFile("server: [unclosed")

	cfg, err := LoadConfig(path)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigEmptyFile() {
	path := suite.writeConfigFile("")

	cfg, err := LoadConfig(path)
	// An empty YAML document fails to decode into a struct.
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}
