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

package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/riaz37/clarifaior/internal/agent/model"
	"github.com/riaz37/clarifaior/internal/system/database/client"
	dbmodel "github.com/riaz37/clarifaior/internal/system/database/model"
	"github.com/riaz37/clarifaior/internal/system/utils"
)

// mockDBProvider returns the same sqlmock backed client for every database name.
type mockDBProvider struct {
	client client.DBClientInterface
}

func (p *mockDBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	return p.client, nil
}

type AgentStoreTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store AgentStoreInterface
}

func TestAgentStoreSuite(t *testing.T) {
	suite.Run(t, new(AgentStoreTestSuite))
}

func (suite *AgentStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(suite.T(), err)

	suite.mock = mock
	suite.store = NewAgentStore(&mockDBProvider{
		client: client.NewDBClient(dbmodel.NewDB(db), dbmodel.DBTypePostgres),
	})
}

func (suite *AgentStoreTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func testGraph() *model.Graph {
	x, y := 10.0, 20.0
	return &model.Graph{
		Nodes: []model.Node{
			{
				ID:       "t1",
				Type:     "webhook-trigger",
				Label:    "Incoming webhook",
				Position: &model.Position{X: &x, Y: &y},
				Data:     map[string]any{"endpoint": "/hooks/demo"},
			},
		},
		Edges: []model.Edge{},
	}
}

func (suite *AgentStoreTestSuite) TestCreateAgent() {
	agent := model.Agent{
		ID:    "agent-1",
		Name:  "Demo agent",
		Graph: testGraph(),
	}
	graphJSON, err := utils.SerializeJSON(agent.Graph)
	assert.NoError(suite.T(), err)

	suite.mock.ExpectExec(queryCreateAgent.Query).
		WithArgs(agent.ID, agent.Name, agent.Description, agent.IsActive, graphJSON).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(suite.T(), suite.store.CreateAgent(agent))
}

func (suite *AgentStoreTestSuite) TestGetAgent() {
	graphJSON, err := utils.SerializeJSON(testGraph())
	assert.NoError(suite.T(), err)

	rows := sqlmock.NewRows([]string{"AGENT_ID", "NAME", "DESCRIPTION", "IS_ACTIVE", "GRAPH_JSON"}).
		AddRow("agent-1", "Demo agent", "A demo", true, graphJSON)
	suite.mock.ExpectQuery(queryGetAgentByID.Query).WithArgs("agent-1").WillReturnRows(rows)

	agent, err := suite.store.GetAgent("agent-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "agent-1", agent.ID)
	assert.Equal(suite.T(), "Demo agent", agent.Name)
	assert.True(suite.T(), agent.IsActive)
	assert.NotNil(suite.T(), agent.Graph)
	assert.Len(suite.T(), agent.Graph.Nodes, 1)
	assert.Equal(suite.T(), "webhook-trigger", agent.Graph.Nodes[0].Type)
}

func (suite *AgentStoreTestSuite) TestGetAgentNotFound() {
	suite.mock.ExpectQuery(queryGetAgentByID.Query).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"AGENT_ID", "NAME", "DESCRIPTION", "IS_ACTIVE", "GRAPH_JSON"}))

	_, err := suite.store.GetAgent("missing")
	assert.ErrorIs(suite.T(), err, ErrAgentNotFound)
}

func (suite *AgentStoreTestSuite) TestGetAgentList() {
	rows := sqlmock.NewRows([]string{"AGENT_ID", "NAME", "DESCRIPTION", "IS_ACTIVE"}).
		AddRow("agent-1", "First", "", true).
		AddRow("agent-2", "Second", "", false)
	suite.mock.ExpectQuery(queryGetAgentList.Query).WillReturnRows(rows)

	agents, err := suite.store.GetAgentList()
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), agents, 2)
	assert.True(suite.T(), agents[0].IsActive)
	assert.False(suite.T(), agents[1].IsActive)
	assert.Nil(suite.T(), agents[0].Graph)
}

func (suite *AgentStoreTestSuite) TestUpdateAgent() {
	agent := model.Agent{
		ID:          "agent-1",
		Name:        "Renamed",
		Description: "Updated",
		Graph:       testGraph(),
	}
	graphJSON, err := utils.SerializeJSON(agent.Graph)
	assert.NoError(suite.T(), err)

	suite.mock.ExpectExec(queryUpdateAgentByID.Query).
		WithArgs(agent.ID, agent.Name, agent.Description, graphJSON).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(suite.T(), suite.store.UpdateAgent(agent))
}

func (suite *AgentStoreTestSuite) TestUpdateAgentNotFound() {
	agent := model.Agent{ID: "missing", Name: "Nope", Graph: testGraph()}
	graphJSON, err := utils.SerializeJSON(agent.Graph)
	assert.NoError(suite.T(), err)

	suite.mock.ExpectExec(queryUpdateAgentByID.Query).
		WithArgs(agent.ID, agent.Name, agent.Description, graphJSON).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(suite.T(), suite.store.UpdateAgent(agent), ErrAgentNotFound)
}

func (suite *AgentStoreTestSuite) TestUpdateAgentActiveState() {
	suite.mock.ExpectExec(queryUpdateAgentActiveState.Query).
		WithArgs("agent-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(suite.T(), suite.store.UpdateAgentActiveState("agent-1", true))
}

func (suite *AgentStoreTestSuite) TestDeleteAgent() {
	suite.mock.ExpectExec(queryDeleteAgentByID.Query).
		WithArgs("agent-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(suite.T(), suite.store.DeleteAgent("agent-1"))
}

func (suite *AgentStoreTestSuite) TestParseBoolean() {
	testCases := []struct {
		name     string
		value    interface{}
		expected bool
	}{
		{name: "Bool", value: true, expected: true},
		{name: "Int64One", value: int64(1), expected: true},
		{name: "Int64Zero", value: int64(0), expected: false},
		{name: "StringTrue", value: "true", expected: true},
		{name: "StringOne", value: "1", expected: true},
		{name: "Nil", value: nil, expected: false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseBoolean(tc.value))
		})
	}
}
