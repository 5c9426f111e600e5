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

import dbmodel "github.com/riaz37/clarifaior/internal/system/database/model"

var (
	queryCreateAgent = dbmodel.DBQuery{
		ID: "AGQ-AGT_MGT-01",
		Query: "INSERT INTO AGENT (AGENT_ID, NAME, DESCRIPTION, IS_ACTIVE, GRAPH_JSON) " +
			"VALUES ($1, $2, $3, $4, $5)",
	}
	queryGetAgentByID = dbmodel.DBQuery{
		ID:    "AGQ-AGT_MGT-02",
		Query: "SELECT AGENT_ID, NAME, DESCRIPTION, IS_ACTIVE, GRAPH_JSON FROM AGENT WHERE AGENT_ID = $1",
	}
	queryGetAgentList = dbmodel.DBQuery{
		ID:    "AGQ-AGT_MGT-03",
		Query: "SELECT AGENT_ID, NAME, DESCRIPTION, IS_ACTIVE FROM AGENT ORDER BY NAME",
	}
	queryUpdateAgentByID = dbmodel.DBQuery{
		ID:    "AGQ-AGT_MGT-04",
		Query: "UPDATE AGENT SET NAME = $2, DESCRIPTION = $3, GRAPH_JSON = $4 WHERE AGENT_ID = $1",
	}
	queryUpdateAgentActiveState = dbmodel.DBQuery{
		ID:    "AGQ-AGT_MGT-05",
		Query: "UPDATE AGENT SET IS_ACTIVE = $2 WHERE AGENT_ID = $1",
	}
	queryDeleteAgentByID = dbmodel.DBQuery{
		ID:    "AGQ-AGT_MGT-06",
		Query: "DELETE FROM AGENT WHERE AGENT_ID = $1",
	}
)
