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
	queryCreateExecution = dbmodel.DBQuery{
		ID: "EXQ-EXE_MGT-01",
		Query: "INSERT INTO EXECUTION (EXECUTION_ID, AGENT_ID, STATUS, TRIGGER_TYPE, TRIGGER_DATA, " +
			"CONTEXT_DATA, TEST_MODE, CREATED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
	}
	queryGetExecutionByID = dbmodel.DBQuery{
		ID: "EXQ-EXE_MGT-02",
		Query: "SELECT EXECUTION_ID, AGENT_ID, STATUS, TRIGGER_TYPE, TRIGGER_DATA, CONTEXT_DATA, " +
			"TEST_MODE, ERROR_MESSAGE, CREATED_AT, STARTED_AT, COMPLETED_AT FROM EXECUTION WHERE EXECUTION_ID = $1",
	}
	queryUpdateExecutionStatus = dbmodel.DBQuery{
		ID: "EXQ-EXE_MGT-03",
		Query: "UPDATE EXECUTION SET STATUS = $2, ERROR_MESSAGE = $3, STARTED_AT = $4, COMPLETED_AT = $5 " +
			"WHERE EXECUTION_ID = $1",
	}
	queryCreateExecutionStep = dbmodel.DBQuery{
		ID: "EXQ-EXE_MGT-04",
		Query: "INSERT INTO EXECUTION_STEP (EXECUTION_ID, NODE_ID, STEP_NUMBER, STATUS, INPUT_DATA, STARTED_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6)",
	}
	queryCompleteExecutionStep = dbmodel.DBQuery{
		ID: "EXQ-EXE_MGT-05",
		Query: "UPDATE EXECUTION_STEP SET STATUS = $3, OUTPUT_DATA = $4, ERROR_MESSAGE = $5, DURATION_MS = $6, " +
			"TOKENS_USED = $7, COST = $8, COMPLETED_AT = $9 WHERE EXECUTION_ID = $1 AND STEP_NUMBER = $2",
	}
	queryListExecutionSteps = dbmodel.DBQuery{
		ID: "EXQ-EXE_MGT-06",
		Query: "SELECT EXECUTION_ID, NODE_ID, STEP_NUMBER, STATUS, INPUT_DATA, OUTPUT_DATA, ERROR_MESSAGE, " +
			"DURATION_MS, TOKENS_USED, COST, STARTED_AT, COMPLETED_AT FROM EXECUTION_STEP " +
			"WHERE EXECUTION_ID = $1 ORDER BY STEP_NUMBER",
	}
)
