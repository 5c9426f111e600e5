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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/riaz37/clarifaior/internal/system/config"
)

type CORSTestSuite struct {
	suite.Suite
}

func TestCORSSuite(t *testing.T) {
	suite.Run(t, new(CORSTestSuite))
}

func (suite *CORSTestSuite) SetupTest() {
	config.ResetClarifaiorRuntime()
	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.clarifaior.dev"},
		},
	}
	assert.NoError(suite.T(), config.InitializeClarifaiorRuntime(suite.T().TempDir(), cfg))
}

func (suite *CORSTestSuite) TearDownTest() {
	config.ResetClarifaiorRuntime()
}

func (suite *CORSTestSuite) serve(origin string, opts CORSOptions) *httptest.ResponseRecorder {
	pattern, handler := WithCORS("GET /test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, opts)
	assert.Equal(suite.T(), "GET /test", pattern)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func (suite *CORSTestSuite) TestAllowedOrigin() {
	rec := suite.serve("https://app.clarifaior.dev", CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: true,
	})

	assert.Equal(suite.T(), "https://app.clarifaior.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(suite.T(), "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(suite.T(), "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func (suite *CORSTestSuite) TestDisallowedOrigin() {
	rec := suite.serve("https://evil.example.com", CORSOptions{AllowedMethods: "GET"})

	assert.Empty(suite.T(), rec.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *CORSTestSuite) TestNoOriginHeader() {
	rec := suite.serve("", CORSOptions{AllowedMethods: "GET"})

	assert.Empty(suite.T(), rec.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *CORSTestSuite) TestMatchAllowedOrigin() {
	testCases := []struct {
		name     string
		allowed  []string
		origin   string
		expected string
	}{
		{
			name:     "ExactMatch",
			allowed:  []string{"https://a.example.com"},
			origin:   "https://a.example.com",
			expected: "https://a.example.com",
		},
		{
			name:     "TrailingSlashIgnored",
			allowed:  []string{"https://a.example.com/"},
			origin:   "https://a.example.com",
			expected: "https://a.example.com/",
		},
		{
			name:     "Wildcard",
			allowed:  []string{"*"},
			origin:   "https://anything.example.com",
			expected: "*",
		},
		{
			name:     "NoMatch",
			allowed:  []string{"https://a.example.com"},
			origin:   "https://b.example.com",
			expected: "",
		},
		{
			name:     "EmptyList",
			allowed:  nil,
			origin:   "https://a.example.com",
			expected: "",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchAllowedOrigin(tc.allowed, tc.origin))
		})
	}
}
