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

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/riaz37/clarifaior/internal/system/config"
)

type CacheTestSuite struct {
	suite.Suite
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) SetupTest() {
	config.ResetClarifaiorRuntime()
	cfg := &config.Config{
		Cache: config.CacheConfig{
			Size: 10,
			TTL:  60,
			Properties: []config.CacheProperty{
				{Name: "disabledCache", Disabled: true},
				{Name: "smallCache", Size: 2, TTL: 60},
			},
		},
	}
	assert.NoError(suite.T(), config.InitializeClarifaiorRuntime(suite.T().TempDir(), cfg))
}

func (suite *CacheTestSuite) TearDownTest() {
	config.ResetClarifaiorRuntime()
}

func (suite *CacheTestSuite) TestSetAndGet() {
	c := NewCache[string]("testCache")
	assert.True(suite.T(), c.IsEnabled())
	assert.Equal(suite.T(), "testCache", c.GetName())

	key := CacheKey{Key: "agent-1"}
	c.Set(key, "value-1")

	value, ok := c.Get(key)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "value-1", value)
}

func (suite *CacheTestSuite) TestGetMissingKey() {
	c := NewCache[string]("testCache")

	value, ok := c.Get(CacheKey{Key: "missing"})
	assert.False(suite.T(), ok)
	assert.Empty(suite.T(), value)
}

func (suite *CacheTestSuite) TestDelete() {
	c := NewCache[int]("testCache")
	key := CacheKey{Key: "k"}

	c.Set(key, 42)
	c.Delete(key)

	_, ok := c.Get(key)
	assert.False(suite.T(), ok)
}

func (suite *CacheTestSuite) TestClear() {
	c := NewCache[int]("testCache")
	c.Set(CacheKey{Key: "a"}, 1)
	c.Set(CacheKey{Key: "b"}, 2)

	c.Clear()

	_, okA := c.Get(CacheKey{Key: "a"})
	_, okB := c.Get(CacheKey{Key: "b"})
	assert.False(suite.T(), okA)
	assert.False(suite.T(), okB)
}

func (suite *CacheTestSuite) TestLRUEviction() {
	c := NewCache[int]("smallCache")

	c.Set(CacheKey{Key: "a"}, 1)
	c.Set(CacheKey{Key: "b"}, 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get(CacheKey{Key: "a"})
	assert.True(suite.T(), ok)

	c.Set(CacheKey{Key: "c"}, 3)

	_, okA := c.Get(CacheKey{Key: "a"})
	_, okB := c.Get(CacheKey{Key: "b"})
	_, okC := c.Get(CacheKey{Key: "c"})
	assert.True(suite.T(), okA)
	assert.False(suite.T(), okB)
	assert.True(suite.T(), okC)
}

func (suite *CacheTestSuite) TestDisabledIndividualCache() {
	c := NewCache[string]("disabledCache")
	assert.False(suite.T(), c.IsEnabled())

	key := CacheKey{Key: "k"}
	c.Set(key, "v")

	_, ok := c.Get(key)
	assert.False(suite.T(), ok)
}

func (suite *CacheTestSuite) TestGloballyDisabledCache() {
	config.ResetClarifaiorRuntime()
	cfg := &config.Config{Cache: config.CacheConfig{Disabled: true}}
	assert.NoError(suite.T(), config.InitializeClarifaiorRuntime(suite.T().TempDir(), cfg))

	c := NewCache[string]("testCache")
	assert.False(suite.T(), c.IsEnabled())
}

func (suite *CacheTestSuite) TestEmptyKeyIsIgnored() {
	c := NewCache[string]("testCache")
	c.Set(CacheKey{}, "v")

	_, ok := c.Get(CacheKey{})
	assert.False(suite.T(), ok)
}

func (suite *CacheTestSuite) TestCleanupExpired() {
	c := newInMemoryCache[string](10, 10*time.Millisecond)
	c.set("k", "v")

	time.Sleep(20 * time.Millisecond)
	c.cleanupExpired()

	_, ok := c.get("k")
	assert.False(suite.T(), ok)
}
