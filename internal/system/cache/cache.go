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

// Package cache provides a centralized cache management system for read-mostly data.
package cache

import (
	"time"

	"github.com/riaz37/clarifaior/internal/system/config"
	"github.com/riaz37/clarifaior/internal/system/log"
)

const (
	defaultCacheSize = 100
	defaultCacheTTL  = 300
)

// CacheKey represents a key used to identify cache entries.
type CacheKey struct {
	Key string
}

// ToString returns the string representation of the cache key.
func (key CacheKey) ToString() string {
	return key.Key
}

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	IsEnabled() bool
	Set(key CacheKey, value T)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	Clear()
	CleanupExpired()
}

// Cache implements the CacheInterface for individual caches.
type Cache[T any] struct {
	enabled   bool
	cacheName string
	internal  *inMemoryCache[T]
}

// NewCache creates a new cache instance using the cache configuration from runtime config.
func NewCache[T any](cacheName string) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", cacheName))

	cacheConfig := config.GetClarifaiorRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, returning a disabled cache")
		return &Cache[T]{
			enabled:   false,
			cacheName: cacheName,
		}
	}

	property := getCacheProperty(cacheConfig, cacheName)
	if property.Disabled {
		logger.Debug("Individual cache is disabled, returning a disabled cache")
		return &Cache[T]{
			enabled:   false,
			cacheName: cacheName,
		}
	}

	size := property.Size
	if size <= 0 {
		size = cacheConfig.Size
	}
	if size <= 0 {
		size = defaultCacheSize
	}

	ttl := property.TTL
	if ttl <= 0 {
		ttl = cacheConfig.TTL
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	logger.Debug("Initializing the cache", log.Int("size", size), log.Int("ttl", ttl))

	return &Cache[T]{
		enabled:   true,
		cacheName: cacheName,
		internal:  newInMemoryCache[T](size, time.Duration(ttl)*time.Second),
	}
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.cacheName
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.enabled
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) {
	if !c.enabled || key.ToString() == "" {
		return
	}
	c.internal.set(key.ToString(), value)
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	if !c.enabled || key.ToString() == "" {
		var zero T
		return zero, false
	}
	return c.internal.get(key.ToString())
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) {
	if !c.enabled {
		return
	}
	c.internal.delete(key.ToString())
}

// Clear removes all values from the cache.
func (c *Cache[T]) Clear() {
	if !c.enabled {
		return
	}
	c.internal.clear()
}

// CleanupExpired removes expired entries from the cache.
func (c *Cache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}
	c.internal.cleanupExpired()
}

// getCacheProperty returns the configuration for an individual cache, falling back to defaults.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{Name: cacheName}
}
