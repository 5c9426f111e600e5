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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/riaz37/clarifaior/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int64  `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
// Definitions holds agent graph definitions; Runtime holds executions and steps.
type DatabaseConfig struct {
	Definitions DataSource `yaml:"definitions"`
	Runtime     DataSource `yaml:"runtime"`
}

// CacheProperty holds the configuration details for an individual cache.
type CacheProperty struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
	Size     int    `yaml:"size"`
	TTL      int    `yaml:"ttl"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled   bool            `yaml:"disabled"`
	Type       string          `yaml:"type"`
	Size       int             `yaml:"size"`
	TTL        int             `yaml:"ttl"`
	Properties []CacheProperty `yaml:"properties"`
}

// RedisConfig holds the redis connection details for the run queue.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// QueueConfig holds the run queue configuration details.
type QueueConfig struct {
	Type           string      `yaml:"type"`
	Workers        int         `yaml:"workers"`
	Capacity       int         `yaml:"capacity"`
	MaxAttempts    int         `yaml:"max_attempts"`
	InitialBackoff int         `yaml:"initial_backoff"`
	HistorySize    int         `yaml:"history_size"`
	Redis          RedisConfig `yaml:"redis"`
}

// LLMConfig holds the configuration details for the LLM provider.
type LLMConfig struct {
	Provider     string `yaml:"provider"`
	BaseURL      string `yaml:"base_url"`
	APIKey       string `yaml:"api_key"`
	DefaultModel string `yaml:"default_model"`
}

// SlackConfig holds the configuration details for the Slack integration.
type SlackConfig struct {
	BaseURL  string `yaml:"base_url"`
	BotToken string `yaml:"bot_token"`
}

// MailConfig holds the configuration details for the mail provider integration.
type MailConfig struct {
	URL         string `yaml:"url"`
	HTTPMethod  string `yaml:"http_method"`
	ContentType string `yaml:"content_type"`
	FromAddress string `yaml:"from_address"`
}

// NotionConfig holds the configuration details for the Notion integration.
type NotionConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Version string `yaml:"version"`
}

// IntegrationsConfig holds the configuration details for external integrations
// used by node executors.
type IntegrationsConfig struct {
	LLM    LLMConfig    `yaml:"llm"`
	Slack  SlackConfig  `yaml:"slack"`
	Mail   MailConfig   `yaml:"mail"`
	Notion NotionConfig `yaml:"notion"`
}

// SchedulerConfig holds the configuration details for the interval scheduler.
type SchedulerConfig struct {
	Disabled     bool `yaml:"disabled"`
	PollInterval int  `yaml:"poll_interval"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Security     SecurityConfig     `yaml:"security"`
	CORS         CORSConfig         `yaml:"cors"`
	Database     DatabaseConfig     `yaml:"database"`
	Cache        CacheConfig        `yaml:"cache"`
	Queue        QueueConfig        `yaml:"queue"`
	Integrations IntegrationsConfig `yaml:"integrations"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
