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

// Package main is the entry point for starting the Clarifaior server.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	agentservice "github.com/riaz37/clarifaior/internal/agent/service"
	agentstore "github.com/riaz37/clarifaior/internal/agent/store"
	execservice "github.com/riaz37/clarifaior/internal/execution/service"
	execstore "github.com/riaz37/clarifaior/internal/execution/store"
	"github.com/riaz37/clarifaior/internal/executor"
	"github.com/riaz37/clarifaior/internal/flow/engine"
	"github.com/riaz37/clarifaior/internal/integration/llm"
	"github.com/riaz37/clarifaior/internal/integration/mail"
	"github.com/riaz37/clarifaior/internal/integration/notion"
	"github.com/riaz37/clarifaior/internal/integration/slack"
	"github.com/riaz37/clarifaior/internal/runqueue"
	"github.com/riaz37/clarifaior/internal/system/cert"
	"github.com/riaz37/clarifaior/internal/system/config"
	"github.com/riaz37/clarifaior/internal/system/database/provider"
	"github.com/riaz37/clarifaior/internal/system/log"
	"github.com/riaz37/clarifaior/internal/system/managers"
	"github.com/riaz37/clarifaior/internal/trigger"
)

const queueTypeRedis = "redis"

func main() {
	logger := log.GetLogger()

	clarifaiorHome := getClarifaiorHome(logger)

	cfg := initConfigurations(logger, clarifaiorHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	agentSvc, executionSvc, pool, queue, scheduler := initRuntime(logger, cfg)
	defer func() {
		if scheduler != nil {
			scheduler.Stop()
		}
		pool.Stop()
		if err := queue.Close(); err != nil {
			logger.Error("Failed to close run queue", log.Error(err))
		}
	}()

	mux := initMultiplexer(logger, agentSvc, executionSvc)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		startHTTPServer(logger, cfg, mux)
	} else {
		startTLSServer(logger, cfg, mux, clarifaiorHome)
	}
}

// getClarifaiorHome retrieves and returns the Clarifaior home directory.
func getClarifaiorHome(logger *log.Logger) string {
	projectHome := ""
	projectHomeFlag := flag.String("clarifaiorHome", "", "Path to Clarifaior home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using clarifaiorHome from command line argument",
			log.String("clarifaiorHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initConfigurations loads the deployment configuration and initializes the runtime config.
func initConfigurations(logger *log.Logger, clarifaiorHome string) *config.Config {
	configFilePath := path.Join(clarifaiorHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeClarifaiorRuntime(clarifaiorHome, cfg); err != nil {
		logger.Fatal("Failed to initialize clarifaior runtime", log.Error(err))
	}

	return cfg
}

// initRuntime wires the stores, executors, queue, worker pool and scheduler.
func initRuntime(logger *log.Logger, cfg *config.Config) (
	agentservice.AgentServiceInterface, execservice.ExecutionServiceInterface,
	*runqueue.WorkerPool, runqueue.QueueInterface, *trigger.Scheduler,
) {
	dbProvider := provider.GetDBProvider()
	agentStore := agentstore.NewAgentStore(dbProvider)
	executionStore := execstore.NewExecutionStore(dbProvider)

	registry := executor.NewDefaultRegistry(llm.NewLLMClient(), slack.NewSlackClient(),
		mail.NewMailClient(), notion.NewNotionClient())
	coordinator := engine.NewCoordinator(registry, executionStore)

	queue := initQueue(logger, cfg)

	policy := runqueue.DefaultRetryPolicy()
	if cfg.Queue.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Queue.MaxAttempts
	}
	if cfg.Queue.InitialBackoff > 0 {
		policy.InitialBackoff = time.Duration(cfg.Queue.InitialBackoff) * time.Second
	}
	testPolicy := runqueue.TestModeRetryPolicy()

	agentSvc := agentservice.NewAgentService(agentStore)
	executionSvc := execservice.NewExecutionService(executionStore, agentStore, coordinator,
		queue, policy, testPolicy)

	pool := runqueue.NewWorkerPool(queue, executionSvc.RunJob, runqueue.WorkerPoolOptions{
		Workers:     cfg.Queue.Workers,
		Policy:      policy,
		TestPolicy:  testPolicy,
		HistorySize: cfg.Queue.HistorySize,
	})
	executionSvc.SetJobCanceller(pool)
	pool.Start()

	var scheduler *trigger.Scheduler
	if !cfg.Scheduler.Disabled {
		scheduler = trigger.NewScheduler(agentSvc, executionSvc,
			time.Duration(cfg.Scheduler.PollInterval)*time.Second)
		scheduler.Start()
	}

	return agentSvc, executionSvc, pool, queue, scheduler
}

// initQueue creates the run queue backend selected by the configuration.
func initQueue(logger *log.Logger, cfg *config.Config) runqueue.QueueInterface {
	if cfg.Queue.Type == queueTypeRedis {
		queue, err := runqueue.NewRedisQueue(cfg.Queue.Redis)
		if err != nil {
			logger.Fatal("Failed to initialize redis queue", log.Error(err))
		}
		logger.Info("Using redis run queue", log.String("addr", cfg.Queue.Redis.Addr))
		return queue
	}
	return runqueue.NewInMemoryQueue(cfg.Queue.Capacity)
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger, agentSvc agentservice.AgentServiceInterface,
	executionSvc execservice.ExecutionServiceInterface) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, agentSvc, executionSvc)

	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// startTLSServer starts the HTTPS server with TLS configuration.
func startTLSServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, clarifaiorHome string) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	tlsConfig, err := cert.GetTLSConfig(cfg, clarifaiorHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}

	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}

	logger.Info("Clarifaior server started (HTTPS)...", log.String("address", serverAddr))

	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// startHTTPServer starts the HTTP server without TLS.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	logger.Info("Clarifaior server started (HTTP)...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Wrap the multiplexer with AccessLogHandler.
	wrappedMux := log.AccessLogHandler(logger, mux)

	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
