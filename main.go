package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfarer/config"
	"wayfarer/cron"
	"wayfarer/database"
	usageRepo "wayfarer/database/repository/usage"
	"wayfarer/handlers"
	"wayfarer/routes"
	"wayfarer/services/metrics"
	"wayfarer/services/planner"
	"wayfarer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSnapshotCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	usageRecords := usageRepo.NewMongoUsageRepo()
	if err := usageRecords.EnsureIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure usage record indexes: %v", err)
	}

	// background usage worker draining the metrics queue into Mongo.
	cron.InitUsageWorker(usageRecords)

	// services.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisUsageQueueDB,
	}
	usageRecorder := metrics.NewAsynqRecorder(queueOpts)
	snapshotStore := planner.NewRedisSnapshotStore(utils.GetSnapshotCacheClient(), 24*time.Hour)

	var modelClient planner.ModelClient
	if config.AppConfig.GeminiAPIKey != "" {
		client, err := planner.NewGeminiClient(
			config.AppConfig.GeminiAPIKey,
			config.AppConfig.AIModel,
			config.AppConfig.AIMaxTokens,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		modelClient = client
	} else {
		logger.Sugar().Warn("main: GEMINI_API_KEY not set, assistant turns will be rejected")
	}

	plannerService := &planner.DefaultPlannerService{
		Cfg: planner.Config{
			Enabled:             config.AppConfig.AIEnabled,
			Provider:            "gemini",
			Model:               config.AppConfig.AIModel,
			RequestTimeout:      time.Duration(config.AppConfig.AIRequestTimeoutSecs) * time.Second,
			PromptCostPer1K:     config.AppConfig.AIPromptCostPer1K,
			CompletionCostPer1K: config.AppConfig.AICompletionCost1K,
		},
		Model:     modelClient,
		Usage:     usageRecorder,
		Snapshots: snapshotStore,
	}

	assistantHandler := handlers.NewAssistantHandler(plannerService)

	// Register routes.
	routes.RegisterRoutes(router, assistantHandler)

	// Dependency health monitor backing /health.
	utils.StartHealthMonitor(utils.GetSnapshotCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := usageRecorder.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close usage recorder: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
