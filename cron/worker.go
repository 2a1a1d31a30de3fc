package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"wayfarer/config"
	usageRepo "wayfarer/database/repository/usage"
	"wayfarer/models"
	"wayfarer/services/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitUsageWorker runs the async usage-record worker in background.
func InitUsageWorker(repo usageRepo.UsageRecordRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisUsageQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"metrics": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(metrics.TypeUsageRecord, handleUsageTask(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[UsageWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[UsageWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[UsageWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleUsageTask(repo usageRepo.UsageRecordRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var record models.UsageRecord
		if err := json.Unmarshal(task.Payload(), &record); err != nil {
			log.Printf("[UsageWorker] Invalid payload: %v", err)
			return err
		}

		if _, err := repo.Create(ctx, record); err != nil {
			log.Printf("[UsageWorker] Failed to persist usage record for session %s: %v", record.SessionID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisUsageQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[UsageWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
