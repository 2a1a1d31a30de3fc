package metrics

import (
	"context"
	"encoding/json"

	"wayfarer/models"
	"wayfarer/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeUsageRecord = "usage:record"

const metricsQueue = "metrics"

// AsynqRecorder enqueues usage records onto a Redis-backed queue; the
// worker in cron drains it into Mongo. Record is fire-and-forget by
// contract: enqueue failures are logged and the record is dropped.
type AsynqRecorder struct {
	client *asynq.Client
}

func NewAsynqRecorder(redisOpts asynq.RedisClientOpt) *AsynqRecorder {
	return &AsynqRecorder{client: asynq.NewClient(redisOpts)}
}

func (r *AsynqRecorder) Record(ctx context.Context, record models.UsageRecord) {
	logger := utils.GetLogger()

	payload, err := json.Marshal(record)
	if err != nil {
		logger.Warn("Dropping usage record, marshal failed",
			zap.String("sessionId", record.SessionID),
			zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeUsageRecord, payload)
	if _, err := r.client.EnqueueContext(ctx, task, asynq.Queue(metricsQueue), asynq.MaxRetry(3)); err != nil {
		logger.Warn("Dropping usage record, enqueue failed",
			zap.String("sessionId", record.SessionID),
			zap.Error(err))
	}
}

func (r *AsynqRecorder) Close() error {
	return r.client.Close()
}
