package usageRepo

import (
	"context"

	"wayfarer/database"
	"wayfarer/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type UsageRecordRepository interface {
	Create(ctx context.Context, record models.UsageRecord) (string, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]models.UsageRecord, error)
	EnsureIndexes() error
}

type mongoUsageRepo struct {
	coll *mongo.Collection
}

// NewMongoUsageRepo returns a new UsageRecordRepository instance using MongoDB.
func NewMongoUsageRepo() UsageRecordRepository {
	db := database.MongoClient.Database("wayfarer")
	return &mongoUsageRepo{
		coll: db.Collection("usage_records"),
	}
}
