package planner

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer/models"

	"github.com/go-redis/redis/v8"
)

const snapshotPrefix = "planner:snap:"

// RedisSnapshotStore keeps the latest turn per session in Redis with a TTL.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot models.TurnSnapshot) error {
	key := snapshotPrefix + snapshot.SessionID
	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

// Get returns nil without error when no snapshot exists for the session.
func (s *RedisSnapshotStore) Get(ctx context.Context, sessionID string) (*models.TurnSnapshot, error) {
	key := snapshotPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot models.TurnSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
