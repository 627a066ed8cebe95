// File: services/calendar/cache.go
package calendar

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"

	"github.com/go-redis/redis/v8"
)

const busyCachePrefix = "busy:"

// BusySnapshotStore holds the synced busy-interval snapshots. The sync
// worker writes them; read paths consume them through Get.
type BusySnapshotStore interface {
	// Get returns the cached snapshot, or (nil, nil) when none exists.
	Get(ctx context.Context, key string) ([]models.Interval, error)
	Set(ctx context.Context, key string, intervals []models.Interval) error
}

// BusyCache keeps a recently synced snapshot of a user's busy intervals in
// Redis. The background sync worker writes it; read paths may fall back to
// it for availability previews when a live fetch fails. The booking path
// never substitutes the cache for a live fetch.
type BusyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBusyCache(client *redis.Client, ttl time.Duration) *BusyCache {
	return &BusyCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or (nil, nil) when none exists.
func (c *BusyCache) Get(ctx context.Context, userID string) ([]models.Interval, error) {
	data, err := c.client.Get(ctx, busyCachePrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var intervals []models.Interval
	if err := json.Unmarshal([]byte(data), &intervals); err != nil {
		return nil, err
	}
	return intervals, nil
}

// Set stores a fresh snapshot with the configured TTL.
func (c *BusyCache) Set(ctx context.Context, userID string, intervals []models.Interval) error {
	b, err := json.Marshal(intervals)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, busyCachePrefix+userID, b, c.ttl).Err()
}
