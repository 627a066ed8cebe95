package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of external-dependency health: the
// task store, the Redis databases, and the calendar gateway the whole
// scheduling flow depends on.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	Calendar  bool      `json:"calendar"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// collectHealth checks every dependency once. A nil mongo client or
// calendar ping reports that dependency unhealthy rather than panicking.
func collectHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client, calendarPing func(context.Context) error) HealthStatus {
	var redisHealth []bool
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}

	mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil
	calendarHealthy := calendarPing != nil && calendarPing(ctx) == nil

	return HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		Calendar:  calendarHealthy,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. calendarPing should be a cheap call against the calendar gateway.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, calendarPing func(context.Context) error) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			status := collectHealth(ctx, redisClients, mongoClient, calendarPing)
			cancel()

			mu.Lock()
			currentHealth = status
			mu.Unlock()
		}
	}()
}
