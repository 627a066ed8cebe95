package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/KazChe/ai-task-scheduler/config"
	"github.com/KazChe/ai-task-scheduler/services/calendar"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeCalendarSync = "calendar:sync"

// SyncPayload identifies which calendar's busy snapshot to refresh.
type SyncPayload struct {
	CalendarID    string `json:"calendarId"`
	LookaheadDays int    `json:"lookaheadDays"`
}

// NewCalendarSyncTask builds a sync job for the given calendar.
func NewCalendarSyncTask(payload SyncPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCalendarSync, b), nil
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	}
}

// EnqueueInitialSync schedules the first sync for the configured calendar;
// the handler keeps re-enqueuing itself afterwards.
func EnqueueInitialSync() error {
	client := asynq.NewClient(redisOpts())
	defer client.Close()

	task, err := NewCalendarSyncTask(SyncPayload{
		CalendarID:    config.AppConfig.GoogleCalendarID,
		LookaheadDays: config.AppConfig.SyncLookaheadDays,
	})
	if err != nil {
		return err
	}
	_, err = client.Enqueue(task)
	return err
}

// InitCalendarSyncWorker runs the async worker in background. It warms the
// busy-interval cache so availability previews survive transient calendar
// outages; the booking path never reads from this cache.
func InitCalendarSyncWorker(gateway calendar.Gateway, cache calendar.BusySnapshotStore) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	enqueue := func(task *asynq.Task, opts ...asynq.Option) error {
		client := asynq.NewClient(redisOpts())
		defer client.Close()
		_, err := client.Enqueue(task, opts...)
		return err
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCalendarSync, handleCalendarSync(gateway, cache, enqueue))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[CalendarSyncWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CalendarSyncWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CalendarSyncWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

type enqueueFunc func(task *asynq.Task, opts ...asynq.Option) error

func handleCalendarSync(gateway calendar.Gateway, cache calendar.BusySnapshotStore, enqueue enqueueFunc) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CalendarSync] invalid payload: %v", err)
			return err
		}
		if p.LookaheadDays <= 0 {
			p.LookaheadDays = config.AppConfig.SyncLookaheadDays
		}

		now := time.Now()
		busy, err := gateway.ListBusyIntervals(ctx, now, now.AddDate(0, 0, p.LookaheadDays))
		if err != nil {
			log.Printf("[CalendarSync] fetch failed for %s: %v", p.CalendarID, err)
		} else if err := cache.Set(ctx, p.CalendarID, busy); err != nil {
			log.Printf("[CalendarSync] cache write failed for %s: %v", p.CalendarID, err)
		} else {
			log.Printf("[CalendarSync] refreshed %d busy intervals for %s", len(busy), p.CalendarID)
		}

		// Exactly one next cycle per run. Once it is scheduled this run
		// must report success even after a failed fetch: a non-nil return
		// would make asynq retry the task, and the retry would enqueue a
		// second chain of periodic syncs.
		next, buildErr := NewCalendarSyncTask(p)
		if buildErr != nil {
			return buildErr
		}
		if enqErr := enqueue(next, asynq.ProcessIn(config.SyncInterval())); enqErr != nil {
			log.Printf("[CalendarSync] failed to schedule next sync: %v", enqErr)
			return enqErr
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CalendarSyncWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
