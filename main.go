// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KazChe/ai-task-scheduler/config"
	"github.com/KazChe/ai-task-scheduler/cron"
	"github.com/KazChe/ai-task-scheduler/database"
	chatRepoPkg "github.com/KazChe/ai-task-scheduler/database/repository/chat"
	taskRepoPkg "github.com/KazChe/ai-task-scheduler/database/repository/task"
	"github.com/KazChe/ai-task-scheduler/handlers"
	"github.com/KazChe/ai-task-scheduler/middleware"
	"github.com/KazChe/ai-task-scheduler/routes"
	"github.com/KazChe/ai-task-scheduler/services/calendar"
	ai "github.com/KazChe/ai-task-scheduler/services/intelligence"
	"github.com/KazChe/ai-task-scheduler/services/scheduling"
	"github.com/KazChe/ai-task-scheduler/services/task"
	"github.com/KazChe/ai-task-scheduler/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAIContextCache()

	// Scheduling window policy, fixed for the process lifetime.
	window, err := scheduling.NewWindow(
		config.SchedLocation(),
		config.AppConfig.SchedWindowStartHour,
		config.AppConfig.SchedWindowEndHour,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid scheduling window: %v", err)
	}

	// Calendar gateway, explicitly constructed and injected.
	gateway, err := calendar.NewGoogleGateway(
		context.Background(),
		config.AppConfig.GoogleServiceAccountFile,
		config.AppConfig.GoogleCalendarID,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar gateway: %v", err)
	}
	busyCache := calendar.NewBusyCache(utils.GetCacheClient(), 2*config.SyncInterval())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	taskRepo := taskRepoPkg.NewMongoTaskRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()

	// services.
	taskService := &task.DefaultTaskService{
		Calendar:   gateway,
		BusyCache:  busyCache,
		Repo:       taskRepo,
		CalendarID: config.AppConfig.GoogleCalendarID,
		Searcher: scheduling.Searcher{
			Window:        window,
			StepMinutes:   config.AppConfig.SchedStepMinutes,
			MaxCandidates: config.AppConfig.SchedMaxCandidates,
		},
	}

	ctxStore := ai.NewRedisContextStore(utils.GetAIContextCacheClient(), 30*time.Minute)
	aiSvc := ai.NewDefaultAIService(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		ctxStore,
		taskService,
		chatRepo,
	)

	aiHandler := handlers.NewAIHandler(aiSvc)
	scheduleHandler := handlers.NewScheduleHandler(taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AIChatHandler:      aiHandler.HandleAIRequest,
		AISTTHandler:       aiHandler.AISTTHandler,
		SearchSlotsHandler: scheduleHandler.SearchSlots,
		ListTasksHandler:   taskHandler.ListTasksHandler,
		GetTaskHandler:     taskHandler.GetTaskHandler,
		CancelTaskHandler:  taskHandler.CancelTaskHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background busy-interval sync.
	cron.InitCalendarSyncWorker(gateway, busyCache)
	if err := cron.EnqueueInitialSync(); err != nil {
		logger.Sugar().Warnf("main: failed to enqueue initial calendar sync: %v", err)
	}

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAIContextCacheClient()},
		database.MongoClient,
		func(ctx context.Context) error {
			// A one-minute FreeBusy query is the cheapest authenticated call.
			now := time.Now()
			_, err := gateway.ListBusyIntervals(ctx, now, now.Add(time.Minute))
			return err
		},
	)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
