package routes

import (
	"time"

	"github.com/KazChe/ai-task-scheduler/handlers"
	"github.com/KazChe/ai-task-scheduler/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAIRoutes registers the conversational endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.AIChatHandler)
		api.POST("/voice", hb.AISTTHandler)
	}
}

// RegisterScheduleRoutes registers the direct slot-search endpoint.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/search", hb.SearchSlotsHandler)
	}
}

// RegisterTaskRoutes registers the persisted-task endpoints.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tasks")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListTasksHandler)
		api.GET("/:id", hb.GetTaskHandler)
		api.DELETE("/:id", hb.CancelTaskHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAIRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterTaskRoutes(r, hb)
	RegisterHealthRoute(r)
}
