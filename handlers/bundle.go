package handlers

import (
	"net/http"

	"github.com/KazChe/ai-task-scheduler/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects every handler the router needs.
type HandlerBundle struct {
	// Conversational endpoints.
	AIChatHandler gin.HandlerFunc
	AISTTHandler  gin.HandlerFunc

	// Direct slot search.
	SearchSlotsHandler gin.HandlerFunc

	// Task endpoints.
	ListTasksHandler  gin.HandlerFunc
	GetTaskHandler    gin.HandlerFunc
	CancelTaskHandler gin.HandlerFunc
}

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   status,
	})
}
