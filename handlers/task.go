package handlers

import (
	"errors"
	"net/http"

	"github.com/KazChe/ai-task-scheduler/services/task"
	"github.com/KazChe/ai-task-scheduler/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler exposes the persisted-task surface.
type TaskHandler struct {
	svc task.TaskService
}

func NewTaskHandler(svc task.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ListTasksHandler returns the authenticated user's tasks.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	userID := currentUserID(c, "")
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	tasks, err := h.svc.ListTasks(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("failed to list tasks", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list tasks", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetTaskHandler returns one task by id.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	userID := currentUserID(c, "")
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	t, err := h.svc.GetTask(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Task not found", "")
			return
		}
		getLogger(c).Error("failed to fetch task", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch task", "")
		return
	}
	c.JSON(http.StatusOK, t)
}

// CancelTaskHandler marks a task cancelled.
func (h *TaskHandler) CancelTaskHandler(c *gin.Context) {
	userID := currentUserID(c, "")
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	if err := h.svc.CancelTask(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Task not found", "")
			return
		}
		getLogger(c).Error("failed to cancel task", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel task", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
