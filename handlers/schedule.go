package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/KazChe/ai-task-scheduler/services/scheduling"
	"github.com/KazChe/ai-task-scheduler/services/task"
	"github.com/KazChe/ai-task-scheduler/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the direct slot-search endpoint.
type ScheduleHandler struct {
	svc task.TaskService
}

func NewScheduleHandler(svc task.TaskService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// SlotSearchRequest is the payload for POST /api/schedule/search.
type SlotSearchRequest struct {
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	RangeStart      time.Time `json:"rangeStart" binding:"required"`
	RangeEnd        time.Time `json:"rangeEnd" binding:"required"`
}

// SearchSlots runs a slot search over the requested range and returns the
// free intervals in chronological order.
func (h *ScheduleHandler) SearchSlots(c *gin.Context) {
	logger := getLogger(c)

	var req SlotSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid slot search request", err.Error())
		return
	}
	userID := currentUserID(c, "")
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	slots, err := h.svc.SearchSlots(c.Request.Context(), userID, req.DurationMinutes, req.RangeStart, req.RangeEnd)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidRequest) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid slot search request", err.Error())
			return
		}
		logger.Error("slot search failed", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Calendar fetch failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slots": slots,
		"count": len(slots),
	})
}
