package handlers

import (
	"net/http"

	"github.com/KazChe/ai-task-scheduler/models"
	ai "github.com/KazChe/ai-task-scheduler/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler exposes the conversational endpoints.
type AIHandler struct {
	svc ai.AIService
}

func NewAIHandler(svc ai.AIService) *AIHandler {
	return &AIHandler{svc: svc}
}

// HandleAIRequest processes one chat turn: extraction, slot proposal, or
// booking confirmation, depending on conversation state.
func (h *AIHandler) HandleAIRequest(c *gin.Context) {
	logger := getLogger(c)

	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid AI chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	req.UserID = currentUserID(c, req.UserID)
	if req.UserID == "" || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and text are required"})
		return
	}

	resp, err := h.svc.ProcessUserInput(c.Request.Context(), req)
	if err != nil {
		logger.Error("AI chat processing failed", zap.String("userID", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
