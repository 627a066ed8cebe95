// File: services/intelligence/interface.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	chatRepo "github.com/KazChe/ai-task-scheduler/database/repository/chat"
	"github.com/KazChe/ai-task-scheduler/models"
	"github.com/KazChe/ai-task-scheduler/services/scheduling"
	"github.com/KazChe/ai-task-scheduler/services/task"
	"github.com/KazChe/ai-task-scheduler/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AIService turns free-form user messages into scheduled tasks.
type AIService interface {
	ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error)
}

// ContentGenerator is the LLM boundary; satisfied by GeminiClient.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type DefaultAIService struct {
	gemini   ContentGenerator
	ctxStore ContextStore
	taskSvc  task.TaskService
	chatRepo chatRepo.ChatRepository
	now      func() time.Time
}

func NewDefaultAIService(apiKey, modelName string, ctxStore ContextStore, taskSvc task.TaskService, chats chatRepo.ChatRepository) *DefaultAIService {
	return &DefaultAIService{
		gemini:   NewGeminiClient(apiKey, modelName),
		ctxStore: ctxStore,
		taskSvc:  taskSvc,
		chatRepo: chats,
		now:      time.Now,
	}
}

const slotsOffered = 3

// ProcessUserInput runs one conversation turn. A turn either continues a
// pending confirmation, extracts a new task request, or falls back to chat.
func (s *DefaultAIService) ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	logger := utils.GetLogger()
	s.recordMessage(req.UserID, models.ChatRoleUser, req.Text)

	aiCtx, err := s.ctxStore.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	// Mid-flow: a proposed slot is awaiting the user's confirmation.
	if aiCtx.SchedulingStep == 1 && aiCtx.Pending != nil {
		if resp, handled := s.handleConfirmation(ctx, req, aiCtx); handled {
			return resp, nil
		}
		// Anything other than yes/no starts over as fresh input.
		if err := s.ctxStore.Clear(ctx, req.UserID); err != nil {
			logger.Warn("failed to clear stale context", zap.String("userID", req.UserID), zap.Error(err))
		}
	}

	ext, err := s.extractTask(ctx, req.Text)
	if err != nil {
		logger.Warn("task extraction failed, falling back to chat",
			zap.String("userID", req.UserID), zap.Error(err))
		ext = nil
	}
	if ext == nil {
		return s.handleChat(ctx, req)
	}

	slots, err := s.taskSvc.PreviewSlots(ctx, req.UserID, *ext)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidRequest) {
			return s.reply(req.UserID, &models.AIResponse{
				Intent:       "schedule",
				ResponseText: "I couldn't make sense of that time range — could you rephrase when this should happen?",
			}), nil
		}
		return nil, err
	}
	if len(slots) == 0 {
		return s.reply(req.UserID, &models.AIResponse{
			Intent:       "schedule",
			ResponseText: fmt.Sprintf("I couldn't find any free time for %q in that range. Want to try a different window?", ext.Title),
		}), nil
	}

	aiCtx.SchedulingStep = 1
	aiCtx.Pending = ext
	if err := s.ctxStore.Set(ctx, req.UserID, aiCtx); err != nil {
		return nil, fmt.Errorf("save context: %w", err)
	}

	offered := slots
	if len(offered) > slotsOffered {
		offered = offered[:slotsOffered]
	}
	return s.reply(req.UserID, &models.AIResponse{
		Intent: "schedule",
		ResponseText: fmt.Sprintf("I can book %q for %d minutes, starting %s. Shall I?",
			ext.Title, ext.DurationMinutes, formatSlot(offered[0])),
		Slots: offered,
		Actions: []models.AIAction{
			{Label: "Yes, book it", Type: "confirm_slot", Description: formatSlot(offered[0])},
			{Label: "Not now", Type: "chat"},
		},
	}), nil
}

// handleConfirmation resolves a yes/no answer to a proposed slot. The bool
// result reports whether the message was consumed.
func (s *DefaultAIService) handleConfirmation(ctx context.Context, req models.AIRequest, aiCtx *models.AIContext) (*models.AIResponse, bool) {
	logger := utils.GetLogger()
	switch {
	// Negative phrasing wins: "no, don't book it" must not read as consent.
	case isNegative(req.Text):
		_ = s.ctxStore.Clear(ctx, req.UserID)
		return s.reply(req.UserID, &models.AIResponse{
			Intent:       "chat",
			ResponseText: "No problem, I won't book anything. Anything else?",
		}), true
	case isAffirmative(req.Text):
		booked, err := s.taskSvc.ScheduleTask(ctx, req.UserID, *aiCtx.Pending)
		_ = s.ctxStore.Clear(ctx, req.UserID)
		if errors.Is(err, scheduling.ErrNoSlotsAvailable) {
			return s.reply(req.UserID, &models.AIResponse{
				Intent:       "schedule",
				ResponseText: "That time just filled up and nothing else is free in the range. Want to try a wider window?",
			}), true
		}
		if err != nil {
			logger.Error("booking failed", zap.String("userID", req.UserID), zap.Error(err))
			return s.reply(req.UserID, &models.AIResponse{
				Intent:       "schedule",
				ResponseText: "Something went wrong talking to your calendar. Please try again in a moment.",
			}), true
		}
		return s.reply(req.UserID, &models.AIResponse{
			Intent:       "schedule",
			ResponseText: fmt.Sprintf("Done — %q is booked for %s.", booked.Title, formatSlot(models.Interval{Start: booked.ScheduledStart, End: booked.ScheduledEnd})),
			Task:         booked,
		}), true
	default:
		return nil, false
	}
}

// extractTask asks the LLM for a structured task request. A nil result with
// nil error means the message was not a scheduling request.
func (s *DefaultAIService) extractTask(ctx context.Context, text string) (*models.TaskExtraction, error) {
	raw, err := s.gemini.GenerateContent(ctx, BuildExtractionPrompt(text, s.now()))
	if err != nil {
		return nil, fmt.Errorf("gemini extraction: %w", err)
	}
	return ParseExtraction(raw)
}

const chatPromptTemplate = `You are a concise, friendly scheduling assistant. The user said: %q
Reply in one or two sentences. If helpful, mention that you can schedule tasks on their calendar.`

func (s *DefaultAIService) handleChat(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	text, err := s.gemini.GenerateContent(ctx, fmt.Sprintf(chatPromptTemplate, req.Text))
	if err != nil {
		return nil, fmt.Errorf("gemini chat: %w", err)
	}
	return s.reply(req.UserID, &models.AIResponse{
		Intent:       "chat",
		ResponseText: strings.TrimSpace(text),
	}), nil
}

// reply records the assistant turn before returning it.
func (s *DefaultAIService) reply(userID string, resp *models.AIResponse) *models.AIResponse {
	s.recordMessage(userID, models.ChatRoleAssistant, resp.ResponseText)
	return resp
}

func (s *DefaultAIService) recordMessage(userID, role, text string) {
	if s.chatRepo == nil {
		return
	}
	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.chatRepo.Append(msg); err != nil {
		utils.GetLogger().Warn("failed to persist chat message",
			zap.String("userID", userID), zap.Error(err))
	}
}

// normalizeWords lowercases text and reduces it to space-separated words,
// padded so phrase matching can anchor on word boundaries. Apostrophes
// survive so contractions stay single words.
func normalizeWords(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return " " + strings.Join(strings.Fields(b.String()), " ") + " "
}

func containsPhrase(normalized, phrase string) bool {
	return strings.Contains(normalized, " "+phrase+" ")
}

// Matching is whole-word: "now" must not read as "no".
func isAffirmative(text string) bool {
	normalized := normalizeWords(text)
	for _, kw := range []string{"yes", "yep", "sure", "confirm", "book it", "go ahead", "ok", "okay"} {
		if containsPhrase(normalized, kw) {
			return true
		}
	}
	return false
}

func isNegative(text string) bool {
	normalized := normalizeWords(text)
	for _, kw := range []string{"no", "nope", "cancel", "not now", "stop", "don't"} {
		if containsPhrase(normalized, kw) {
			return true
		}
	}
	return false
}

func formatSlot(iv models.Interval) string {
	return fmt.Sprintf("%s until %s",
		iv.Start.Format("Mon Jan 2 15:04 MST"), iv.End.Format("15:04 MST"))
}
