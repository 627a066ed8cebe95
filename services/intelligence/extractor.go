// File: services/intelligence/extractor.go
package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"
)

const extractionPromptTemplate = `You are a scheduling assistant. Extract a task request from the user's message.
Respond with ONLY a JSON object, no prose, no code fences, with these fields:
  "title": short task title (string, required)
  "description": optional detail (string)
  "durationMinutes": how long the task needs (integer minutes, required; estimate if the user did not say)
  "earliestStart": earliest acceptable start as RFC3339, or null if unconstrained
  "deadline": latest acceptable finish as RFC3339, or null if unconstrained
If the message is not a request to schedule something, respond with exactly: {"title":""}
The current time is %s.

User message: %s`

// BuildExtractionPrompt renders the task-extraction prompt for one message.
// The current time anchors relative phrases like "tomorrow afternoon".
func BuildExtractionPrompt(text string, now time.Time) string {
	return fmt.Sprintf(extractionPromptTemplate, now.Format(time.RFC3339), text)
}

// ParseExtraction decodes the model's reply into a TaskExtraction. Gemini
// sometimes wraps JSON in markdown fences despite instructions, so those are
// stripped first. An empty title means "not a scheduling request" and yields
// (nil, nil).
func ParseExtraction(raw string) (*models.TaskExtraction, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var ext models.TaskExtraction
	if err := json.Unmarshal([]byte(cleaned), &ext); err != nil {
		return nil, fmt.Errorf("unparseable extraction reply: %w", err)
	}
	if ext.Title == "" {
		return nil, nil
	}
	if ext.DurationMinutes <= 0 {
		return nil, fmt.Errorf("extraction has non-positive duration %d", ext.DurationMinutes)
	}
	if ext.EarliestStart != nil && ext.Deadline != nil && !ext.EarliestStart.Before(*ext.Deadline) {
		return nil, fmt.Errorf("extraction earliestStart %s is not before deadline %s",
			ext.EarliestStart.Format(time.RFC3339), ext.Deadline.Format(time.RFC3339))
	}
	return &ext, nil
}
