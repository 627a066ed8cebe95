package models

import "time"

// AIRequest is the payload coming from the frontend into /api/chat.
type AIRequest struct {
	UserID string `json:"user_id"` // unique user identifier
	Text   string `json:"text"`    // user's message (voice→text or typed)
}

// TaskExtraction is the structured task request the LLM distills from the
// user's message. EarliestStart/Deadline bound the slot search range.
type TaskExtraction struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	EarliestStart   *time.Time `json:"earliestStart,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

// AIAction is a single button/card action returned during scheduling steps.
type AIAction struct {
	Label       string `json:"label"`                 // text on the button
	Type        string `json:"type"`                  // e.g. "confirm_slot", "chat"
	Description string `json:"description,omitempty"` // e.g. slot label or extra info
}

// AIResponse is what the chat handler returns to the frontend.
type AIResponse struct {
	Intent       string     `json:"intent"`          // "chat" or "schedule"
	ResponseText string     `json:"response"`        // natural-language reply
	Task         *Task      `json:"task,omitempty"`  // set once a booking is made
	Slots        []Interval `json:"slots,omitempty"` // offered free slots, earliest first
	Actions      []AIAction `json:"actions,omitempty"`
}

// AIContext is the per-user conversation state held in Redis between turns.
type AIContext struct {
	SchedulingStep int             `json:"schedulingStep"`
	Pending        *TaskExtraction `json:"pending,omitempty"`
}
