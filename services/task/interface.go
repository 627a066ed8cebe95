package task

import (
	"context"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"
)

// TaskService runs the scheduling flow: fetch busy intervals from the
// calendar, search for free slots, book the earliest one, persist the task.
type TaskService interface {
	// ScheduleTask books the earliest free slot satisfying the extraction
	// and persists the resulting task. Returns
	// scheduling.ErrNoSlotsAvailable when nothing fits.
	ScheduleTask(ctx context.Context, userID string, ext models.TaskExtraction) (*models.Task, error)

	// PreviewSlots returns the free slots the extraction could occupy
	// without booking anything. May serve a cached busy snapshot when the
	// live calendar fetch fails.
	PreviewSlots(ctx context.Context, userID string, ext models.TaskExtraction) ([]models.Interval, error)

	// SearchSlots is the direct slot-search surface: an explicit duration
	// and range, no LLM involved.
	SearchSlots(ctx context.Context, userID string, durationMinutes int, rangeStart, rangeEnd time.Time) ([]models.Interval, error)

	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CancelTask(ctx context.Context, userID, taskID string) error
}
