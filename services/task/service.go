// File: services/task/service.go
package task

import (
	"context"
	"fmt"
	"time"

	taskRepo "github.com/KazChe/ai-task-scheduler/database/repository/task"
	"github.com/KazChe/ai-task-scheduler/models"
	"github.com/KazChe/ai-task-scheduler/services/calendar"
	"github.com/KazChe/ai-task-scheduler/services/scheduling"
	"github.com/KazChe/ai-task-scheduler/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLookaheadDays bounds the search range when an extraction carries no
// deadline.
const DefaultLookaheadDays = 14

// DefaultTaskService is the concrete scheduling flow. All collaborators are
// injected; the service holds no mutable state of its own, so concurrent
// requests need no locking.
type DefaultTaskService struct {
	Calendar  calendar.Gateway
	BusyCache calendar.BusySnapshotStore
	Searcher  scheduling.Searcher
	Repo      taskRepo.TaskRepository

	// CalendarID keys the busy snapshot the sync worker maintains.
	CalendarID string

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultTaskService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// searchRange derives [rangeStart, rangeEnd) from the extraction's optional
// bounds. Unset earliest-start means "from now"; unset deadline means the
// default lookahead.
func (s *DefaultTaskService) searchRange(ext models.TaskExtraction) (time.Time, time.Time) {
	start := s.now()
	if ext.EarliestStart != nil && ext.EarliestStart.After(start) {
		start = *ext.EarliestStart
	}
	end := start.AddDate(0, 0, DefaultLookaheadDays)
	if ext.Deadline != nil {
		end = *ext.Deadline
	}
	return start, end
}

// ScheduleTask books the earliest free slot for the extraction. Calendar
// faults propagate unchanged; an exhausted search surfaces
// scheduling.ErrNoSlotsAvailable.
func (s *DefaultTaskService) ScheduleTask(ctx context.Context, userID string, ext models.TaskExtraction) (*models.Task, error) {
	logger := utils.GetLogger()
	rangeStart, rangeEnd := s.searchRange(ext)
	if err := s.Searcher.ValidateRequest(ext.DurationMinutes, rangeStart, rangeEnd); err != nil {
		return nil, err
	}

	busy, err := s.Calendar.ListBusyIntervals(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch busy intervals: %w", err)
	}

	slots, err := s.Searcher.FindAvailableSlots(ext.DurationMinutes, rangeStart, rangeEnd, busy)
	if err != nil {
		return nil, err
	}
	slot, err := scheduling.SelectSlot(slots)
	if err != nil {
		return nil, err
	}

	booking, err := s.Calendar.CreateBooking(ctx, ext.Title, ext.Description, slot.Start, slot.End)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	task := &models.Task{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           ext.Title,
		Description:     ext.Description,
		DurationMinutes: ext.DurationMinutes,
		ScheduledStart:  slot.Start,
		ScheduledEnd:    slot.End,
		CalendarEventID: booking.EventID,
		CalendarLink:    booking.Link,
		Status:          models.TaskStatusScheduled,
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(task); err != nil {
		// The calendar event exists at this point; surface the fault
		// rather than silently dropping the record.
		logger.Error("ScheduleTask: task persisted to calendar but not to store",
			zap.String("userID", userID), zap.String("eventID", booking.EventID), zap.Error(err))
		return nil, fmt.Errorf("booking %s created but task not persisted: %w", booking.EventID, err)
	}

	logger.Sugar().Infof("ScheduleTask: booked %q for user %s at %s", ext.Title, userID, slot.Start.Format(time.RFC3339))
	return task, nil
}

// PreviewSlots lists the free slots the extraction could occupy. When the
// live calendar fetch fails and a synced snapshot exists in Redis, the
// snapshot serves the preview; the failure still propagates when no
// snapshot is available.
func (s *DefaultTaskService) PreviewSlots(ctx context.Context, userID string, ext models.TaskExtraction) ([]models.Interval, error) {
	logger := utils.GetLogger()
	rangeStart, rangeEnd := s.searchRange(ext)
	if err := s.Searcher.ValidateRequest(ext.DurationMinutes, rangeStart, rangeEnd); err != nil {
		return nil, err
	}

	busy, fetchErr := s.Calendar.ListBusyIntervals(ctx, rangeStart, rangeEnd)
	if fetchErr != nil {
		if s.BusyCache == nil {
			return nil, fmt.Errorf("failed to fetch busy intervals: %w", fetchErr)
		}
		cacheKey := s.CalendarID
		if cacheKey == "" {
			cacheKey = userID
		}
		cached, cacheErr := s.BusyCache.Get(ctx, cacheKey)
		if cacheErr != nil || cached == nil {
			return nil, fmt.Errorf("failed to fetch busy intervals: %w", fetchErr)
		}
		logger.Warn("PreviewSlots: live calendar fetch failed, serving cached busy snapshot",
			zap.String("userID", userID), zap.Error(fetchErr))
		busy = cached
	}

	return s.Searcher.FindAvailableSlots(ext.DurationMinutes, rangeStart, rangeEnd, busy)
}

// SearchSlots runs a slot search for an explicit duration and range.
// Malformed parameters are rejected before the calendar is consulted.
func (s *DefaultTaskService) SearchSlots(ctx context.Context, userID string, durationMinutes int, rangeStart, rangeEnd time.Time) ([]models.Interval, error) {
	if err := s.Searcher.ValidateRequest(durationMinutes, rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	busy, err := s.Calendar.ListBusyIntervals(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch busy intervals: %w", err)
	}
	return s.Searcher.FindAvailableSlots(durationMinutes, rangeStart, rangeEnd, busy)
}

// GetTask fetches one of the user's tasks.
func (s *DefaultTaskService) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	t, err := s.Repo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// ListTasks returns the user's tasks ordered by scheduled start.
func (s *DefaultTaskService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.Repo.ListByUser(userID)
}

// CancelTask marks a task cancelled. The calendar event is left in place;
// removing it is the user's call in their own calendar UI.
func (s *DefaultTaskService) CancelTask(ctx context.Context, userID, taskID string) error {
	t, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return s.Repo.UpdateStatus(t.ID, models.TaskStatusCancelled)
}
