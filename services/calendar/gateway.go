package calendar

import (
	"context"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"
)

// Gateway is the external calendar collaborator: a data source for busy
// intervals and a sink for new bookings. The scheduling core never talks to
// it directly; the task service sequences fetch → search → book around the
// pure slot computation. Implementations are injected, never package-level
// singletons.
type Gateway interface {
	// ListBusyIntervals returns the commitments intersecting
	// [rangeStart, rangeEnd). Fetch failures propagate unchanged.
	ListBusyIntervals(ctx context.Context, rangeStart, rangeEnd time.Time) ([]models.Interval, error)

	// CreateBooking persists a new event and returns its id and link.
	CreateBooking(ctx context.Context, title, description string, start, end time.Time) (*models.Booking, error)
}
