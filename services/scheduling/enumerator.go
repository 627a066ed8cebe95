package scheduling

import (
	"fmt"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"
)

// Defaults applied when a SearchRequest leaves step or cap unset.
const (
	DefaultStepMinutes   = 30
	DefaultMaxCandidates = 500
)

// SearchRequest describes one slot search. Created per scheduling attempt;
// never persisted.
type SearchRequest struct {
	DurationMinutes int
	RangeStart      time.Time
	RangeEnd        time.Time
	StepMinutes     int // candidate granularity; DefaultStepMinutes when 0
	MaxCandidates   int // hard bound on positions examined; DefaultMaxCandidates when 0
}

func (r *SearchRequest) applyDefaults() {
	if r.StepMinutes == 0 {
		r.StepMinutes = DefaultStepMinutes
	}
	if r.MaxCandidates == 0 {
		r.MaxCandidates = DefaultMaxCandidates
	}
}

// Validate rejects malformed parameters with ErrInvalidRequest.
func (r SearchRequest) Validate() error {
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidRequest, r.DurationMinutes)
	}
	if r.StepMinutes <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidRequest, r.StepMinutes)
	}
	if r.MaxCandidates <= 0 {
		return fmt.Errorf("%w: max candidates must be positive, got %d", ErrInvalidRequest, r.MaxCandidates)
	}
	if !r.RangeStart.Before(r.RangeEnd) {
		return fmt.Errorf("%w: range start %s is not before range end %s",
			ErrInvalidRequest, r.RangeStart.Format(time.RFC3339), r.RangeEnd.Format(time.RFC3339))
	}
	return nil
}

// FindAvailableSlots enumerates candidate start times at fixed step across
// [RangeStart, RangeEnd), keeping every candidate that fits the daily window
// and conflicts with no busy interval. The result is in ascending start
// order, each slot exactly DurationMinutes long. Exceeding MaxCandidates
// truncates the search silently; an empty result is not an error here — the
// caller decides what "nothing free" means.
func FindAvailableSlots(req SearchRequest, window Window, busy BusySet) ([]models.Interval, error) {
	req.applyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	step := time.Duration(req.StepMinutes) * time.Minute
	duration := time.Duration(req.DurationMinutes) * time.Minute

	var slots []models.Interval
	cursor := alignToStep(req.RangeStart, step, window.Location)
	for examined := 0; cursor.Before(req.RangeEnd) && examined < req.MaxCandidates; examined++ {
		candidate := models.Interval{Start: cursor, End: cursor.Add(duration)}
		if window.ContainsInterval(candidate) && !busy.Conflicts(candidate) {
			slots = append(slots, candidate)
		}
		cursor = cursor.Add(step)
		if !window.ContainsInstant(cursor) {
			cursor = window.NextOpening(cursor)
		}
	}
	return slots, nil
}

// alignToStep rounds t up to the next multiple of step within its local
// hour; rounding past minute 60 rolls over into the following hour. Already
// aligned instants are returned unchanged.
func alignToStep(t time.Time, step time.Duration, loc *time.Location) time.Time {
	local := t.In(loc)
	hour := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	offset := local.Sub(hour)
	steps := offset / step
	if offset%step != 0 {
		steps++
	}
	return hour.Add(steps * step)
}

// Searcher binds the process-wide window policy and tuning parameters so the
// scheduling flow can run searches with just a duration and a range.
type Searcher struct {
	Window        Window
	StepMinutes   int
	MaxCandidates int
}

// FindAvailableSlots runs one search against the given busy set.
func (s Searcher) FindAvailableSlots(durationMinutes int, searchStart, searchEnd time.Time, busy BusySet) ([]models.Interval, error) {
	return FindAvailableSlots(SearchRequest{
		DurationMinutes: durationMinutes,
		RangeStart:      searchStart,
		RangeEnd:        searchEnd,
		StepMinutes:     s.StepMinutes,
		MaxCandidates:   s.MaxCandidates,
	}, s.Window, busy)
}

// ValidateRequest checks search parameters without running a search, so
// callers can reject malformed input before fetching anything.
func (s Searcher) ValidateRequest(durationMinutes int, searchStart, searchEnd time.Time) error {
	req := SearchRequest{
		DurationMinutes: durationMinutes,
		RangeStart:      searchStart,
		RangeEnd:        searchEnd,
		StepMinutes:     s.StepMinutes,
		MaxCandidates:   s.MaxCandidates,
	}
	req.applyDefaults()
	return req.Validate()
}
