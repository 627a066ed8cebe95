package scheduling

import (
	"fmt"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"
)

// Window describes the daily local-time range during which new bookings may
// be placed. Hours are wall-clock hours in Location; EndHour of 24 means the
// window stays open through the end of the day. Read-only after startup.
type Window struct {
	Location  *time.Location
	StartHour int // inclusive, in [0,24)
	EndHour   int // exclusive for starts, in (0,24]
}

// NewWindow validates the hour bounds and returns the policy.
func NewWindow(loc *time.Location, startHour, endHour int) (Window, error) {
	if loc == nil {
		return Window{}, fmt.Errorf("window: location is required")
	}
	if startHour < 0 || startHour >= 24 {
		return Window{}, fmt.Errorf("window: start hour %d out of range [0,24)", startHour)
	}
	if endHour <= 0 || endHour > 24 {
		return Window{}, fmt.Errorf("window: end hour %d out of range (0,24]", endHour)
	}
	if startHour >= endHour {
		return Window{}, fmt.Errorf("window: start hour %d must be before end hour %d", startHour, endHour)
	}
	return Window{Location: loc, StartHour: startHour, EndHour: endHour}, nil
}

// ContainsInstant reports whether t's wall-clock hour in the reference zone
// falls inside [StartHour, EndHour). Zone rules, including daylight-saving
// transitions, apply for the date in question.
func (w Window) ContainsInstant(t time.Time) bool {
	h := t.In(w.Location).Hour()
	return h >= w.StartHour && h < w.EndHour
}

// ContainsInterval reports whether a candidate slot fits the daily window.
// The start must be strictly inside; the end may touch the closing boundary
// (an interval ending exactly at midnight passes an EndHour of 24): work
// may begin at the opening hour and finish exactly when the window closes.
func (w Window) ContainsInterval(iv models.Interval) bool {
	if !w.ContainsInstant(iv.Start) {
		return false
	}
	return w.endBoundaryHour(iv.Start, iv.End) <= w.EndHour
}

// endBoundaryHour measures the local hour of end relative to the local day
// the interval started on. An end exactly at the next midnight reports 24;
// anything later reports 25 so it can never satisfy an end-hour bound.
func (w Window) endBoundaryHour(start, end time.Time) int {
	ls := start.In(w.Location)
	le := end.In(w.Location)
	nextMidnight := time.Date(ls.Year(), ls.Month(), ls.Day()+1, 0, 0, 0, 0, w.Location)
	switch {
	case le.Equal(nextMidnight):
		return 24
	case le.After(nextMidnight):
		return 25
	default:
		return le.Hour()
	}
}

// NextOpening returns the next instant the window opens: minute 0 of
// StartHour, on the same local day when t is still before the window, on
// the following day once t is at or past it. Used to fast-forward the
// enumerator across closed hours instead of stepping through them.
func (w Window) NextOpening(t time.Time) time.Time {
	local := t.In(w.Location)
	day := local.Day()
	if local.Hour() >= w.StartHour {
		day++
	}
	return time.Date(local.Year(), local.Month(), day, w.StartHour, 0, 0, 0, w.Location)
}
