package scheduling

import "github.com/KazChe/ai-task-scheduler/models"

// BusySet holds the commitments already on the calendar for the queried
// range. Built fresh per search and only read during enumeration; overlap
// testing tolerates duplicates and mutual overlaps among its members.
type BusySet []models.Interval

// Conflicts reports whether the candidate overlaps any busy interval.
// Half-open semantics: a busy interval ending exactly at the candidate's
// start (or starting exactly at its end) is not a conflict. Linear scan;
// busy sets are bounded by a single calendar query window.
func (bs BusySet) Conflicts(candidate models.Interval) bool {
	for _, busy := range bs {
		if candidate.Start.Before(busy.End) && candidate.End.After(busy.Start) {
			return true
		}
	}
	return false
}
