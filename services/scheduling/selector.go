package scheduling

import "github.com/KazChe/ai-task-scheduler/models"

// SelectSlot picks the earliest slot from an ordered search result.
// First-fit by chronological order is the entire policy; an empty result
// yields ErrNoSlotsAvailable, which callers surface as "no available time"
// rather than a fault.
func SelectSlot(slots []models.Interval) (models.Interval, error) {
	if len(slots) == 0 {
		return models.Interval{}, ErrNoSlotsAvailable
	}
	return slots[0], nil
}
