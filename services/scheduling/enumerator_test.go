package scheduling

import (
	"testing"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayWindow(t *testing.T, startHour, endHour int) Window {
	t.Helper()
	w, err := NewWindow(pacific(t), startHour, endHour)
	require.NoError(t, err)
	return w
}

func TestFindAvailableSlotsFirstSlotInsideWindow(t *testing.T) {
	w := dayWindow(t, 5, 24)

	// 2025-01-06T00:00:00Z is 16:00 Pacific the previous evening, already
	// inside the window, so the very first candidate is free.
	rangeStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 60,
		RangeStart:      rangeStart,
		RangeEnd:        rangeStart.Add(6 * time.Hour),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	first := slots[0]
	assert.True(t, first.Start.Equal(rangeStart))
	assert.Equal(t, 16, first.Start.In(w.Location).Hour())
	assert.Equal(t, time.Hour, first.Duration())
}

func TestFindAvailableSlotsAroundBusyInterval(t *testing.T) {
	w := dayWindow(t, 5, 24)
	loc := w.Location

	// Busy 09:00-10:00 Pacific; searching from 08:30 with 30-minute slots
	// keeps 08:30 and 10:00, drops the two overlapping starts.
	busy := BusySet{{
		Start: time.Date(2025, 1, 6, 9, 0, 0, 0, loc),
		End:   time.Date(2025, 1, 6, 10, 0, 0, 0, loc),
	}}
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 30,
		RangeStart:      time.Date(2025, 1, 6, 8, 30, 0, 0, loc),
		RangeEnd:        time.Date(2025, 1, 6, 10, 30, 0, 0, loc),
		StepMinutes:     30,
	}, w, busy)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 1, 6, 8, 30, 0, 0, loc)))
	assert.True(t, slots[1].Start.Equal(time.Date(2025, 1, 6, 10, 0, 0, 0, loc)))
}

func TestFindAvailableSlotsFastForwardsPastMidnight(t *testing.T) {
	w := dayWindow(t, 5, 24)
	loc := w.Location

	// Starting at 23:50 local: nothing fits before the day closes, so the
	// first returned slot is at the next day's opening hour.
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 30,
		RangeStart:      time.Date(2025, 1, 6, 23, 50, 0, 0, loc),
		RangeEnd:        time.Date(2025, 1, 7, 12, 0, 0, 0, loc),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 1, 7, 5, 0, 0, 0, loc)))
}

func TestFindAvailableSlotsEndingExactlyAtMidnight(t *testing.T) {
	w := dayWindow(t, 5, 24)
	loc := w.Location

	// A slot ending exactly at midnight touches the window boundary and is
	// kept; with a 60-minute duration 23:00 is the last viable start.
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 60,
		RangeStart:      time.Date(2025, 1, 6, 22, 0, 0, 0, loc),
		RangeEnd:        time.Date(2025, 1, 7, 0, 0, 0, 0, loc),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)

	require.Len(t, slots, 3) // 22:00, 22:30, 23:00
	last := slots[len(slots)-1]
	assert.True(t, last.Start.Equal(time.Date(2025, 1, 6, 23, 0, 0, 0, loc)))
	assert.True(t, last.End.Equal(time.Date(2025, 1, 7, 0, 0, 0, 0, loc)))
}

func TestFindAvailableSlotsRoundsRangeStartUp(t *testing.T) {
	w := dayWindow(t, 5, 24)
	loc := w.Location

	// An unaligned range start is rounded up to the next step boundary.
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 30,
		RangeStart:      time.Date(2025, 1, 6, 9, 10, 0, 0, loc),
		RangeEnd:        time.Date(2025, 1, 6, 11, 0, 0, 0, loc),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 1, 6, 9, 30, 0, 0, loc)))

	// Rounding past minute 60 rolls into the next hour.
	slots, err = FindAvailableSlots(SearchRequest{
		DurationMinutes: 30,
		RangeStart:      time.Date(2025, 1, 6, 9, 45, 0, 0, loc),
		RangeEnd:        time.Date(2025, 1, 6, 11, 0, 0, 0, loc),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 1, 6, 10, 0, 0, 0, loc)))
}

func TestFindAvailableSlotsSpringForwardDay(t *testing.T) {
	w := dayWindow(t, 5, 24)
	loc := w.Location

	// 2025-03-09: Pacific clocks jump 02:00 PST -> 03:00 PDT. Starting the
	// search at local midnight, the enumerator fast-forwards to 05:00 PDT,
	// which is 12:00 UTC on the new -07 offset.
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 60,
		RangeStart:      time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
		RangeEnd:        time.Date(2025, 3, 9, 8, 0, 0, 0, loc),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	first := slots[0]
	assert.Equal(t, 5, first.Start.In(loc).Hour())
	assert.Equal(t, time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC), first.Start.UTC())
}

func TestFindAvailableSlotsFallBackDay(t *testing.T) {
	w := dayWindow(t, 5, 24)
	loc := w.Location

	// 2025-11-02: clocks fall back, 01:00-02:00 local occurs twice. The
	// opening slot lands on 05:00 PST, 13:00 UTC on the restored -08 offset.
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 60,
		RangeStart:      time.Date(2025, 11, 2, 0, 0, 0, 0, loc),
		RangeEnd:        time.Date(2025, 11, 2, 8, 0, 0, 0, loc),
		StepMinutes:     30,
	}, w, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	first := slots[0]
	assert.Equal(t, 5, first.Start.In(loc).Hour())
	assert.Equal(t, time.Date(2025, 11, 2, 13, 0, 0, 0, time.UTC), first.Start.UTC())
}

func TestFindAvailableSlotsProperties(t *testing.T) {
	w := dayWindow(t, 9, 17)
	loc := w.Location

	busy := BusySet{
		{Start: time.Date(2025, 1, 6, 10, 0, 0, 0, loc), End: time.Date(2025, 1, 6, 11, 30, 0, 0, loc)},
		{Start: time.Date(2025, 1, 7, 9, 0, 0, 0, loc), End: time.Date(2025, 1, 7, 12, 0, 0, 0, loc)},
		{Start: time.Date(2025, 1, 7, 14, 0, 0, 0, loc), End: time.Date(2025, 1, 7, 15, 0, 0, 0, loc)},
	}
	req := SearchRequest{
		DurationMinutes: 45,
		RangeStart:      time.Date(2025, 1, 6, 0, 0, 0, 0, loc),
		RangeEnd:        time.Date(2025, 1, 8, 0, 0, 0, 0, loc),
		StepMinutes:     30,
	}

	slots, err := FindAvailableSlots(req, w, busy)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i, slot := range slots {
		// Exact duration.
		assert.Equal(t, 45*time.Minute, slot.Duration())
		// Window containment on both ends.
		h := slot.Start.In(loc).Hour()
		assert.GreaterOrEqual(t, h, w.StartHour)
		assert.Less(t, h, w.EndHour)
		assert.LessOrEqual(t, w.endBoundaryHour(slot.Start, slot.End), w.EndHour)
		// No overlap with any busy interval.
		assert.False(t, busy.Conflicts(slot), "slot %v overlaps a busy interval", slot)
		// Ascending start order.
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(slot.Start))
		}
	}

	// Determinism: a second run returns the identical sequence.
	again, err := FindAvailableSlots(req, w, busy)
	require.NoError(t, err)
	assert.Equal(t, slots, again)
}

func TestFindAvailableSlotsEmptyOnFullOccupancy(t *testing.T) {
	w := dayWindow(t, 9, 17)
	loc := w.Location

	rangeStart := time.Date(2025, 1, 6, 9, 0, 0, 0, loc)
	rangeEnd := time.Date(2025, 1, 6, 17, 0, 0, 0, loc)
	busy := BusySet{{Start: rangeStart, End: rangeEnd}}

	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 30,
		RangeStart:      rangeStart,
		RangeEnd:        rangeEnd,
		StepMinutes:     30,
	}, w, busy)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = SelectSlot(slots)
	assert.ErrorIs(t, err, ErrNoSlotsAvailable)
}

func TestFindAvailableSlotsRespectsCandidateCap(t *testing.T) {
	w := dayWindow(t, 0, 24)
	loc := w.Location

	// Every candidate in an always-open window is free, so the cap alone
	// bounds the result even across a multi-year range.
	slots, err := FindAvailableSlots(SearchRequest{
		DurationMinutes: 30,
		RangeStart:      time.Date(2025, 1, 6, 0, 0, 0, 0, loc),
		RangeEnd:        time.Date(2030, 1, 6, 0, 0, 0, 0, loc),
		StepMinutes:     30,
		MaxCandidates:   10,
	}, w, nil)
	require.NoError(t, err)
	assert.Len(t, slots, 10)
}

func TestFindAvailableSlotsInvalidRequests(t *testing.T) {
	w := dayWindow(t, 5, 24)
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  SearchRequest
	}{
		{"zero duration", SearchRequest{DurationMinutes: 0, RangeStart: now, RangeEnd: now.Add(time.Hour)}},
		{"negative duration", SearchRequest{DurationMinutes: -15, RangeStart: now, RangeEnd: now.Add(time.Hour)}},
		{"range start equals end", SearchRequest{DurationMinutes: 30, RangeStart: now, RangeEnd: now}},
		{"range start after end", SearchRequest{DurationMinutes: 30, RangeStart: now.Add(time.Hour), RangeEnd: now}},
		{"negative step", SearchRequest{DurationMinutes: 30, RangeStart: now, RangeEnd: now.Add(time.Hour), StepMinutes: -30}},
		{"negative cap", SearchRequest{DurationMinutes: 30, RangeStart: now, RangeEnd: now.Add(time.Hour), MaxCandidates: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FindAvailableSlots(tc.req, w, nil)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestSearcherAppliesConfiguredDefaults(t *testing.T) {
	w := dayWindow(t, 5, 24)
	s := Searcher{Window: w, StepMinutes: 30, MaxCandidates: 500}

	rangeStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	slots, err := s.FindAvailableSlots(60, rangeStart, rangeStart.Add(4*time.Hour), nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Start.Equal(rangeStart))
}

func TestSelectSlotPicksEarliest(t *testing.T) {
	a := models.Interval{
		Start: time.Date(2025, 1, 6, 17, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC),
	}
	b := models.Interval{
		Start: time.Date(2025, 1, 6, 19, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC),
	}

	chosen, err := SelectSlot([]models.Interval{a, b})
	require.NoError(t, err)
	assert.Equal(t, a, chosen)
}
