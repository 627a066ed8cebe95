package models

import "time"

// Task statuses.
const (
	TaskStatusScheduled = "scheduled"
	TaskStatusCancelled = "cancelled"
)

// Task is a scheduled piece of work booked onto the user's calendar.
type Task struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	ScheduledStart  time.Time `bson:"scheduledStart" json:"scheduledStart"`
	ScheduledEnd    time.Time `bson:"scheduledEnd" json:"scheduledEnd"`
	CalendarEventID string    `bson:"calendarEventId,omitempty" json:"calendarEventId,omitempty"`
	CalendarLink    string    `bson:"calendarLink,omitempty" json:"calendarLink,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// Booking is the calendar gateway's receipt for a created event.
type Booking struct {
	EventID string `json:"eventId"`
	Link    string `json:"link"`
}
