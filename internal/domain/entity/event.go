// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the category of a generated notice.
type EventType string

const (
	// EventTypeNews is a weather-driven notice, at most one per calendar day.
	EventTypeNews EventType = "News"
	// EventTypeReminder is a watering reminder for a specific plant.
	EventTypeReminder EventType = "Reminder"
	// EventTypeTip is a short daily care tip, at most three per calendar day.
	EventTypeTip EventType = "Tip"
)

// String returns the string representation of the EventType.
func (t EventType) String() string {
	return string(t)
}

// IsValid checks if the EventType is a valid value.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeNews, EventTypeReminder, EventTypeTip:
		return true
	default:
		return false
	}
}

// Event is a timestamped notice shown to the user, attached to a region.
// News and Tip events store details as "emoji\ntitle\ndescription";
// Reminder events store a single description line.
type Event struct {
	ID        uuid.UUID
	RegionID  uuid.UUID
	Type      EventType
	EventDate time.Time
	Details   string
	MarkRead  bool // One-way flag, set by the mark-read transition.
	CreatedAt time.Time
}

// OccursOn reports whether the event is dated on the same calendar day as t,
// compared in t's location.
func (e *Event) OccursOn(t time.Time) bool {
	ey, em, ed := e.EventDate.In(t.Location()).Date()
	ty, tm, td := t.Date()

	return ey == ty && em == tm && ed == td
}
