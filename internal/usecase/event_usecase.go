package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SookX/Demeter/internal/domain/entity"
)

// AddEventInput defines the data required to manually add an event.
type AddEventInput struct {
	Type      entity.EventType
	Details   string
	EventDate *time.Time // Defaults to now when nil.
}

// EventsOutput is the region's event feed.
type EventsOutput struct {
	LastCreated *time.Time     `json:"last_created"`
	Events      []entity.Event `json:"event_list"`
}

// EventUsecase defines the interface for the event feed and its generators.
type EventUsecase interface {
	// ListEvents returns the region's events in insertion order.
	ListEvents(ctx context.Context, userID uuid.UUID) (*EventsOutput, error)

	// AddEvent appends a manually created event.
	AddEvent(ctx context.Context, userID uuid.UUID, input *AddEventInput) (*entity.Event, error)

	// MarkRead flips the one-way read flag on an event.
	MarkRead(ctx context.Context, userID, eventID uuid.UUID) error

	// GenerateNews derives weather notices from the forecast, at most one
	// per calendar day, and returns the newly inserted events.
	GenerateNews(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)

	// GenerateReminders creates watering reminders for the three most
	// urgent plants, skipping plants already reminded today.
	GenerateReminders(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)

	// GenerateTips tops the day up to three care tips.
	GenerateTips(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
}
