package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SookX/Demeter/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when an event id does not exist in the region.
var ErrEventNotFound = errors.New("event not found")

// ErrRegionVersionConflict is returned when an event batch append loses the
// optimistic-concurrency race against another generation call.
var ErrRegionVersionConflict = errors.New("region version conflict")

// EventRepository defines persistence operations for the region-scoped event
// collection.
type EventRepository interface {
	// FindByRegion retrieves all events of a region in insertion order.
	FindByRegion(ctx context.Context, regionID uuid.UUID) ([]entity.Event, error)

	// AppendEvents appends a generation batch and stamps the region's
	// events.last_created marker, guarded by the region version read when
	// the batch was computed. A stale version yields ErrRegionVersionConflict
	// and no partial insert.
	AppendEvents(ctx context.Context, regionID uuid.UUID, version int64, events []entity.Event, lastCreated time.Time) error

	// MarkEventRead flips the one-way markRead flag on an event owned by
	// the region.
	MarkEventRead(ctx context.Context, regionID, eventID uuid.UUID) error
}
