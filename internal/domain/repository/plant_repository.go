package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SookX/Demeter/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPlantNotFound is returned when a plant id does not exist in the region.
var ErrPlantNotFound = errors.New("plant not found")

// PlantRepository defines persistence operations for plants and their
// append-only watering history.
type PlantRepository interface {
	// CreatePlant persists a new plant under its region.
	CreatePlant(ctx context.Context, plant *entity.Plant) error

	// FindByRegion retrieves all plants of a region in insertion order,
	// including their watering records.
	FindByRegion(ctx context.Context, regionID uuid.UUID) ([]entity.Plant, error)

	// FindByID retrieves a single plant with its watering records.
	FindByID(ctx context.Context, plantID uuid.UUID) (*entity.Plant, error)

	// AppendWatering appends a watering record to the plant and updates the
	// plant's lastWateredAt/nextWateringAt fields in the same transaction.
	// Watering records are append-only; existing rows are never touched.
	AppendWatering(ctx context.Context, plantID uuid.UUID, watering *entity.Watering, lastWateredAt, nextWateringAt time.Time) error
}
