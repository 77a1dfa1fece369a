package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/domain/service"
)

// AddPlantInput defines the data required to register a plant.
// Name and ScientificName are mandatory; the taxonomy fields are optional
// and usually copied from a prior catalogue search.
type AddPlantInput struct {
	Name           string
	ScientificName string
	Family         string
	TaxonomyRefID  int
	Slug           string
	ImageURL       string
}

// RecordWateringInput defines the data required to record an irrigation.
type RecordWateringInput struct {
	PlantID uuid.UUID
	Amount  float64
	Note    string
}

// PlantUsecase defines the interface for plant registry operations.
type PlantUsecase interface {
	// AddPlant registers a plant in the caller's region with the
	// deterministic scheduling defaults.
	AddPlant(ctx context.Context, userID uuid.UUID, input *AddPlantInput) (*entity.Plant, error)

	// ListPlants returns the region's plants in insertion order.
	ListPlants(ctx context.Context, userID uuid.UUID) ([]entity.Plant, error)

	// RecordWatering appends a watering record and reschedules the plant's
	// next watering via the scheduler.
	RecordWatering(ctx context.Context, userID uuid.UUID, input *RecordWateringInput) (*entity.Plant, error)

	// ListNeedingWater returns the region's plants sorted by ascending
	// watering due date, with unscheduled plants last.
	ListNeedingWater(ctx context.Context, userID uuid.UUID) ([]entity.Plant, error)

	// Search proxies the taxonomy catalogue verbatim.
	Search(ctx context.Context, query string) ([]service.TaxonomyResult, error)

	// Recommendations asks the completion provider for plant names suited
	// to the region's soil and climate.
	Recommendations(ctx context.Context, userID uuid.UUID) ([]string, error)
}
