package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/SookX/Demeter/internal/domain/entity"
)

// SetRegionInput defines the coordinate pair for region selection.
type SetRegionInput struct {
	Latitude  float64
	Longitude float64
}

// RegionUsecase defines the interface for region profile operations.
type RegionUsecase interface {
	// GetRegion returns the caller's region with its plant and event
	// collections, or ErrRegionNotFound when none has been selected.
	GetRegion(ctx context.Context, userID uuid.UUID) (*entity.Region, error)

	// SetRegion enriches the coordinate pair with soil and climate
	// classifications and upserts the caller's region. Existing plants
	// and events survive a relocation.
	SetRegion(ctx context.Context, userID uuid.UUID, input *SetRegionInput) (*entity.Region, error)
}
