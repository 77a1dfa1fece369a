package repository

import (
	"context"
	"errors"

	"github.com/SookX/Demeter/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRegionNotFound is returned when a user has not selected a region yet.
var ErrRegionNotFound = errors.New("region not found")

// RegionRepository defines persistence operations for a user's region profile.
type RegionRepository interface {
	// FindByUserID retrieves the region owned by the given user, including
	// its plant and event collections in insertion order.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Region, error)

	// Upsert creates the user's region or replaces its scalar profile
	// (coordinates, soil, climate) while preserving the owned plant and
	// event collections.
	Upsert(ctx context.Context, region *entity.Region) error
}
