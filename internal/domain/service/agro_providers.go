package service

import (
	"context"

	"github.com/SookX/Demeter/internal/domain/entity"
)

// SoilProvider is the interface over the external soil classification service.
type SoilProvider interface {
	// SoilType returns the most probable soil classification for the
	// coordinate pair, e.g. "Cambisols".
	SoilType(ctx context.Context, lat, lon float64) (string, error)
}

// ClimateProvider is the interface over the external climate zone service.
type ClimateProvider interface {
	// Classify returns the Köppen-Geiger classification for the coordinate pair.
	Classify(ctx context.Context, lat, lon float64) (*entity.Climate, error)
}
