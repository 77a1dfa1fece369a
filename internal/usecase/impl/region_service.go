package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/SookX/Demeter/internal/delivery/context"
	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	"github.com/SookX/Demeter/internal/domain/service"
	"github.com/SookX/Demeter/internal/usecase"
)

// regionService implements the RegionUsecase interface.
type regionService struct {
	regionRepo      repository.RegionRepository
	soilProvider    service.SoilProvider
	climateProvider service.ClimateProvider
	logger          *slog.Logger
}

// RegionServiceParams holds dependencies for regionService, injected by Fx.
type RegionServiceParams struct {
	fx.In

	RegionRepo      repository.RegionRepository
	SoilProvider    service.SoilProvider
	ClimateProvider service.ClimateProvider
	Logger          *slog.Logger
}

// NewRegionService is the constructor for regionService.
func NewRegionService(params RegionServiceParams) usecase.RegionUsecase {
	return &regionService{
		regionRepo:      params.RegionRepo,
		soilProvider:    params.SoilProvider,
		climateProvider: params.ClimateProvider,
		logger:          params.Logger,
	}
}

func (srv *regionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetRegion returns the caller's region or ErrRegionNotFound when unset.
func (srv *regionService) GetRegion(ctx context.Context, userID uuid.UUID) (*entity.Region, error) {
	region, err := srv.regionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, domainerrors.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to load region")
	}

	return region, nil
}

// SetRegion enriches the coordinate pair with soil and climate classifications
// and upserts the caller's region. A relocation keeps the existing plants and
// events.
func (srv *regionService) SetRegion(ctx context.Context, userID uuid.UUID, input *usecase.SetRegionInput) (*entity.Region, error) {
	srv.log(ctx).Info("Setting region",
		slog.Any("userID", userID),
		slog.Float64("lat", input.Latitude),
		slog.Float64("lon", input.Longitude),
	)

	soilType, err := srv.soilProvider.SoilType(ctx, input.Latitude, input.Longitude)
	if err != nil {
		srv.log(ctx).Error("Soil lookup failed", slog.Any("error", err))

		return nil, err
	}

	climate, err := srv.climateProvider.Classify(ctx, input.Latitude, input.Longitude)
	if err != nil {
		srv.log(ctx).Error("Climate lookup failed", slog.Any("error", err))

		return nil, err
	}

	region := &entity.Region{
		UserID:    userID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		SoilType:  soilType,
		Climate:   *climate,
	}

	if err := srv.regionRepo.Upsert(ctx, region); err != nil {
		return nil, errors.Wrap(err, "failed to upsert region")
	}

	srv.log(ctx).Debug("Region set",
		slog.Any("regionID", region.ID),
		slog.String("soilType", soilType),
		slog.String("zone", climate.KoppenGeigerZone),
	)

	return region, nil
}
