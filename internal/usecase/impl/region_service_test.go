package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	mockRepo "github.com/SookX/Demeter/internal/mocks/repository"
	mockSvc "github.com/SookX/Demeter/internal/mocks/service"
	"github.com/SookX/Demeter/internal/usecase"
)

type regionServiceFixture struct {
	service    usecase.RegionUsecase
	regionRepo *mockRepo.MockRegionRepository
	soil       *mockSvc.MockSoilProvider
	climate    *mockSvc.MockClimateProvider
	userID     uuid.UUID
}

func newRegionServiceFixture(t *testing.T) *regionServiceFixture {
	t.Helper()

	f := &regionServiceFixture{
		regionRepo: &mockRepo.MockRegionRepository{},
		soil:       &mockSvc.MockSoilProvider{},
		climate:    &mockSvc.MockClimateProvider{},
		userID:     uuid.New(),
	}

	f.service = NewRegionService(RegionServiceParams{
		RegionRepo:      f.regionRepo,
		SoilProvider:    f.soil,
		ClimateProvider: f.climate,
		Logger:          newDiscardLogger(),
	})

	return f
}

func TestRegionService_GetRegion(t *testing.T) {
	f := newRegionServiceFixture(t)

	region := &entity.Region{ID: uuid.New(), UserID: f.userID, SoilType: "Luvisols"}
	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(region, nil)

	got, err := f.service.GetRegion(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, region, got)
}

func TestRegionService_GetRegionNotSet(t *testing.T) {
	f := newRegionServiceFixture(t)

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).
		Return(nil, repository.ErrRegionNotFound)

	_, err := f.service.GetRegion(context.Background(), f.userID)
	assert.ErrorIs(t, err, domainerrors.ErrRegionNotFound)
}

func TestRegionService_SetRegionEnriches(t *testing.T) {
	f := newRegionServiceFixture(t)

	f.soil.On("SoilType", mock.Anything, 42.6977, 23.3219).Return("Luvisols", nil)
	f.climate.On("Classify", mock.Anything, 42.6977, 23.3219).
		Return(&entity.Climate{KoppenGeigerZone: "Cfb", ZoneDescription: "Marine west coast, warm summer"}, nil)
	f.regionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *entity.Region) bool {
		return r.UserID == f.userID && r.SoilType == "Luvisols" && r.Climate.KoppenGeigerZone == "Cfb"
	})).Return(nil)

	region, err := f.service.SetRegion(context.Background(), f.userID, &usecase.SetRegionInput{
		Latitude:  42.6977,
		Longitude: 23.3219,
	})
	require.NoError(t, err)

	assert.Equal(t, 42.6977, region.Latitude)
	assert.Equal(t, 23.3219, region.Longitude)
	assert.Equal(t, "Luvisols", region.SoilType)
	assert.Equal(t, "Marine west coast, warm summer", region.Climate.ZoneDescription)
}

func TestRegionService_SetRegionSoilLookupFails(t *testing.T) {
	f := newRegionServiceFixture(t)

	f.soil.On("SoilType", mock.Anything, 1.0, 2.0).
		Return("", domainerrors.ErrUpstreamFailed)

	_, err := f.service.SetRegion(context.Background(), f.userID, &usecase.SetRegionInput{
		Latitude:  1.0,
		Longitude: 2.0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailed)
	f.regionRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRegionService_SetRegionClimateLookupFails(t *testing.T) {
	f := newRegionServiceFixture(t)

	f.soil.On("SoilType", mock.Anything, 1.0, 2.0).Return("Luvisols", nil)
	f.climate.On("Classify", mock.Anything, 1.0, 2.0).
		Return(nil, domainerrors.ErrUpstreamFailed)

	_, err := f.service.SetRegion(context.Background(), f.userID, &usecase.SetRegionInput{
		Latitude:  1.0,
		Longitude: 2.0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailed)
	f.regionRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRegionService_SetRegionConcurrentCreate(t *testing.T) {
	f := newRegionServiceFixture(t)

	f.soil.On("SoilType", mock.Anything, 1.0, 2.0).Return("Luvisols", nil)
	f.climate.On("Classify", mock.Anything, 1.0, 2.0).
		Return(&entity.Climate{KoppenGeigerZone: "Cfb"}, nil)
	f.regionRepo.On("Upsert", mock.Anything, mock.Anything).
		Return(domainerrors.ErrConcurrentUpdate)

	_, err := f.service.SetRegion(context.Background(), f.userID, &usecase.SetRegionInput{
		Latitude:  1.0,
		Longitude: 2.0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrConcurrentUpdate)
}
