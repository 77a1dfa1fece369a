package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	"github.com/SookX/Demeter/internal/domain/service"
	mockRepo "github.com/SookX/Demeter/internal/mocks/repository"
	mockSvc "github.com/SookX/Demeter/internal/mocks/service"
	"github.com/SookX/Demeter/internal/usecase"
)

type plantServiceFixture struct {
	service     *plantService
	regionRepo  *mockRepo.MockRegionRepository
	plantRepo   *mockRepo.MockPlantRepository
	taxonomy    *mockSvc.MockTaxonomyProvider
	completions *mockSvc.MockCompletionProvider
	now         time.Time
	userID      uuid.UUID
	region      *entity.Region
}

func newPlantServiceFixture(t *testing.T) *plantServiceFixture {
	t.Helper()

	f := &plantServiceFixture{
		regionRepo:  &mockRepo.MockRegionRepository{},
		plantRepo:   &mockRepo.MockPlantRepository{},
		taxonomy:    &mockSvc.MockTaxonomyProvider{},
		completions: &mockSvc.MockCompletionProvider{},
		now:         time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		userID:      uuid.New(),
	}
	f.region = &entity.Region{
		ID:       uuid.New(),
		UserID:   f.userID,
		SoilType: "Luvisols",
		Climate:  entity.Climate{KoppenGeigerZone: "Cfb", ZoneDescription: "Marine west coast"},
	}

	svc := NewPlantService(PlantServiceParams{
		RegionRepo:  f.regionRepo,
		PlantRepo:   f.plantRepo,
		Taxonomy:    f.taxonomy,
		Completions: f.completions,
		Logger:      newDiscardLogger(),
	})

	f.service = svc.(*plantService)
	f.service.now = func() time.Time { return f.now }

	return f
}

func TestPlantService_AddPlant(t *testing.T) {
	f := newPlantServiceFixture(t)

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.plantRepo.On("CreatePlant", mock.Anything, mock.AnythingOfType("*entity.Plant")).Return(nil)

	plant, err := f.service.AddPlant(context.Background(), f.userID, &usecase.AddPlantInput{
		Name:           "Basil",
		ScientificName: "Ocimum basilicum",
		Family:         "Lamiaceae",
	})
	require.NoError(t, err)

	assert.Equal(t, f.region.ID, plant.RegionID)
	assert.Equal(t, f.now, plant.PlantedAt)
	assert.Nil(t, plant.LastWateredAt)
	require.NotNil(t, plant.NextWateringAt)
	assert.Equal(t, f.now.Add(24*time.Hour), *plant.NextWateringAt)
}

func TestPlantService_AddPlantRequiresNames(t *testing.T) {
	f := newPlantServiceFixture(t)

	_, err := f.service.AddPlant(context.Background(), f.userID, &usecase.AddPlantInput{
		Name:           "  ",
		ScientificName: "Ocimum basilicum",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.plantRepo.AssertNotCalled(t, "CreatePlant", mock.Anything, mock.Anything)
}

func TestPlantService_AddPlantWithoutRegion(t *testing.T) {
	f := newPlantServiceFixture(t)

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).
		Return(nil, repository.ErrRegionNotFound)

	_, err := f.service.AddPlant(context.Background(), f.userID, &usecase.AddPlantInput{
		Name:           "Basil",
		ScientificName: "Ocimum basilicum",
	})
	assert.ErrorIs(t, err, domainerrors.ErrRegionNotFound)
}

func TestPlantService_RecordWatering(t *testing.T) {
	f := newPlantServiceFixture(t)

	plant := &entity.Plant{ID: uuid.New(), RegionID: f.region.ID, Name: "Basil", ScientificName: "Ocimum basilicum"}
	predicted := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.plantRepo.On("FindByID", mock.Anything, plant.ID).Return(plant, nil)
	f.completions.On("Complete", mock.Anything, mock.Anything).Return(predicted.Format(time.RFC3339), nil)
	f.plantRepo.On("AppendWatering", mock.Anything, plant.ID, mock.AnythingOfType("*entity.Watering"), f.now, predicted).
		Return(nil)

	updated, err := f.service.RecordWatering(context.Background(), f.userID, &usecase.RecordWateringInput{
		PlantID: plant.ID,
		Amount:  0.5,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.LastWateredAt)
	assert.Equal(t, f.now, *updated.LastWateredAt)
	require.NotNil(t, updated.NextWateringAt)
	assert.Equal(t, predicted, *updated.NextWateringAt)
	require.Len(t, updated.Waterings, 1)
	assert.Equal(t, 0.5, updated.Waterings[0].Amount)
}

func TestPlantService_RecordWateringFallsBackToOneDay(t *testing.T) {
	f := newPlantServiceFixture(t)

	plant := &entity.Plant{ID: uuid.New(), RegionID: f.region.ID, Name: "Basil", ScientificName: "Ocimum basilicum"}

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.plantRepo.On("FindByID", mock.Anything, plant.ID).Return(plant, nil)
	f.completions.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("model unavailable"))
	f.plantRepo.On("AppendWatering", mock.Anything, plant.ID, mock.AnythingOfType("*entity.Watering"), f.now, f.now.Add(24*time.Hour)).
		Return(nil)

	updated, err := f.service.RecordWatering(context.Background(), f.userID, &usecase.RecordWateringInput{
		PlantID: plant.ID,
		Amount:  1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, f.now.Add(24*time.Hour), *updated.NextWateringAt)
}

func TestPlantService_RecordWateringForeignPlant(t *testing.T) {
	f := newPlantServiceFixture(t)

	// Plant belongs to somebody else's region.
	plant := &entity.Plant{ID: uuid.New(), RegionID: uuid.New(), Name: "Basil"}

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.plantRepo.On("FindByID", mock.Anything, plant.ID).Return(plant, nil)

	_, err := f.service.RecordWatering(context.Background(), f.userID, &usecase.RecordWateringInput{
		PlantID: plant.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrPlantNotFound)
	f.plantRepo.AssertNotCalled(t, "AppendWatering", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlantService_ListNeedingWater(t *testing.T) {
	f := newPlantServiceFixture(t)

	soon := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	plants := []entity.Plant{
		{Name: "Unscheduled"},
		{Name: "Later", NextWateringAt: &later},
		{Name: "Soon", NextWateringAt: &soon},
	}

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.plantRepo.On("FindByRegion", mock.Anything, f.region.ID).Return(plants, nil)

	sorted, err := f.service.ListNeedingWater(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, sorted, 3)

	assert.Equal(t, "Soon", sorted[0].Name)
	assert.Equal(t, "Later", sorted[1].Name)
	assert.Equal(t, "Unscheduled", sorted[2].Name)
}

func TestPlantService_SearchRequiresQuery(t *testing.T) {
	f := newPlantServiceFixture(t)

	_, err := f.service.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.taxonomy.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestPlantService_Search(t *testing.T) {
	f := newPlantServiceFixture(t)

	results := []service.TaxonomyResult{{CommonName: "Basil", ScientificName: "Ocimum basilicum"}}
	f.taxonomy.On("Search", mock.Anything, "basil").Return(results, nil)

	got, err := f.service.Search(context.Background(), "basil")
	require.NoError(t, err)
	assert.Equal(t, results, got)
}

func TestPlantService_Recommendations(t *testing.T) {
	f := newPlantServiceFixture(t)

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.completions.On("Complete", mock.Anything, mock.Anything).
		Return("Tomato, Basil, 'Swiss Chard', ", nil)

	names, err := f.service.Recommendations(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato", "Basil", "Swiss Chard"}, names)
}

func TestPlantService_RecommendationsNeedSoilData(t *testing.T) {
	f := newPlantServiceFixture(t)

	f.region.SoilType = ""
	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)

	_, err := f.service.Recommendations(context.Background(), f.userID)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.completions.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestPlantService_RecommendationsEmptyCompletion(t *testing.T) {
	f := newPlantServiceFixture(t)

	f.regionRepo.On("FindByUserID", mock.Anything, f.userID).Return(f.region, nil)
	f.completions.On("Complete", mock.Anything, mock.Anything).Return(" , , ", nil)

	_, err := f.service.Recommendations(context.Background(), f.userID)
	assert.ErrorIs(t, err, domainerrors.ErrCompletionParse)
}
