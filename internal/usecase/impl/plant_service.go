package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

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

const recommendationSystemPrompt = "You are a gardening assistant. Given a " +
	"region's soil and climate, suggest plants that will thrive there. " +
	"Answer with a comma-separated list of plant names only, no explanation."

// plantService implements the PlantUsecase interface.
type plantService struct {
	regionRepo  repository.RegionRepository
	plantRepo   repository.PlantRepository
	taxonomy    service.TaxonomyProvider
	completions service.CompletionProvider
	scheduler   *wateringScheduler
	now         func() time.Time
	logger      *slog.Logger
}

// PlantServiceParams holds dependencies for plantService, injected by Fx.
type PlantServiceParams struct {
	fx.In

	RegionRepo  repository.RegionRepository
	PlantRepo   repository.PlantRepository
	Taxonomy    service.TaxonomyProvider
	Completions service.CompletionProvider
	Logger      *slog.Logger
}

// NewPlantService is the constructor for plantService.
func NewPlantService(params PlantServiceParams) usecase.PlantUsecase {
	return &plantService{
		regionRepo:  params.RegionRepo,
		plantRepo:   params.PlantRepo,
		taxonomy:    params.Taxonomy,
		completions: params.Completions,
		scheduler:   newWateringScheduler(params.Completions, params.Logger),
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *plantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddPlant registers a plant in the caller's region. A new plant is
// considered due for watering one day after planting.
func (srv *plantService) AddPlant(ctx context.Context, userID uuid.UUID, input *usecase.AddPlantInput) (*entity.Plant, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.ScientificName) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name and scientificName are required")
	}

	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	next := now.Add(fallbackWateringInterval)
	plant := &entity.Plant{
		RegionID:       region.ID,
		Name:           input.Name,
		ScientificName: input.ScientificName,
		Family:         input.Family,
		TaxonomyRefID:  input.TaxonomyRefID,
		Slug:           input.Slug,
		ImageURL:       input.ImageURL,
		PlantedAt:      now,
		LastWateredAt:  nil,
		NextWateringAt: &next,
	}

	if err := srv.plantRepo.CreatePlant(ctx, plant); err != nil {
		return nil, errors.Wrap(err, "failed to create plant")
	}

	srv.log(ctx).Info("Plant added", slog.Any("plantID", plant.ID), slog.String("name", plant.Name))

	return plant, nil
}

// ListPlants returns the region's plants in insertion order.
func (srv *plantService) ListPlants(ctx context.Context, userID uuid.UUID) ([]entity.Plant, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	plants, err := srv.plantRepo.FindByRegion(ctx, region.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list plants")
	}

	return plants, nil
}

// RecordWatering appends a watering record and reschedules the plant through
// the scheduler. The plant is returned with its updated schedule.
func (srv *plantService) RecordWatering(ctx context.Context, userID uuid.UUID, input *usecase.RecordWateringInput) (*entity.Plant, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	plant, err := srv.plantRepo.FindByID(ctx, input.PlantID)
	if err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			return nil, domainerrors.ErrPlantNotFound
		}

		return nil, errors.Wrap(err, "failed to load plant")
	}

	// A plant id from another user's region is indistinguishable from a
	// missing one.
	if plant.RegionID != region.ID {
		return nil, domainerrors.ErrPlantNotFound
	}

	now := srv.now()
	watering := &entity.Watering{
		PlantID:   plant.ID,
		WateredAt: now,
		Amount:    input.Amount,
		Note:      input.Note,
	}

	next := srv.scheduler.Next(ctx, plant, region, watering, eventsOn(region.Events, now))

	if err := srv.plantRepo.AppendWatering(ctx, plant.ID, watering, now, next); err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			return nil, domainerrors.ErrPlantNotFound
		}

		return nil, errors.Wrap(err, "failed to record watering")
	}

	plant.Waterings = append(plant.Waterings, *watering)
	plant.LastWateredAt = &now
	plant.NextWateringAt = &next

	srv.log(ctx).Info("Watering recorded",
		slog.Any("plantID", plant.ID),
		slog.Time("nextWateringAt", next),
	)

	return plant, nil
}

// ListNeedingWater returns the region's plants sorted by ascending watering
// due date, with unscheduled plants last.
func (srv *plantService) ListNeedingWater(ctx context.Context, userID uuid.UUID) ([]entity.Plant, error) {
	plants, err := srv.ListPlants(ctx, userID)
	if err != nil {
		return nil, err
	}

	sortByUrgency(plants)

	return plants, nil
}

// Search proxies the taxonomy catalogue verbatim.
func (srv *plantService) Search(ctx context.Context, query string) ([]service.TaxonomyResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("query is required")
	}

	results, err := srv.taxonomy.Search(ctx, query)
	if err != nil {
		srv.log(ctx).Error("Taxonomy search failed", slog.String("query", query), slog.Any("error", err))

		return nil, err
	}

	return results, nil
}

// Recommendations asks the completion provider for plant names suited to the
// region's soil and climate.
func (srv *plantService) Recommendations(ctx context.Context, userID uuid.UUID) ([]string, error) {
	region, err := srv.loadRegion(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !region.HasSoilData() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("region has no soil data yet")
	}

	prompt := fmt.Sprintf(
		"Soil type: %s\nClimate: %s (%s)\nAlready growing: %s\nWhich plants would thrive in this region?",
		region.SoilType,
		valueOrUnknown(region.Climate.ZoneDescription),
		valueOrUnknown(region.Climate.KoppenGeigerZone),
		joinOrNone(region.PlantNames()),
	)

	raw, err := srv.completions.Complete(ctx, service.CompletionRequest{
		SystemPrompt: recommendationSystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    256,
		Temperature:  0.7,
	})
	if err != nil {
		srv.log(ctx).Error("Recommendation completion failed", slog.Any("error", err))

		return nil, err
	}

	names := splitRecommendations(raw)
	if len(names) == 0 {
		return nil, domainerrors.ErrCompletionParse.WrapMessage("no plant names in completion")
	}

	return names, nil
}

func (srv *plantService) loadRegion(ctx context.Context, userID uuid.UUID) (*entity.Region, error) {
	region, err := srv.regionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegionNotFound) {
			return nil, domainerrors.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to load region")
	}

	return region, nil
}

// sortByUrgency orders plants by ascending due date. Plants without a
// schedule sort last, keeping their relative insertion order.
func sortByUrgency(plants []entity.Plant) {
	sort.SliceStable(plants, func(i, j int) bool {
		a, b := plants[i].NextWateringAt, plants[j].NextWateringAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// eventsOn filters events dated on the same calendar day as t.
func eventsOn(events []entity.Event, t time.Time) []entity.Event {
	matched := make([]entity.Event, 0, len(events))
	for i := range events {
		if events[i].OccursOn(t) {
			matched = append(matched, events[i])
		}
	}

	return matched
}

// splitRecommendations parses a comma-separated completion into plant names.
func splitRecommendations(raw string) []string {
	names := make([]string, 0, 8)
	for _, part := range strings.Split(raw, ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'.`)
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, ", ")
}
