package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	"github.com/SookX/Demeter/internal/infra/persistence/model"
)

// regionRepository implements the repository.RegionRepository interface.
type regionRepository struct {
	db *gorm.DB
}

// NewRegionRepository is the constructor for regionRepository.
func NewRegionRepository(db *gorm.DB) repository.RegionRepository {
	return &regionRepository{
		db: db,
	}
}

// FindByUserID retrieves the region owned by the given user, including its
// plant and event collections in insertion order.
func (repo *regionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Region, error) {
	var regionM model.RegionModel

	if err := repo.db.WithContext(ctx).
		Preload("Plants", func(db *gorm.DB) *gorm.DB {
			return db.Order("plants.created_at ASC")
		}).
		Preload("Plants.Waterings", func(db *gorm.DB) *gorm.DB {
			return db.Order("waterings.watered_at ASC")
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("events.created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&regionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to find region by user ID")
	}

	return toRegionDomain(&regionM), nil
}

// Upsert creates the user's region or replaces its scalar profile while
// preserving the owned plant and event collections.
func (repo *regionRepository) Upsert(ctx context.Context, region *entity.Region) error {
	var existing model.RegionModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ?", region.UserID).
		First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed to look up region for upsert")
		}

		regionM := fromRegionDomain(region)
		if createErr := repo.db.WithContext(ctx).Create(regionM).Error; createErr != nil {
			if isForeignKeyConstraintViolation(createErr) {
				return domainerrors.ErrRegionNotFound.WrapMessage("invalid user reference")
			}
			if isUniqueConstraintViolation(createErr) {
				// Another request created the region concurrently.
				return domainerrors.ErrConcurrentUpdate.WrapMessage("region already exists for user")
			}

			return domainerrors.NewDatabaseExecuteError(createErr, "failed to create region")
		}

		region.ID = regionM.ID
		region.CreatedAt = regionM.CreatedAt
		region.UpdatedAt = regionM.UpdatedAt

		return nil
	}

	// Only the scalar profile is replaced. Plants, events, the generation
	// marker and the version counter survive a relocation.
	result := repo.db.WithContext(ctx).
		Model(&model.RegionModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"latitude":           region.Latitude,
			"longitude":          region.Longitude,
			"soil_type":          region.SoilType,
			"koppen_geiger_zone": region.Climate.KoppenGeigerZone,
			"zone_description":   region.Climate.ZoneDescription,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update region")
	}

	region.ID = existing.ID
	region.EventsLastCreated = existing.EventsLastCreatedAt
	region.Version = existing.Version
	region.CreatedAt = existing.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toRegionDomain converts a GORM RegionModel to a domain Region entity.
func toRegionDomain(data *model.RegionModel) *entity.Region {
	if data == nil {
		return nil
	}

	plants := make([]entity.Plant, 0, len(data.Plants))
	for i := range data.Plants {
		plants = append(plants, *toPlantDomain(&data.Plants[i]))
	}

	events := make([]entity.Event, 0, len(data.Events))
	for i := range data.Events {
		events = append(events, *toEventDomain(&data.Events[i]))
	}

	return &entity.Region{
		ID:        data.ID,
		UserID:    data.UserID,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		SoilType:  data.SoilType,
		Climate: entity.Climate{
			KoppenGeigerZone: data.KoppenGeigerZone,
			ZoneDescription:  data.ZoneDescription,
		},
		EventsLastCreated: data.EventsLastCreatedAt,
		Version:           data.Version,
		Plants:            plants,
		Events:            events,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromRegionDomain converts a domain Region entity to a GORM RegionModel.
// Collections are persisted through their own repositories.
func fromRegionDomain(data *entity.Region) *model.RegionModel {
	if data == nil {
		return nil
	}

	return &model.RegionModel{
		ID:                  data.ID,
		UserID:              data.UserID,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		SoilType:            data.SoilType,
		KoppenGeigerZone:    data.Climate.KoppenGeigerZone,
		ZoneDescription:     data.Climate.ZoneDescription,
		EventsLastCreatedAt: data.EventsLastCreated,
		Version:             data.Version,
	}
}
