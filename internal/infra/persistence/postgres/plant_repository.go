package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	"github.com/SookX/Demeter/internal/infra/persistence/model"
)

// plantRepository implements the repository.PlantRepository interface.
type plantRepository struct {
	db *gorm.DB
}

// NewPlantRepository is the constructor for plantRepository.
func NewPlantRepository(db *gorm.DB) repository.PlantRepository {
	return &plantRepository{
		db: db,
	}
}

// CreatePlant persists a new plant under its region.
func (repo *plantRepository) CreatePlant(ctx context.Context, plant *entity.Plant) error {
	plantM := fromPlantDomain(plant)

	if err := repo.db.WithContext(ctx).Create(plantM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRegionNotFound.WrapMessage("invalid region reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required plant information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create plant")
	}

	// Update the entity with generated values
	plant.ID = plantM.ID
	plant.CreatedAt = plantM.CreatedAt

	return nil
}

// FindByRegion retrieves all plants of a region in insertion order,
// including their watering records.
func (repo *plantRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]entity.Plant, error) {
	var plantModels []model.PlantModel

	if err := repo.db.WithContext(ctx).
		Preload("Waterings", func(db *gorm.DB) *gorm.DB {
			return db.Order("waterings.watered_at ASC")
		}).
		Where("region_id = ?", regionID).
		Order("created_at ASC").
		Find(&plantModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find plants by region")
	}

	plants := make([]entity.Plant, 0, len(plantModels))
	for i := range plantModels {
		plants = append(plants, *toPlantDomain(&plantModels[i]))
	}

	return plants, nil
}

// FindByID retrieves a single plant with its watering records.
func (repo *plantRepository) FindByID(ctx context.Context, plantID uuid.UUID) (*entity.Plant, error) {
	var plantM model.PlantModel

	if err := repo.db.WithContext(ctx).
		Preload("Waterings", func(db *gorm.DB) *gorm.DB {
			return db.Order("waterings.watered_at ASC")
		}).
		Where("id = ?", plantID).
		First(&plantM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlantNotFound
		}

		return nil, errors.Wrap(err, "failed to find plant by ID")
	}

	return toPlantDomain(&plantM), nil
}

// AppendWatering appends a watering record and updates the plant's schedule
// fields in a single transaction. Watering rows are append-only.
func (repo *plantRepository) AppendWatering(ctx context.Context, plantID uuid.UUID, watering *entity.Watering, lastWateredAt, nextWateringAt time.Time) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wateringM := fromWateringDomain(watering)
		wateringM.PlantID = plantID

		if err := tx.Create(wateringM).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrPlantNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to append watering")
		}

		result := tx.
			Model(&model.PlantModel{}).
			Where("id = ?", plantID).
			Updates(map[string]interface{}{
				"last_watered_at":  lastWateredAt,
				"next_watering_at": nextWateringAt,
			})

		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update watering schedule")
		}
		if result.RowsAffected == 0 {
			return repository.ErrPlantNotFound
		}

		watering.ID = wateringM.ID
		watering.PlantID = plantID

		return nil
	})
}

// --- Mapper Functions ---

// toPlantDomain converts a GORM PlantModel to a domain Plant entity.
func toPlantDomain(data *model.PlantModel) *entity.Plant {
	if data == nil {
		return nil
	}

	waterings := make([]entity.Watering, 0, len(data.Waterings))
	for i := range data.Waterings {
		waterings = append(waterings, *toWateringDomain(&data.Waterings[i]))
	}

	return &entity.Plant{
		ID:             data.ID,
		RegionID:       data.RegionID,
		Name:           data.Name,
		ScientificName: data.ScientificName,
		Family:         data.Family,
		TaxonomyRefID:  data.TaxonomyRefID,
		Slug:           data.Slug,
		ImageURL:       data.ImageURL,
		PlantedAt:      data.PlantedAt,
		LastWateredAt:  data.LastWateredAt,
		NextWateringAt: data.NextWateringAt,
		Waterings:      waterings,
		CreatedAt:      data.CreatedAt,
	}
}

// fromPlantDomain converts a domain Plant entity to a GORM PlantModel.
func fromPlantDomain(data *entity.Plant) *model.PlantModel {
	if data == nil {
		return nil
	}

	return &model.PlantModel{
		ID:             data.ID,
		RegionID:       data.RegionID,
		Name:           data.Name,
		ScientificName: data.ScientificName,
		Family:         data.Family,
		TaxonomyRefID:  data.TaxonomyRefID,
		Slug:           data.Slug,
		ImageURL:       data.ImageURL,
		PlantedAt:      data.PlantedAt,
		LastWateredAt:  data.LastWateredAt,
		NextWateringAt: data.NextWateringAt,
	}
}

// toWateringDomain converts a GORM WateringModel to a domain Watering entity.
func toWateringDomain(data *model.WateringModel) *entity.Watering {
	if data == nil {
		return nil
	}

	return &entity.Watering{
		ID:        data.ID,
		PlantID:   data.PlantID,
		WateredAt: data.WateredAt,
		Amount:    data.Amount,
		Note:      data.Note,
	}
}

// fromWateringDomain converts a domain Watering entity to a GORM WateringModel.
func fromWateringDomain(data *entity.Watering) *model.WateringModel {
	if data == nil {
		return nil
	}

	return &model.WateringModel{
		ID:        data.ID,
		PlantID:   data.PlantID,
		WateredAt: data.WateredAt,
		Amount:    data.Amount,
		Note:      data.Note,
	}
}
