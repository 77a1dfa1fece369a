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

// eventRepository implements the repository.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// FindByRegion retrieves all events of a region in insertion order.
func (repo *eventRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]entity.Event, error) {
	var eventModels []model.EventModel

	if err := repo.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("created_at ASC").
		Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find events by region")
	}

	events := make([]entity.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, *toEventDomain(&eventModels[i]))
	}

	return events, nil
}

// AppendEvents appends a generation batch and stamps the region's
// events.last_created marker, guarded by the region version read when the
// batch was computed. The version bump and the inserts happen in one
// transaction, so a lost race leaves no partial batch behind.
func (repo *eventRepository) AppendEvents(ctx context.Context, regionID uuid.UUID, version int64, events []entity.Event, lastCreated time.Time) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&model.RegionModel{}).
			Where("id = ? AND version = ?", regionID, version).
			Updates(map[string]interface{}{
				"version":                version + 1,
				"events_last_created_at": lastCreated,
			})

		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to stamp event generation")
		}

		// Zero rows means either the region is gone or another generation
		// call bumped the version first. Both abort the batch.
		if result.RowsAffected == 0 {
			return repository.ErrRegionVersionConflict
		}

		if len(events) == 0 {
			return nil
		}

		eventModels := make([]model.EventModel, 0, len(events))
		for i := range events {
			eventM := fromEventDomain(&events[i])
			eventM.RegionID = regionID
			eventModels = append(eventModels, *eventM)
		}

		if err := tx.Create(&eventModels).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrRegionNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to append events")
		}

		for i := range eventModels {
			events[i].ID = eventModels[i].ID
			events[i].RegionID = regionID
			events[i].CreatedAt = eventModels[i].CreatedAt
		}

		return nil
	})
}

// MarkEventRead flips the one-way markRead flag on an event owned by the region.
func (repo *eventRepository) MarkEventRead(ctx context.Context, regionID, eventID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("id = ? AND region_id = ?", eventID, regionID).
		Update("mark_read", true)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark event read")
	}

	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toEventDomain converts a GORM EventModel to a domain Event entity.
func toEventDomain(data *model.EventModel) *entity.Event {
	if data == nil {
		return nil
	}

	return &entity.Event{
		ID:        data.ID,
		RegionID:  data.RegionID,
		Type:      entity.EventType(data.Type),
		EventDate: data.EventDate,
		Details:   data.Details,
		MarkRead:  data.MarkRead,
		CreatedAt: data.CreatedAt,
	}
}

// fromEventDomain converts a domain Event entity to a GORM EventModel.
func fromEventDomain(data *entity.Event) *model.EventModel {
	if data == nil {
		return nil
	}

	return &model.EventModel{
		ID:        data.ID,
		RegionID:  data.RegionID,
		Type:      data.Type.String(),
		EventDate: data.EventDate,
		Details:   data.Details,
		MarkRead:  data.MarkRead,
	}
}
