package model

import (
	"time"

	"github.com/google/uuid"
)

// RegionModel mirrors the 'regions' table. Each user owns at most one region.
// Version guards concurrent event batch appends with optimistic locking.
type RegionModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID              uuid.UUID `gorm:"type:uuid;unique;not null"`
	Latitude            float64   `gorm:"type:decimal(10,8);not null"`
	Longitude           float64   `gorm:"type:decimal(11,8);not null"`
	SoilType            string    `gorm:"type:varchar(100)"`
	KoppenGeigerZone    string    `gorm:"type:varchar(10)"`
	ZoneDescription     string    `gorm:"type:text"`
	EventsLastCreatedAt *time.Time
	Version             int64 `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Plants []PlantModel `gorm:"foreignKey:RegionID"`
	Events []EventModel `gorm:"foreignKey:RegionID"`
}

// TableName explicitly sets the table name for GORM.
func (RegionModel) TableName() string {
	return "regions"
}
