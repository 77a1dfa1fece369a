package model

import (
	"time"

	"github.com/google/uuid"
)

// PlantModel mirrors the 'plants' table. Taxonomy columns are captured from the
// external plant registry at creation time.
type PlantModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RegionID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	ScientificName string    `gorm:"type:varchar(255)"`
	Family         string    `gorm:"type:varchar(255)"`
	TaxonomyRefID  int       `gorm:"not null;default:0"`
	Slug           string    `gorm:"type:varchar(255)"`
	ImageURL       string    `gorm:"type:text"`
	PlantedAt      time.Time `gorm:"not null"`
	LastWateredAt  *time.Time
	NextWateringAt *time.Time `gorm:"index"`
	CreatedAt      time.Time

	Waterings []WateringModel `gorm:"foreignKey:PlantID"`
}

// TableName explicitly sets the table name for GORM.
func (PlantModel) TableName() string {
	return "plants"
}

// WateringModel mirrors the 'waterings' table. One row per recorded watering.
type WateringModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PlantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WateredAt time.Time `gorm:"not null"`
	Amount    float64   `gorm:"type:decimal(8,2);not null;default:0"`
	Note      string    `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (WateringModel) TableName() string {
	return "waterings"
}
