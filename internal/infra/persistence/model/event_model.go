package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel mirrors the 'events' table. Details holds the rendered
// "emoji\ntitle\ndescription" text for generated events.
type EventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RegionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	EventDate time.Time `gorm:"not null;index"`
	Details   string    `gorm:"type:text;not null"`
	MarkRead  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}
