// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Plant is a single tracked plant inside a user's region.
type Plant struct {
	ID       uuid.UUID
	RegionID uuid.UUID // The owning region. A plant always belongs to exactly one region.

	Name           string // Common name, required.
	ScientificName string // Binomial name, required.
	Family         string // Optional taxonomic family from the taxonomy provider.
	TaxonomyRefID  int    // Optional reference id into the taxonomy provider's catalogue.
	Slug           string // Optional taxonomy provider slug.
	ImageURL       string // Optional image reference.

	PlantedAt time.Time

	// LastWateredAt is nil until the first watering is recorded.
	LastWateredAt *time.Time

	// NextWateringAt is the scheduler's due date. It is set to planting
	// time + 24h on creation and recomputed after every watering; the
	// scheduler guarantees it never ends up nil.
	NextWateringAt *time.Time

	// Waterings is the append-only irrigation history, in recording order.
	Waterings []Watering

	CreatedAt time.Time
}

// Watering is a single recorded irrigation event against a plant.
// Records are append-only; they are never mutated or deleted.
type Watering struct {
	ID        uuid.UUID
	PlantID   uuid.UUID
	WateredAt time.Time
	Amount    float64 // Unit-less amount as entered by the user.
	Note      string
}
