// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Climate describes the Köppen-Geiger classification of a region.
type Climate struct {
	KoppenGeigerZone string // The short zone code, e.g. "Cfb".
	ZoneDescription  string // The human-readable description, e.g. "Marine west coast, warm summer".
}

// Region is a user's single geographic and agronomic profile. It anchors the
// coordinates used for weather lookups and owns the plant and event
// collections that the generators operate on.
type Region struct {
	ID        uuid.UUID // The unique ID of the region record.
	UserID    uuid.UUID // The owning user. Exactly one region per user.
	Latitude  float64
	Longitude float64
	SoilType  string  // Most probable soil classification from the soil provider. Empty until enriched.
	Climate   Climate // Köppen-Geiger zone from the climate provider.

	// EventsLastCreated marks the most recent generation batch appended to
	// the event collection.
	EventsLastCreated *time.Time

	// Version is the optimistic-concurrency counter guarding event-batch
	// appends against racing generation calls.
	Version int64

	Plants []Plant // Insertion-ordered plant collection.
	Events []Event // Insertion-ordered event collection.

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSoilData reports whether the region has been enriched with a soil
// classification, which the recommendation prompt requires.
func (r *Region) HasSoilData() bool {
	return r.SoilType != ""
}

// PlantNames returns the names of all plants in insertion order.
func (r *Region) PlantNames() []string {
	names := make([]string, 0, len(r.Plants))
	for i := range r.Plants {
		names = append(names, r.Plants[i].Name)
	}

	return names
}
