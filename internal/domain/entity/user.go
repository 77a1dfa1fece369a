// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
// A user owns at most one Region, which in turn owns all gardening state
// (plants, watering history, generated events).
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username  string    // The user's display name, unique across the system.
	Email     string    // The user's primary contact email, often used as a login identifier.
	Region    *Region   // A pointer to the user's region profile. Nil until the user selects a location.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// HasRegion reports whether the user has selected a geographic region yet.
func (u *User) HasRegion() bool {
	return u.Region != nil
}
