package repository

import (
	"context"
	"errors"

	"github.com/SookX/Demeter/internal/domain/entity"
)

// ErrAuthNotFound is returned when no matching authentication record exists.
var ErrAuthNotFound = errors.New("authentication record not found")

// AuthRepository defines persistence operations for authentication credentials.
type AuthRepository interface {
	// FindAuthentication retrieves a credential by provider and the
	// provider-scoped user identifier (email address for the email
	// provider, Google 'sub' for the google provider).
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential record.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error
}
