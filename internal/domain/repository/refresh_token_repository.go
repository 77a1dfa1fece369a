package repository

import (
	"context"
	"errors"

	"github.com/SookX/Demeter/internal/domain/entity"
)

// ErrRefreshTokenNotFound is returned when a refresh token hash has no match.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines persistence operations for login sessions.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a user session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash removes a session, logging the device out.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
}
