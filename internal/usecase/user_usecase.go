// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/SookX/Demeter/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user and their token pair.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for identity operations.
// This is the contract that the delivery layer (API handlers) depends on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a fresh token pair,
	// rotating the stored session.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session identified by the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// GoogleAuthURL builds the browser redirect URL for Google Sign-In.
	GoogleAuthURL() string

	// GoogleLogin verifies a Google ID token and finds or creates the
	// matching account.
	GoogleLogin(ctx context.Context, idToken string) (*AuthOutput, error)

	// Me returns the authenticated user's profile, including their region.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
