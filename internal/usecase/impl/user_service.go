// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/SookX/Demeter/internal/delivery/context"
	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/repository"
	"github.com/SookX/Demeter/internal/domain/service"
	"github.com/SookX/Demeter/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: uniqueness checks,
// password hashing, user + credential creation and the first session.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	var registeredUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		if _, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email); err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		} else if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to check existing authentication")
		}

		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username already taken")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing username")
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}

		newUser := &entity.User{
			Username: input.Username,
			Email:    input.Email,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.issueSession(ctx, registeredUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return output, nil
}

// Login verifies an email credential and opens a new session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting login", slog.String("email", input.Email))

	var loggedInUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		userRepo := repoFactory.UserRepo()

		authRecord, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find authentication")
		}

		if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		user, err := userRepo.FindByID(ctx, authRecord.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load user for login")
		}
		loggedInUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	return srv.issueSession(ctx, loggedInUser)
}

// Refresh exchanges a valid refresh token for a fresh pair, rotating the session.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	if _, err := srv.tokenService.ValidateRefreshToken(refreshToken); err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := hashToken(refreshToken)

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		userRepo := repoFactory.UserRepo()

		session, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if session.ExpiresAt.Before(time.Now()) {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("session expired")
		}

		// Rotate: the old session dies with this exchange.
		if err := refreshRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to rotate refresh token")
		}

		user, err = userRepo.FindByID(ctx, session.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load user for refresh")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, err
	}

	return srv.issueSession(ctx, user)
}

// Logout revokes the session identified by the refresh token.
func (srv *userService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := hashToken(refreshToken)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RefreshTokenRepo().DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				// Logging out an already-dead session is not an error.
				return nil
			}

			return errors.Wrap(err, "failed to delete refresh token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Logout failed", slog.Any("error", err))

		return err
	}

	return nil
}

// GoogleAuthURL builds the browser redirect URL for Google Sign-In.
func (srv *userService) GoogleAuthURL() string {
	return srv.googleAuthService.BuildAuthorizationURL()
}

// GoogleLogin verifies a Google ID token and finds or creates the matching account.
func (srv *userService) GoogleLogin(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.log(ctx).Warn("Google ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthTokenInvalid
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		userRepo := repoFactory.UserRepo()

		authRecord, err := authRepo.FindAuthentication(ctx, srv.googleAuthService.GetProvider(), oauthUser.ID)
		if err == nil {
			user, err = userRepo.FindByID(ctx, authRecord.UserID)
			if err != nil {
				return errors.Wrap(err, "failed to load user for google login")
			}

			return nil
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find google authentication")
		}

		newUser := &entity.User{
			Username: oauthUser.Name,
			Email:    oauthUser.Email,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user for google login")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       srv.googleAuthService.GetProvider(),
			ProviderUserID: oauthUser.ID,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create google authentication")
		}

		user = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Google login failed", slog.Any("error", err))

		return nil, err
	}

	return srv.issueSession(ctx, user)
}

// Me returns the authenticated user's profile, including their region.
func (srv *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user profile")
	}

	return user, nil
}

// issueSession generates a token pair and persists the refresh-token hash as
// a new session.
func (srv *userService) issueSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RefreshTokenRepo().CreateRefreshToken(ctx, session)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	return &usecase.AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// hashToken derives the SHA-256 hex digest stored in place of raw refresh tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
