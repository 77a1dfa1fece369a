// Package middleware contains HTTP middleware for the echo delivery.
package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/SookX/Demeter/internal/delivery/http/response"
	"github.com/SookX/Demeter/internal/domain/service"
)

// ContextKeyUserID is the echo context key carrying the authenticated user id.
const ContextKeyUserID = "userID"

// AuthMiddleware validates JWT access tokens on protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Bearer access token and stores the caller's
// user id on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Failed to parse token claims")
		}

		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "User ID missing from token")
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID format in token")
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}

// UserID extracts the authenticated user id set by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return userID, ok
}
