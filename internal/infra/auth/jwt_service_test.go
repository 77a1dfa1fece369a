package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/SookX/Demeter/config"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	token, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "access", claims["type"])

	// Validate refresh token
	token, err = jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok = token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "refresh", claims["type"])
}

func TestJWTService_SecretsAreNotInterchangeable(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New())
	assert.NoError(t, err)

	// An access token must not validate against the refresh secret, and
	// vice versa.
	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	accessToken, _, err := jwtService.GenerateTokens(uuid.New())
	assert.NoError(t, err)

	tampered := accessToken + "x"
	_, err = jwtService.ValidateAccessToken(tampered)
	assert.Error(t, err)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	assert.Equal(t, time.Hour*24*7, jwtService.GetRefreshTokenDuration())
}
