// Package service contains hand-written testify mocks for the domain service
// interfaces.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/domain/service"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if token, ok := args.Get(0).(*jwt.Token); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if token, ok := args.Get(0).(*jwt.Token); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockOAuthAuthService mocks service.OAuthAuthService.
type MockOAuthAuthService struct {
	mock.Mock
}

func (m *MockOAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, idToken)
	if user, ok := args.Get(0).(*service.OAuthUser); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOAuthAuthService) BuildAuthorizationURL() string {
	return m.Called().String(0)
}

func (m *MockOAuthAuthService) GetProvider() entity.ProviderType {
	return m.Called().Get(0).(entity.ProviderType)
}

// MockCompletionProvider mocks service.CompletionProvider.
type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Complete(ctx context.Context, req service.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

// MockWeatherProvider mocks service.WeatherProvider.
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Current(ctx context.Context, lat, lon float64) (*service.CurrentWeather, error) {
	args := m.Called(ctx, lat, lon)
	if current, ok := args.Get(0).(*service.CurrentWeather); ok {
		return current, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockWeatherProvider) Forecast(ctx context.Context, lat, lon float64) ([]service.ForecastEntry, error) {
	args := m.Called(ctx, lat, lon)
	if entries, ok := args.Get(0).([]service.ForecastEntry); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockSoilProvider mocks service.SoilProvider.
type MockSoilProvider struct {
	mock.Mock
}

func (m *MockSoilProvider) SoilType(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)

	return args.String(0), args.Error(1)
}

// MockClimateProvider mocks service.ClimateProvider.
type MockClimateProvider struct {
	mock.Mock
}

func (m *MockClimateProvider) Classify(ctx context.Context, lat, lon float64) (*entity.Climate, error) {
	args := m.Called(ctx, lat, lon)
	if climate, ok := args.Get(0).(*entity.Climate); ok {
		return climate, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockTaxonomyProvider mocks service.TaxonomyProvider.
type MockTaxonomyProvider struct {
	mock.Mock
}

func (m *MockTaxonomyProvider) Search(ctx context.Context, query string) ([]service.TaxonomyResult, error) {
	args := m.Called(ctx, query)
	if results, ok := args.Get(0).([]service.TaxonomyResult); ok {
		return results, args.Error(1)
	}

	return nil, args.Error(1)
}
