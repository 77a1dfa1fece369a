// Package usecase contains hand-written testify mocks for the application
// usecase interfaces.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/domain/service"
	"github.com/SookX/Demeter/internal/usecase"
)

// MockWeatherUsecase mocks usecase.WeatherUsecase.
type MockWeatherUsecase struct {
	mock.Mock
}

func (m *MockWeatherUsecase) Current(ctx context.Context, lat, lon float64) (*service.CurrentWeather, error) {
	args := m.Called(ctx, lat, lon)
	if current, ok := args.Get(0).(*service.CurrentWeather); ok {
		return current, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockWeatherUsecase) Forecast(ctx context.Context, lat, lon float64) ([]service.ForecastEntry, error) {
	args := m.Called(ctx, lat, lon)
	if entries, ok := args.Get(0).([]service.ForecastEntry); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockWeatherUsecase) Daily(ctx context.Context, lat, lon float64) ([]usecase.DailyForecast, error) {
	args := m.Called(ctx, lat, lon)
	if daily, ok := args.Get(0).([]usecase.DailyForecast); ok {
		return daily, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockPlantUsecase mocks usecase.PlantUsecase.
type MockPlantUsecase struct {
	mock.Mock
}

func (m *MockPlantUsecase) AddPlant(ctx context.Context, userID uuid.UUID, input *usecase.AddPlantInput) (*entity.Plant, error) {
	args := m.Called(ctx, userID, input)
	if plant, ok := args.Get(0).(*entity.Plant); ok {
		return plant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantUsecase) ListPlants(ctx context.Context, userID uuid.UUID) ([]entity.Plant, error) {
	args := m.Called(ctx, userID)
	if plants, ok := args.Get(0).([]entity.Plant); ok {
		return plants, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantUsecase) RecordWatering(ctx context.Context, userID uuid.UUID, input *usecase.RecordWateringInput) (*entity.Plant, error) {
	args := m.Called(ctx, userID, input)
	if plant, ok := args.Get(0).(*entity.Plant); ok {
		return plant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantUsecase) ListNeedingWater(ctx context.Context, userID uuid.UUID) ([]entity.Plant, error) {
	args := m.Called(ctx, userID)
	if plants, ok := args.Get(0).([]entity.Plant); ok {
		return plants, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantUsecase) Search(ctx context.Context, query string) ([]service.TaxonomyResult, error) {
	args := m.Called(ctx, query)
	if results, ok := args.Get(0).([]service.TaxonomyResult); ok {
		return results, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantUsecase) Recommendations(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockUserUsecase mocks usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, refreshToken)
	if out, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockUserUsecase) GoogleAuthURL() string {
	return m.Called().String(0)
}

func (m *MockUserUsecase) GoogleLogin(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, idToken)
	if out, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}
