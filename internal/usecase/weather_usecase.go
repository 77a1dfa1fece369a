package usecase

import (
	"context"

	"github.com/SookX/Demeter/internal/domain/service"
)

// DailyForecast is one aggregated forecast day.
type DailyForecast struct {
	Date    string  `json:"date"` // Calendar day in YYYY-MM-DD.
	TempMin float64 `json:"tempMin"`
	TempMax float64 `json:"tempMax"`
	Icon    string  `json:"icon"`
}

// WeatherUsecase defines the interface for weather lookups.
type WeatherUsecase interface {
	// Current returns the simplified current conditions for the coordinates.
	Current(ctx context.Context, lat, lon float64) (*service.CurrentWeather, error)

	// Forecast returns the raw 5-day / 3-hour forecast entries.
	Forecast(ctx context.Context, lat, lon float64) ([]service.ForecastEntry, error)

	// Daily aggregates the forecast into per-day min/max/icon rows,
	// excluding the current day.
	Daily(ctx context.Context, lat, lon float64) ([]DailyForecast, error)
}
