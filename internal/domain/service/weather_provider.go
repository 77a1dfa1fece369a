package service

import (
	"context"
	"time"
)

// CurrentWeather is the simplified view of current conditions exposed to
// clients.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Icon        string  `json:"icon"`
}

// ForecastEntry is a single 3-hour forecast slot.
type ForecastEntry struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Temp        float64   `json:"temp"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Pop         float64   `json:"pop"` // Precipitation probability in [0,1].
	Icon        string    `json:"icon"`
}

// WeatherProvider is the interface over the external weather service.
type WeatherProvider interface {
	// Current fetches current conditions for the coordinate pair.
	Current(ctx context.Context, lat, lon float64) (*CurrentWeather, error)

	// Forecast fetches the 5-day / 3-hour forecast for the coordinate pair.
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error)
}
