package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/service"
	mockSvc "github.com/SookX/Demeter/internal/mocks/service"
	"github.com/SookX/Demeter/internal/usecase"
)

func newWeatherServiceFixture(t *testing.T) (*weatherService, *mockSvc.MockWeatherProvider) {
	t.Helper()

	provider := &mockSvc.MockWeatherProvider{}
	svc := NewWeatherService(WeatherServiceParams{
		Provider: provider,
		Logger:   newDiscardLogger(),
	})

	ws := svc.(*weatherService)
	ws.now = func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) }

	return ws, provider
}

func TestWeatherService_CurrentCachesLookups(t *testing.T) {
	svc, provider := newWeatherServiceFixture(t)

	current := &service.CurrentWeather{Temperature: 24.5, Description: "clear sky", Icon: "01d"}
	provider.On("Current", mock.Anything, 42.6977, 23.3219).Return(current, nil).Once()

	for range 3 {
		got, err := svc.Current(context.Background(), 42.6977, 23.3219)
		require.NoError(t, err)
		assert.Equal(t, current, got)
	}

	provider.AssertNumberOfCalls(t, "Current", 1)
}

func TestWeatherService_CurrentDistinctCoordinates(t *testing.T) {
	svc, provider := newWeatherServiceFixture(t)

	provider.On("Current", mock.Anything, 42.6977, 23.3219).
		Return(&service.CurrentWeather{Temperature: 24.5}, nil).Once()
	provider.On("Current", mock.Anything, 48.8566, 2.3522).
		Return(&service.CurrentWeather{Temperature: 19.0}, nil).Once()

	sofia, err := svc.Current(context.Background(), 42.6977, 23.3219)
	require.NoError(t, err)
	paris, err := svc.Current(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, 24.5, sofia.Temperature)
	assert.Equal(t, 19.0, paris.Temperature)
}

func TestWeatherService_CurrentPropagatesUpstreamError(t *testing.T) {
	svc, provider := newWeatherServiceFixture(t)

	provider.On("Current", mock.Anything, 1.0, 2.0).
		Return(nil, domainerrors.ErrUpstreamFailed)

	_, err := svc.Current(context.Background(), 1.0, 2.0)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailed)
}

func TestWeatherService_ForecastCachesLookups(t *testing.T) {
	svc, provider := newWeatherServiceFixture(t)

	entries := []service.ForecastEntry{
		{Time: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), Temp: 25, Icon: "01d"},
	}
	provider.On("Forecast", mock.Anything, 42.6977, 23.3219).Return(entries, nil).Once()

	for range 2 {
		got, err := svc.Forecast(context.Background(), 42.6977, 23.3219)
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	}

	provider.AssertNumberOfCalls(t, "Forecast", 1)
}

func TestWeatherService_Daily(t *testing.T) {
	svc, provider := newWeatherServiceFixture(t)

	slot := func(day, hour int) time.Time {
		return time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC)
	}
	entries := []service.ForecastEntry{
		// Today's remaining slots must not produce a row.
		{Time: slot(28, 18), TempMin: 20, TempMax: 26, Icon: "01d"},
		// Tomorrow: min/max span the slots, icon from the slot nearest noon.
		{Time: slot(29, 6), TempMin: 14, TempMax: 17, Icon: "02n"},
		{Time: slot(29, 12), TempMin: 21, TempMax: 27, Icon: "01d"},
		{Time: slot(29, 21), TempMin: 16, TempMax: 19, Icon: "03n"},
		// Day after, out of order in the input.
		{Time: slot(30, 9), TempMin: 15, TempMax: 22, Icon: "10d"},
	}
	provider.On("Forecast", mock.Anything, 42.6977, 23.3219).Return(entries, nil)

	daily, err := svc.Daily(context.Background(), 42.6977, 23.3219)
	require.NoError(t, err)

	require.Len(t, daily, 2)
	assert.Equal(t, usecase.DailyForecast{Date: "2026-08-29", TempMin: 14, TempMax: 27, Icon: "01d"}, daily[0])
	assert.Equal(t, usecase.DailyForecast{Date: "2026-08-30", TempMin: 15, TempMax: 22, Icon: "10d"}, daily[1])
}

func TestAggregateDaily_Empty(t *testing.T) {
	daily := aggregateDaily(nil, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, daily)
}
