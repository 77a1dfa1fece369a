package weather

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SookX/Demeter/config"
)

func newTestClient(t *testing.T) *openWeatherClient {
	t.Helper()

	cfg := &config.Config{
		Weather: &config.WeatherConfig{APIKey: "test-key"},
	}

	provider, err := NewOpenWeatherProvider(cfg)
	require.NoError(t, err)

	client, ok := provider.(*openWeatherClient)
	require.True(t, ok)

	httpmock.ActivateNonDefault(client.client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return client
}

func TestNewOpenWeatherProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenWeatherProvider(&config.Config{})
	assert.Error(t, err)
}

func TestOpenWeatherClient_Current(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", "https://api.openweathermap.org/data/2.5/weather",
		httpmock.NewStringResponder(200, `{
			"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
			"main": {"temp": 17.3, "feels_like": 16.8, "humidity": 81},
			"wind": {"speed": 4.2},
			"dt": 1700000000
		}`))

	current, err := client.Current(context.Background(), 42.7, 23.3)
	require.NoError(t, err)

	assert.InDelta(t, 17.3, current.Temperature, 0.001)
	assert.InDelta(t, 16.8, current.FeelsLike, 0.001)
	assert.Equal(t, "light rain", current.Description)
	assert.Equal(t, 81, current.Humidity)
	assert.InDelta(t, 4.2, current.WindSpeed, 0.001)
	assert.Equal(t, "10d", current.Icon)
}

func TestOpenWeatherClient_Current_NoConditions(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", "https://api.openweathermap.org/data/2.5/weather",
		httpmock.NewStringResponder(200, `{"weather": [], "main": {"temp": 10}}`))

	_, err := client.Current(context.Background(), 42.7, 23.3)
	assert.Error(t, err)
}

func TestOpenWeatherClient_Forecast(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", "https://api.openweathermap.org/data/2.5/forecast",
		httpmock.NewStringResponder(200, `{
			"list": [
				{
					"dt": 1700000000,
					"main": {"temp": 12.0, "temp_min": 10.5, "temp_max": 13.1},
					"weather": [{"description": "scattered clouds", "icon": "03d"}],
					"pop": 0.35,
					"dt_txt": "2023-11-14 22:13:20"
				},
				{
					"dt": 1700010800,
					"main": {"temp": 9.4, "temp_min": 8.0, "temp_max": 9.9},
					"weather": [{"description": "light rain", "icon": "10n"}],
					"pop": 0.8,
					"dt_txt": "2023-11-15 01:13:20"
				}
			]
		}`))

	entries, err := client.Forecast(context.Background(), 42.7, 23.3)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, time.Unix(1700000000, 0).UTC(), entries[0].Time)
	assert.Equal(t, "scattered clouds", entries[0].Description)
	assert.InDelta(t, 0.35, entries[0].Pop, 0.001)
	assert.Equal(t, "10n", entries[1].Icon)
	assert.InDelta(t, 8.0, entries[1].TempMin, 0.001)
}

func TestOpenWeatherClient_RetriesOnServerError(t *testing.T) {
	client := newTestClient(t)

	calls := 0
	httpmock.RegisterResponder("GET", "https://api.openweathermap.org/data/2.5/weather",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(500, "oops"), nil
			}

			return httpmock.NewStringResponse(200, `{
				"weather": [{"description": "clear sky", "icon": "01d"}],
				"main": {"temp": 20.0, "feels_like": 19.5, "humidity": 40},
				"wind": {"speed": 1.1}
			}`), nil
		})

	current, err := client.Current(context.Background(), 42.7, 23.3)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "clear sky", current.Description)
}
