// Package weather implements the weather provider against the OpenWeather API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/SookX/Demeter/config"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/service"
)

const (
	defaultEndpoint = "https://api.openweathermap.org/data/2.5"
	defaultUnits    = "metric"

	requestTimeout = 10 * time.Second
	maxRetries     = 3
	retryDelay     = 2 * time.Second

	userAgent = "demeter/1.0"
)

// currentResponse mirrors the OpenWeather current conditions payload.
type currentResponse struct {
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Dt   int64  `json:"dt"`
	Name string `json:"name"`
}

// forecastResponse mirrors the OpenWeather 5-day / 3-hour forecast payload.
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Pop   float64 `json:"pop"`
		DtTxt string  `json:"dt_txt"`
	} `json:"list"`
}

// openWeatherClient implements service.WeatherProvider against OpenWeather.
type openWeatherClient struct {
	apiKey   string
	endpoint string
	units    string
	client   *http.Client
}

// NewOpenWeatherProvider is the constructor for openWeatherClient.
func NewOpenWeatherProvider(cfg *config.Config) (service.WeatherProvider, error) {
	if cfg.Weather == nil || cfg.Weather.APIKey == "" {
		return nil, errors.New("weather API key not configured")
	}

	endpoint := strings.TrimRight(cfg.Weather.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	units := cfg.Weather.Units
	if units == "" {
		units = defaultUnits
	}

	return &openWeatherClient{
		apiKey:   cfg.Weather.APIKey,
		endpoint: endpoint,
		units:    units,
		client:   &http.Client{Timeout: requestTimeout},
	}, nil
}

// Current fetches current conditions for the coordinate pair.
func (c *openWeatherClient) Current(ctx context.Context, lat, lon float64) (*service.CurrentWeather, error) {
	var payload currentResponse
	if err := c.get(ctx, "/weather", lat, lon, &payload); err != nil {
		return nil, err
	}

	if len(payload.Weather) == 0 {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage("no weather conditions returned")
	}

	return &service.CurrentWeather{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Description: payload.Weather[0].Description,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Icon:        payload.Weather[0].Icon,
	}, nil
}

// Forecast fetches the 5-day / 3-hour forecast for the coordinate pair.
func (c *openWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]service.ForecastEntry, error) {
	var payload forecastResponse
	if err := c.get(ctx, "/forecast", lat, lon, &payload); err != nil {
		return nil, err
	}

	entries := make([]service.ForecastEntry, 0, len(payload.List))
	for _, slot := range payload.List {
		if len(slot.Weather) == 0 {
			continue
		}

		entries = append(entries, service.ForecastEntry{
			Time:        time.Unix(slot.Dt, 0).UTC(),
			Description: slot.Weather[0].Description,
			Temp:        slot.Main.Temp,
			TempMin:     slot.Main.TempMin,
			TempMax:     slot.Main.TempMax,
			Pop:         slot.Pop,
			Icon:        slot.Weather[0].Icon,
		})
	}

	return entries, nil
}

// get performs a bounded-retry GET against an OpenWeather path and decodes
// the JSON payload into out.
func (c *openWeatherClient) get(ctx context.Context, path string, lat, lon float64, out any) error {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)

	reqURL := c.endpoint + path + "?" + params.Encode()

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return errors.Wrap(err, "failed to create weather request")
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err

			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("received non-200 response: %d", resp.StatusCode)

			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return errors.Wrap(err, "failed to read weather response")
		}

		if err := json.Unmarshal(body, out); err != nil {
			return domainerrors.ErrUpstreamFailed.WrapMessage("malformed weather response")
		}

		return nil
	}

	return domainerrors.ErrUpstreamFailed.WrapMessage(lastErr.Error())
}
