package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"

	"github.com/SookX/Demeter/config"
	deliverycontext "github.com/SookX/Demeter/internal/delivery/context"
	"github.com/SookX/Demeter/internal/domain/service"
	"github.com/SookX/Demeter/internal/usecase"
)

const defaultWeatherCacheTTL = 10 * time.Minute

// weatherService implements the WeatherUsecase interface. Lookups for the
// same coordinate pair are served from a short-lived in-memory cache to keep
// repeated dashboard refreshes off the upstream API.
type weatherService struct {
	provider service.WeatherProvider
	cache    *gocache.Cache
	now      func() time.Time
	logger   *slog.Logger
}

// WeatherServiceParams holds dependencies for weatherService, injected by Fx.
type WeatherServiceParams struct {
	fx.In

	Provider service.WeatherProvider
	Config   *config.Config
	Logger   *slog.Logger
}

// NewWeatherService is the constructor for weatherService.
func NewWeatherService(params WeatherServiceParams) usecase.WeatherUsecase {
	ttl := defaultWeatherCacheTTL
	if params.Config != nil && params.Config.Weather != nil && params.Config.Weather.CacheTTL > 0 {
		ttl = params.Config.Weather.CacheTTL
	}

	return &weatherService{
		provider: params.Provider,
		cache:    gocache.New(ttl, 2*ttl),
		now:      time.Now,
		logger:   params.Logger,
	}
}

func (srv *weatherService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Current returns the simplified current conditions for the coordinates.
func (srv *weatherService) Current(ctx context.Context, lat, lon float64) (*service.CurrentWeather, error) {
	key := cacheKey("current", lat, lon)
	if cached, ok := srv.cache.Get(key); ok {
		return cached.(*service.CurrentWeather), nil
	}

	current, err := srv.provider.Current(ctx, lat, lon)
	if err != nil {
		srv.log(ctx).Error("Current weather lookup failed", slog.Any("error", err))

		return nil, err
	}

	srv.cache.SetDefault(key, current)

	return current, nil
}

// Forecast returns the raw 5-day / 3-hour forecast entries.
func (srv *weatherService) Forecast(ctx context.Context, lat, lon float64) ([]service.ForecastEntry, error) {
	key := cacheKey("forecast", lat, lon)
	if cached, ok := srv.cache.Get(key); ok {
		return cached.([]service.ForecastEntry), nil
	}

	entries, err := srv.provider.Forecast(ctx, lat, lon)
	if err != nil {
		srv.log(ctx).Error("Forecast lookup failed", slog.Any("error", err))

		return nil, err
	}

	srv.cache.SetDefault(key, entries)

	return entries, nil
}

// Daily aggregates the forecast into per-day min/max/icon rows. The current
// day is dropped: its remaining slots no longer describe a full day.
func (srv *weatherService) Daily(ctx context.Context, lat, lon float64) ([]usecase.DailyForecast, error) {
	entries, err := srv.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	return aggregateDaily(entries, srv.now().UTC()), nil
}

// aggregateDaily folds 3-hour slots into one row per calendar day, excluding
// the day containing now. The icon is taken from the slot closest to midday.
func aggregateDaily(entries []service.ForecastEntry, now time.Time) []usecase.DailyForecast {
	today := now.Format("2006-01-02")

	type dayAgg struct {
		min, max     float64
		icon         string
		iconDistance time.Duration
	}

	days := make(map[string]*dayAgg)
	order := make([]string, 0, 6)

	for _, entry := range entries {
		slot := entry.Time.UTC()
		date := slot.Format("2006-01-02")
		if date == today {
			continue
		}

		noon := time.Date(slot.Year(), slot.Month(), slot.Day(), 12, 0, 0, 0, time.UTC)
		distance := slot.Sub(noon)
		if distance < 0 {
			distance = -distance
		}

		agg, ok := days[date]
		if !ok {
			days[date] = &dayAgg{
				min:          entry.TempMin,
				max:          entry.TempMax,
				icon:         entry.Icon,
				iconDistance: distance,
			}
			order = append(order, date)

			continue
		}

		if entry.TempMin < agg.min {
			agg.min = entry.TempMin
		}
		if entry.TempMax > agg.max {
			agg.max = entry.TempMax
		}
		if distance < agg.iconDistance {
			agg.icon = entry.Icon
			agg.iconDistance = distance
		}
	}

	sort.Strings(order)

	daily := make([]usecase.DailyForecast, 0, len(order))
	for _, date := range order {
		agg := days[date]
		daily = append(daily, usecase.DailyForecast{
			Date:    date,
			TempMin: agg.min,
			TempMax: agg.max,
			Icon:    agg.icon,
		})
	}

	return daily
}

func cacheKey(kind string, lat, lon float64) string {
	return fmt.Sprintf("%s:%.4f:%.4f", kind, lat, lon)
}
