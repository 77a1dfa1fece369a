package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SookX/Demeter/internal/delivery/http/response"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/usecase"
)

// WeatherHandler holds dependencies for weather proxy handlers.
type WeatherHandler struct {
	uc     usecase.WeatherUsecase
	logger *slog.Logger
}

// NewWeatherHandler is the constructor for WeatherHandler, injected by Fx.
func NewWeatherHandler(uc usecase.WeatherUsecase, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{
		uc:     uc,
		logger: logger,
	}
}

// Current returns the current conditions for the queried coordinates.
func (h *WeatherHandler) Current(c echo.Context) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return errors.WithStack(err)
	}

	current, err := h.uc.Current(c.Request().Context(), lat, lon)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, current, "Current weather retrieved successfully")
}

// Forecast returns the raw 3-hour forecast slots for the queried coordinates.
func (h *WeatherHandler) Forecast(c echo.Context) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return errors.WithStack(err)
	}

	entries, err := h.uc.Forecast(c.Request().Context(), lat, lon)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "Forecast retrieved successfully")
}

// Daily returns the per-day forecast aggregation, excluding the current day.
func (h *WeatherHandler) Daily(c echo.Context) error {
	lat, lon, err := coordinates(c)
	if err != nil {
		return errors.WithStack(err)
	}

	daily, err := h.uc.Daily(c.Request().Context(), lat, lon)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, daily, "Daily forecast retrieved successfully")
}

// coordinates parses the mandatory lat/lon query parameters.
func coordinates(c echo.Context) (lat float64, lon float64, err error) {
	lat, err = strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, domainerrors.ErrValidationFailed.WithDetails("lat must be a number in [-90, 90]")
	}

	lon, err = strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, domainerrors.ErrValidationFailed.WithDetails("lon must be a number in [-180, 180]")
	}

	return lat, lon, nil
}
