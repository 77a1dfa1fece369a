package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/domain/service"
	mockUC "github.com/SookX/Demeter/internal/mocks/usecase"
	"github.com/SookX/Demeter/internal/usecase"
)

func newWeatherTestServer(uc usecase.WeatherUsecase) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.Default()).HandleHTTPError

	h := NewWeatherHandler(uc, slog.Default())
	e.GET("/weather/current", h.Current)
	e.GET("/weather/daily", h.Daily)

	return e
}

func TestWeatherHandler_Current(t *testing.T) {
	weatherUC := &mockUC.MockWeatherUsecase{}
	weatherUC.On("Current", mock.Anything, 42.6977, 23.3219).
		Return(&service.CurrentWeather{Temperature: 24.5, Description: "clear sky", Icon: "01d"}, nil)

	e := newWeatherTestServer(weatherUC)
	req := httptest.NewRequest(http.MethodGet, "/weather/current?lat=42.6977&lon=23.3219", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"clear sky"`)
}

func TestWeatherHandler_CurrentMissingCoordinates(t *testing.T) {
	weatherUC := &mockUC.MockWeatherUsecase{}

	e := newWeatherTestServer(weatherUC)
	req := httptest.NewRequest(http.MethodGet, "/weather/current?lat=42.6977", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	weatherUC.AssertNotCalled(t, "Current", mock.Anything, mock.Anything, mock.Anything)
}

func TestWeatherHandler_CurrentOutOfRangeLatitude(t *testing.T) {
	weatherUC := &mockUC.MockWeatherUsecase{}

	e := newWeatherTestServer(weatherUC)
	req := httptest.NewRequest(http.MethodGet, "/weather/current?lat=123.4&lon=0", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeatherHandler_Daily(t *testing.T) {
	weatherUC := &mockUC.MockWeatherUsecase{}
	weatherUC.On("Daily", mock.Anything, 42.6977, 23.3219).
		Return([]usecase.DailyForecast{
			{Date: "2026-08-29", TempMin: 14, TempMax: 27, Icon: "01d"},
		}, nil)

	e := newWeatherTestServer(weatherUC)
	req := httptest.NewRequest(http.MethodGet, "/weather/daily?lat=42.6977&lon=23.3219", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2026-08-29"`)
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
