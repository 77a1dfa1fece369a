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

func newPlantTestServer(uc usecase.PlantUsecase) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.Default()).HandleHTTPError

	h := NewPlantHandler(uc, slog.Default())
	e.GET("/plants/search", h.Search)

	return e
}

func TestPlantHandler_Search(t *testing.T) {
	plantUC := &mockUC.MockPlantUsecase{}
	plantUC.On("Search", mock.Anything, "rose").
		Return([]service.TaxonomyResult{{ID: 1, CommonName: "Rose", ScientificName: "Rosa gallica"}}, nil)

	e := newPlantTestServer(plantUC)
	req := httptest.NewRequest(http.MethodGet, "/plants/search?query=rose", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "Rosa gallica")
	plantUC.AssertNumberOfCalls(t, "Search", 1)
}

func TestPlantHandler_SearchAcceptsShortParam(t *testing.T) {
	plantUC := &mockUC.MockPlantUsecase{}
	plantUC.On("Search", mock.Anything, "basil").
		Return([]service.TaxonomyResult{{ID: 2, CommonName: "Basil"}}, nil)

	e := newPlantTestServer(plantUC)
	req := httptest.NewRequest(http.MethodGet, "/plants/search?q=basil", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	plantUC.AssertCalled(t, "Search", mock.Anything, "basil")
}

func TestPlantHandler_SearchPrefersFullParam(t *testing.T) {
	plantUC := &mockUC.MockPlantUsecase{}
	plantUC.On("Search", mock.Anything, "rose").
		Return([]service.TaxonomyResult{}, nil)

	e := newPlantTestServer(plantUC)
	req := httptest.NewRequest(http.MethodGet, "/plants/search?query=rose&q=basil", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	plantUC.AssertCalled(t, "Search", mock.Anything, "rose")
}
