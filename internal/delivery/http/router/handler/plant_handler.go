package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/delivery/http/response"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/usecase"
)

// PlantHandler holds dependencies for plant registry handlers.
type PlantHandler struct {
	uc     usecase.PlantUsecase
	logger *slog.Logger
}

// NewPlantHandler is the constructor for PlantHandler, injected by Fx.
func NewPlantHandler(uc usecase.PlantUsecase, logger *slog.Logger) *PlantHandler {
	return &PlantHandler{
		uc:     uc,
		logger: logger,
	}
}

type addPlantRequest struct {
	Name           string `json:"name" validate:"required"`
	ScientificName string `json:"scientificName" validate:"required"`
	Family         string `json:"family"`
	TaxonomyRefID  int    `json:"taxonomyRefId"`
	Slug           string `json:"slug"`
	ImageURL       string `json:"imageUrl"`
}

// AddPlant registers a plant in the caller's region.
func (h *PlantHandler) AddPlant(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	var req addPlantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid plant input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	plant, err := h.uc.AddPlant(c.Request().Context(), userID, &usecase.AddPlantInput{
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Family:         req.Family,
		TaxonomyRefID:  req.TaxonomyRefID,
		Slug:           req.Slug,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPlantResponse(plant), "Plant added successfully")
}

// ListPlants returns the caller's plants in insertion order.
func (h *PlantHandler) ListPlants(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	plants, err := h.uc.ListPlants(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPlantResponses(plants), "Plants retrieved successfully")
}

type recordWateringRequest struct {
	Amount float64 `json:"amount" validate:"min=0"`
	Note   string  `json:"note"`
}

// RecordWatering appends a watering record and reschedules the plant.
func (h *PlantHandler) RecordWatering(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	plantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("id must be a UUID"))
	}

	var req recordWateringRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid watering input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	plant, err := h.uc.RecordWatering(c.Request().Context(), userID, &usecase.RecordWateringInput{
		PlantID: plantID,
		Amount:  req.Amount,
		Note:    req.Note,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPlantResponse(plant), "Watering recorded successfully")
}

// ListNeedingWater returns the caller's plants ordered by watering urgency.
func (h *PlantHandler) ListNeedingWater(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	plants, err := h.uc.ListNeedingWater(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPlantResponses(plants), "Plants retrieved successfully")
}

// Search proxies the plant taxonomy catalogue. Clients pass the search term
// as ?query; ?q is accepted as a shorthand.
func (h *PlantHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		query = c.QueryParam("q")
	}

	results, err := h.uc.Search(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "Search completed successfully")
}

// Recommendations suggests plants suited to the caller's region.
func (h *PlantHandler) Recommendations(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	names, err := h.uc.Recommendations(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string][]string{"recommendations": names}, "Recommendations generated successfully")
}
