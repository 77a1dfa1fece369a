package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/delivery/http/response"
	"github.com/SookX/Demeter/internal/usecase"
)

// RegionHandler holds dependencies for region-related handlers.
type RegionHandler struct {
	uc     usecase.RegionUsecase
	logger *slog.Logger
}

// NewRegionHandler is the constructor for RegionHandler, injected by Fx.
func NewRegionHandler(uc usecase.RegionUsecase, logger *slog.Logger) *RegionHandler {
	return &RegionHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetRegion returns the caller's region profile.
func (h *RegionHandler) GetRegion(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	region, err := h.uc.GetRegion(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRegionResponse(region), "Region retrieved successfully")
}

type setRegionRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// SetRegion selects or relocates the caller's region from a coordinate pair.
func (h *RegionHandler) SetRegion(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	var req setRegionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid region input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	region, err := h.uc.SetRegion(c.Request().Context(), userID, &usecase.SetRegionInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRegionResponse(region), "Region set successfully")
}
