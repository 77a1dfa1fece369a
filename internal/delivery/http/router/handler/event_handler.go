package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/delivery/http/response"
	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/usecase"
)

// EventHandler holds dependencies for event feed handlers.
type EventHandler struct {
	uc     usecase.EventUsecase
	logger *slog.Logger
}

// NewEventHandler is the constructor for EventHandler, injected by Fx.
func NewEventHandler(uc usecase.EventUsecase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListEvents returns the caller's event feed.
func (h *EventHandler) ListEvents(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	out, err := h.uc.ListEvents(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, EventFeedResponse{
		LastCreated: out.LastCreated,
		Events:      toEventResponses(out.Events),
	}, "Events retrieved successfully")
}

type addEventRequest struct {
	Type      string     `json:"type" validate:"required"`
	Details   string     `json:"details" validate:"required"`
	EventDate *time.Time `json:"eventDate"`
}

// AddEvent appends a manually created event to the feed.
func (h *EventHandler) AddEvent(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	var req addEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	event, err := h.uc.AddEvent(c.Request().Context(), userID, &usecase.AddEventInput{
		Type:      entity.EventType(req.Type),
		Details:   req.Details,
		EventDate: req.EventDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEventResponse(event), "Event added successfully")
}

// MarkRead flips the read flag on one of the caller's events.
func (h *EventHandler) MarkRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("id must be a UUID"))
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, eventID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Event marked as read"}, "Event marked as read")
}

// GenerateNews runs the weather news generator for the caller's region.
func (h *EventHandler) GenerateNews(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	events, err := h.uc.GenerateNews(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEventResponses(events), "News generated successfully")
}

// GenerateReminders runs the watering reminder generator.
func (h *EventHandler) GenerateReminders(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	events, err := h.uc.GenerateReminders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEventResponses(events), "Reminders generated successfully")
}

// GenerateTips runs the daily tip generator.
func (h *EventHandler) GenerateTips(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	events, err := h.uc.GenerateTips(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEventResponses(events), "Tips generated successfully")
}
