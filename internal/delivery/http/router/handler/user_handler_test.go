package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/domain/entity"
	mockUC "github.com/SookX/Demeter/internal/mocks/usecase"
	"github.com/SookX/Demeter/internal/usecase"
)

func newUserTestServer(uc usecase.UserUsecase) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.Default()).HandleHTTPError

	h := NewUserHandler(uc, slog.Default())
	e.GET("/auth/google/callback", h.GoogleCallback)
	e.POST("/auth/google/callback", h.GoogleCallback)

	return e
}

func googleAuthOutput() *usecase.AuthOutput {
	return &usecase.AuthOutput{
		User: &entity.User{
			ID:       uuid.New(),
			Username: "gardener",
			Email:    "gardener@example.com",
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}
}

func TestUserHandler_GoogleCallbackGet(t *testing.T) {
	userUC := &mockUC.MockUserUsecase{}
	userUC.On("GoogleLogin", mock.Anything, "google-id-token").
		Return(googleAuthOutput(), nil)

	e := newUserTestServer(userUC)
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?id_token=google-id-token", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	userUC.AssertCalled(t, "GoogleLogin", mock.Anything, "google-id-token")
}

func TestUserHandler_GoogleCallbackPostJSON(t *testing.T) {
	userUC := &mockUC.MockUserUsecase{}
	userUC.On("GoogleLogin", mock.Anything, "google-id-token").
		Return(googleAuthOutput(), nil)

	e := newUserTestServer(userUC)
	req := httptest.NewRequest(http.MethodPost, "/auth/google/callback",
		strings.NewReader(`{"idToken":"google-id-token"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	userUC.AssertCalled(t, "GoogleLogin", mock.Anything, "google-id-token")
}

func TestUserHandler_GoogleCallbackMissingToken(t *testing.T) {
	userUC := &mockUC.MockUserUsecase{}

	e := newUserTestServer(userUC)
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	userUC.AssertNotCalled(t, "GoogleLogin", mock.Anything, mock.Anything)
}
