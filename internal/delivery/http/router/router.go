// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/delivery/http/router/handler"
)

// RouterParams holds all the handlers the router wires up, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	RegionHandler  *handler.RegionHandler
	WeatherHandler *handler.WeatherHandler
	PlantHandler   *handler.PlantHandler
	EventHandler   *handler.EventHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	regionHandler  *handler.RegionHandler
	weatherHandler *handler.WeatherHandler
	plantHandler   *handler.PlantHandler
	eventHandler   *handler.EventHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		regionHandler:  params.RegionHandler,
		weatherHandler: params.WeatherHandler,
		plantHandler:   params.PlantHandler,
		eventHandler:   params.EventHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
		authGroup.GET("/google", r.userHandler.GoogleAuth)
		authGroup.GET("/google/callback", r.userHandler.GoogleCallback)
		authGroup.POST("/google/callback", r.userHandler.GoogleCallback)
		authGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	regionGroup := e.Group("/region")
	regionGroup.Use(r.authMiddleware.Authenticate)
	{
		regionGroup.GET("/", r.regionHandler.GetRegion)
		regionGroup.POST("/", r.regionHandler.SetRegion)
	}

	weatherGroup := e.Group("/weather")
	{
		weatherGroup.GET("/current", r.weatherHandler.Current)
		weatherGroup.GET("/forecast", r.weatherHandler.Forecast)
		weatherGroup.GET("/daily", r.weatherHandler.Daily)
	}

	plantGroup := e.Group("/plants")
	plantGroup.Use(r.authMiddleware.Authenticate)
	{
		plantGroup.GET("/", r.plantHandler.ListPlants)
		plantGroup.POST("/", r.plantHandler.AddPlant)
		plantGroup.PUT("/:id/water", r.plantHandler.RecordWatering)
		plantGroup.GET("/plant/water", r.plantHandler.ListNeedingWater)
		plantGroup.GET("/search", r.plantHandler.Search)
		plantGroup.GET("/recommendations", r.plantHandler.Recommendations)
	}

	eventGroup := e.Group("/events")
	eventGroup.Use(r.authMiddleware.Authenticate)
	{
		eventGroup.GET("/", r.eventHandler.ListEvents)
		eventGroup.POST("/", r.eventHandler.AddEvent)
		eventGroup.POST("/generate-news", r.eventHandler.GenerateNews)
		eventGroup.POST("/generate-reminders", r.eventHandler.GenerateReminders)
		eventGroup.POST("/generate-tips", r.eventHandler.GenerateTips)
		eventGroup.PUT("/:id/mark-read", r.eventHandler.MarkRead)
	}
}
