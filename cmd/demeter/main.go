// Demeter is a gardening assistant backend: identity, region soil/climate
// enrichment, weather lookups, a plant registry with LLM-assisted watering
// schedules and generated garden events.
package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/SookX/Demeter/config"
	"github.com/SookX/Demeter/internal/delivery"
	"github.com/SookX/Demeter/internal/delivery/http"
	"github.com/SookX/Demeter/internal/delivery/http/middleware"
	"github.com/SookX/Demeter/internal/delivery/http/router/handler"
	"github.com/SookX/Demeter/internal/infra/agro"
	"github.com/SookX/Demeter/internal/infra/auth"
	"github.com/SookX/Demeter/internal/infra/auth/google"
	"github.com/SookX/Demeter/internal/infra/completion"
	logs "github.com/SookX/Demeter/internal/infra/log"
	"github.com/SookX/Demeter/internal/infra/persistence/postgres"
	"github.com/SookX/Demeter/internal/infra/taxonomy"
	"github.com/SookX/Demeter/internal/infra/weather"
	"github.com/SookX/Demeter/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewRegionRepository,
			postgres.NewPlantRepository,
			postgres.NewEventRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewAuthService,
			weather.NewOpenWeatherProvider,
			agro.NewOpenEPISoilProvider,
			agro.NewKoppenClimateProvider,
			taxonomy.NewTrefleProvider,
			completion.NewGroqProvider,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewRegionService,
			impl.NewWeatherService,
			impl.NewPlantService,
			impl.NewEventService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewRegionHandler,
			handler.NewWeatherHandler,
			handler.NewPlantHandler,
			handler.NewEventHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
