package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"marketplace/docs"
	"marketplace/internal/auth"
	"marketplace/internal/cache"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/database/migration"
	"marketplace/internal/feed"
	handlers "marketplace/internal/http/handler"
	"marketplace/internal/http/middleware"
	"marketplace/internal/janitor"
	"marketplace/internal/logging"
	"marketplace/internal/otel"
	"marketplace/internal/repository/postgres"
	"marketplace/internal/service"
	"marketplace/internal/storage"
)

const serviceName = "marketplace"

// @title Makadi Heights Marketplace API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logging.Init(serviceName, cfg.Env, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	store := newCache(ctx, cfg.Redis)

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid auth configuration")
	}

	listingRepo := postgres.NewListingPostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)
	credentialRepo := postgres.NewCredentialPostgres(db)
	savedRepo := postgres.NewSavedPostgres(db)
	reportRepo := postgres.NewReportPostgres(db)

	listingSvc := service.NewListingService(service.ListingDeps{
		Listings: listingRepo,
		Profiles: profileRepo,
		Saved:    savedRepo,
		Reports:  reportRepo,
		Store:    objStore,
		Loader:   feed.NewLoader(listingRepo, store, cfg.Feed.Debounce, log.Logger),
		PageSize: cfg.Feed.PageSize,
		Log:      log.Logger,
	})
	authSvc := service.NewAuthService(credentialRepo, profileRepo, tokens, auth.NewSessions(store))
	adminSvc := service.NewAdminService(listingRepo, profileRepo, reportRepo, objStore, log.Logger)

	sweeper := janitor.New(objStore, listingRepo, cfg.Janitor.OrphanAge, log.Logger)
	if err := sweeper.Start(cfg.Janitor.Schedule); err != nil {
		log.Fatal().Err(err).Msg("failed to start janitor")
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Ten images per upload batch.
		BodyLimit:             64 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Handler())
	app.Use(middleware.Logger(log.Logger, loc))

	handlers.RegisterRoutes(app, db, listingSvc, authSvc, adminSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		shutdown(app, sweeper, shutdownTracing)
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// newCache connects to Redis when configured. Without it the feed cache is disabled and
// sessions are stateless.
func newCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, feed cache and session revocation disabled")
		return cache.Noop{}
	}
	c, _, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	return c
}

func shutdown(app *fiber.App, sweeper *janitor.Janitor, shutdownTracing func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	sweeper.Stop(ctx)
	if err := shutdownTracing(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
