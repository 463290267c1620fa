package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/adapters/fxprovider"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/handlers"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/middleware"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/platform/scheduler"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/repositories/database/pgsql"
	"github.com/umutdinceryananer/FX-Risk-Calculator/pkg/config"
	"github.com/umutdinceryananer/FX-Risk-Calculator/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.PrometheusMiddleware())
	r.Use(cors.New(buildCORSConfig(cfg)))

	rateLimiter, err := buildRateLimiter(cfg)
	if err != nil {
		logger.Error("Failed to build rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	primary, err := buildProvider(cfg.PrimaryProvider, cfg, logger)
	if err != nil {
		logger.Error("Failed to build primary provider", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fallback, err := buildProvider(cfg.FallbackProvider, cfg, logger)
	if err != nil {
		logger.Error("Failed to build fallback provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, primary, fallback)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	if cfg.SchedulerEnabled {
		sched := scheduler.New(serviceContainer.Rates, logger)
		if err := sched.Start(cfg.RefreshCron); err != nil {
			logger.Error("Failed to start scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer sched.Stop()
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildProvider maps a configured provider name to its implementation. An
// empty name disables that slot (used for running without a fallback).
func buildProvider(name string, cfg *config.Config, logger *slog.Logger) (fxprovider.RateProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return nil, nil
	case fxprovider.ExchangeRateHostName:
		client := fxprovider.NewHTTPClient(fxprovider.HTTPClientConfig{
			BaseURL:    cfg.ExchangeRateHostBaseURL,
			Timeout:    cfg.RequestTimeout,
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
		}, logger)
		return fxprovider.NewExchangeRateHostProvider(client), nil
	case fxprovider.FrankfurterName:
		client := fxprovider.NewHTTPClient(fxprovider.HTTPClientConfig{
			BaseURL:    cfg.FrankfurterBaseURL,
			Timeout:    cfg.RequestTimeout,
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
		}, logger)
		return fxprovider.NewFrankfurterProvider(client), nil
	case fxprovider.MockName:
		return fxprovider.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown rate provider %q", name)
	}
}

func buildCORSConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	for _, origin := range cfg.CORSAllowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
	}
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	return corsConfig
}

func buildRateLimiter(cfg *config.Config) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	return limiter.New(memorystore.NewStore(), rate), nil
}

// runMigrations applies all pending schema migrations through a temporary
// database/sql connection, since golang-migrate does not speak pgxpool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
