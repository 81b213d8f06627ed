// Package main is the entry point for the redemption optimizer service.
//
//	@title						Redemption Optimizer API
//	@version					1.0.0
//	@description				Ranks loyalty-miles redemptions (award flights, a hotel night, gift cards) by realized value per mile.
//
//	@contact.name				API Support
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/redemption-optimizer/redemption-optimizer/docs"

	// Application layers
	httpadapter "github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http/middleware"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/pricing/amadeus"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/pricing/demo"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/report"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/storage/memory"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/storage/sqlstore"
	"github.com/redemption-optimizer/redemption-optimizer/internal/config"
	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/retry"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
	"github.com/redemption-optimizer/redemption-optimizer/internal/usecase"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	logger.Init(cfg.LoggerConfig())
	log := logger.Global

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("pricing_source", cfg.Pricing.Source).
		Str("storage_driver", cfg.Storage.Driver).
		Msg("Configuration loaded")

	clock := timeutil.NewRealClock()

	lookup, err := buildLookup(cfg, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure pricing")
	}

	repo, closer, err := openFeedbackStore(cfg, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open feedback store")
	}
	defer closer.Close()

	settings := cfg.Valuation.Settings()
	recommendations := usecase.NewRecommendationUseCase(lookup, settings, cfg.Recommendation.UseCaseConfig())
	feedback := usecase.NewFeedbackUseCase(repo)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = httpadapter.MustTemplateRenderer()

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupWithOptions(e, log.Logger, middleware.Options{
		Recovery: middleware.RecoveryConfig{
			DisablePrintStack: cfg.IsProduction(),
			HTMLTemplate:      httpadapter.TemplateError,
		},
		BodyLimit: cfg.Server.BodyLimit,
	})

	api := httpadapter.NewRecommendationHandler(
		recommendations,
		feedback,
		report.NewGenerator(clock, cfg.App.Timezone),
		lookup.Name(),
	)
	httpadapter.RegisterRoutes(e, api, httpadapter.NewWebHandler(recommendations, feedback))

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, cfg)
}

// buildLookup registers the configured price lookups and chains the demo
// dataset behind the primary when fallback is enabled.
func buildLookup(cfg *config.Config, clock timeutil.Clock) (domain.PriceLookup, error) {
	log := logger.Global.WithComponent("pricing")

	registry := domain.NewLookupRegistry()
	registry.Register(demo.NewLookup())

	if cfg.Pricing.Source == config.PricingSourceAmadeus {
		if !cfg.Pricing.HasAmadeusCredentials() {
			log.Warn().Msg("AMADEUS_API_KEY or AMADEUS_API_SECRET not set; live pricing will fail")
		}
		registry.Register(amadeus.NewClient(amadeus.Config{
			BaseURL:    cfg.Pricing.AmadeusBaseURL,
			APIKey:     cfg.Pricing.AmadeusAPIKey,
			APISecret:  cfg.Pricing.AmadeusAPISecret,
			HTTPClient: &http.Client{Timeout: cfg.Pricing.HTTPTimeout},
			Retry:      retry.PricingConfig.WithMaxAttempts(cfg.Pricing.RetryAttempts),
			Clock:      clock,
		}))
	}

	primary, ok := registry.Get(cfg.Pricing.Source)
	if !ok {
		return nil, fmt.Errorf("pricing source %q not registered (have %v)", cfg.Pricing.Source, registry.Names())
	}

	if !cfg.Pricing.Fallback || primary.Name() == demo.SourceName {
		log.Info().Str("source", primary.Name()).Msg("Pricing lookup ready")
		return primary, nil
	}

	fallback, _ := registry.Get(demo.SourceName)
	chained := usecase.NewFallbackLookup(primary, fallback, cfg.Pricing.LookupTimeout)
	log.Info().Str("source", chained.Name()).Dur("timeout", cfg.Pricing.LookupTimeout).Msg("Pricing lookup ready")
	return chained, nil
}

// openFeedbackStore opens the configured feedback repository.
// The returned closer releases the database, if any.
func openFeedbackStore(cfg *config.Config, clock timeutil.Clock) (domain.FeedbackRepository, io.Closer, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		logger.Global.Warn().Msg("Feedback is kept in memory and lost on restart")
		return memory.NewRepository(clock), io.NopCloser(nil), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	store, err := sqlstore.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN, clock)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, cfg *config.Config) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
