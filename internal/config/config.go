// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files
// and an optional YAML valuation profile.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/usecase"
)

// Pricing sources.
const (
	PricingSourceAmadeus = "amadeus"
	PricingSourceDemo    = "demo"
)

// Storage drivers.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig
	Logging        LoggingConfig
	App            AppConfig
	Pricing        PricingConfig
	Valuation      ValuationConfig
	Recommendation RecommendationConfig
	Storage        StorageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// BodyLimit caps request bodies, in echo's size notation (e.g. "64K")
	BodyLimit string `env:"SERVER_BODY_LIMIT" envDefault:"64K"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	Caller      bool   `env:"LOG_CALLER" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"redemption-optimizer"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// Timezone is used to display report generation times
	Timezone string `env:"APP_TIMEZONE" envDefault:"UTC"`
}

// PricingConfig selects and tunes the flight price lookup.
type PricingConfig struct {
	// Source is the primary lookup: amadeus or demo
	Source string `env:"PRICING_SOURCE" envDefault:"amadeus"`

	// Fallback answers with the demo dataset when the primary lookup fails
	Fallback bool `env:"PRICING_FALLBACK" envDefault:"true"`

	// LookupTimeout bounds the primary lookup, retries included
	LookupTimeout time.Duration `env:"PRICING_TIMEOUT" envDefault:"8s"`

	// HTTPTimeout bounds a single request to the pricing API
	HTTPTimeout time.Duration `env:"PRICING_HTTP_TIMEOUT" envDefault:"5s"`

	RetryAttempts int `env:"PRICING_RETRY_ATTEMPTS" envDefault:"2"`

	AmadeusBaseURL   string `env:"AMADEUS_BASE_URL" envDefault:"https://test.api.amadeus.com"`
	AmadeusAPIKey    string `env:"AMADEUS_API_KEY"`
	AmadeusAPISecret string `env:"AMADEUS_API_SECRET"`
}

// HasAmadeusCredentials reports whether both Amadeus credentials are set.
func (p PricingConfig) HasAmadeusCredentials() bool {
	return p.AmadeusAPIKey != "" && p.AmadeusAPISecret != ""
}

// ValuationConfig holds the valuation assumptions.
// When Profile names a YAML file, values in the file replace these.
type ValuationConfig struct {
	Profile string `env:"VALUATION_PROFILE"`

	FlightAwardCPM     float64 `env:"VALUATION_FLIGHT_AWARD_CPM" envDefault:"1.3"`
	HotelCPM           float64 `env:"VALUATION_HOTEL_CPM" envDefault:"0.7"`
	GiftCardCPM        float64 `env:"VALUATION_GIFT_CARD_CPM" envDefault:"0.5"`
	FlightTaxesUSD     float64 `env:"VALUATION_FLIGHT_TAXES_USD" envDefault:"5.60"`
	SampleHotelCashUSD float64 `env:"VALUATION_SAMPLE_HOTEL_CASH_USD" envDefault:"220"`
}

// Settings returns the domain valuation settings.
func (v ValuationConfig) Settings() domain.ValuationSettings {
	return domain.ValuationSettings{
		FlightAwardCPM:     v.FlightAwardCPM,
		HotelCPM:           v.HotelCPM,
		GiftCardCPM:        v.GiftCardCPM,
		FlightTaxesUSD:     v.FlightTaxesUSD,
		SampleHotelCashUSD: v.SampleHotelCashUSD,
	}
}

func (v *ValuationConfig) apply(s domain.ValuationSettings) {
	v.FlightAwardCPM = s.FlightAwardCPM
	v.HotelCPM = s.HotelCPM
	v.GiftCardCPM = s.GiftCardCPM
	v.FlightTaxesUSD = s.FlightTaxesUSD
	v.SampleHotelCashUSD = s.SampleHotelCashUSD
}

// RecommendationConfig holds recommendation assembly limits.
type RecommendationConfig struct {
	MaxFlightCandidates int `env:"RECOMMENDATION_MAX_FLIGHTS" envDefault:"10"`
	TopFlights          int `env:"RECOMMENDATION_TOP_FLIGHTS" envDefault:"5"`
}

// UseCaseConfig converts the limits to the use case configuration.
func (r RecommendationConfig) UseCaseConfig() *usecase.Config {
	return &usecase.Config{
		MaxFlightCandidates: r.MaxFlightCandidates,
		TopFlights:          r.TopFlights,
	}
}

// StorageConfig selects the feedback store.
type StorageConfig struct {
	// Driver is sqlite, postgres or memory
	Driver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`

	// DSN is the data source name passed to database/sql
	DSN string `env:"STORAGE_DSN" envDefault:"file:redemption.db"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Valuation.Profile != "" {
		settings, err := LoadProfile(cfg.Valuation.Profile, cfg.Valuation.Settings())
		if err != nil {
			return nil, fmt.Errorf("load valuation profile: %w", err)
		}
		cfg.Valuation.apply(settings)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.Pricing.LookupTimeout <= 0 {
		return fmt.Errorf("PRICING_TIMEOUT must be positive")
	}
	if cfg.Pricing.HTTPTimeout <= 0 {
		return fmt.Errorf("PRICING_HTTP_TIMEOUT must be positive")
	}

	// A single HTTP call must fit inside the lookup budget
	if cfg.Pricing.HTTPTimeout > cfg.Pricing.LookupTimeout {
		return fmt.Errorf("PRICING_HTTP_TIMEOUT (%s) should not exceed PRICING_TIMEOUT (%s)",
			cfg.Pricing.HTTPTimeout, cfg.Pricing.LookupTimeout)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	validSources := map[string]bool{PricingSourceAmadeus: true, PricingSourceDemo: true}
	if !validSources[cfg.Pricing.Source] {
		return fmt.Errorf("PRICING_SOURCE must be one of: amadeus, demo; got %q", cfg.Pricing.Source)
	}
	if cfg.Pricing.RetryAttempts < 1 || cfg.Pricing.RetryAttempts > 5 {
		return fmt.Errorf("PRICING_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.Pricing.RetryAttempts)
	}

	if err := cfg.Valuation.Settings().Validate(); err != nil {
		return fmt.Errorf("VALUATION: %w", err)
	}

	if cfg.Recommendation.MaxFlightCandidates < 1 {
		return fmt.Errorf("RECOMMENDATION_MAX_FLIGHTS must be at least 1, got %d", cfg.Recommendation.MaxFlightCandidates)
	}
	if cfg.Recommendation.TopFlights < 1 || cfg.Recommendation.TopFlights > cfg.Recommendation.MaxFlightCandidates {
		return fmt.Errorf("RECOMMENDATION_TOP_FLIGHTS must be between 1 and RECOMMENDATION_MAX_FLIGHTS (%d), got %d",
			cfg.Recommendation.MaxFlightCandidates, cfg.Recommendation.TopFlights)
	}

	validDrivers := map[string]bool{StorageSQLite: true, StoragePostgres: true, StorageMemory: true}
	if !validDrivers[cfg.Storage.Driver] {
		return fmt.Errorf("STORAGE_DRIVER must be one of: sqlite, postgres, memory; got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver != StorageMemory && cfg.Storage.DSN == "" {
		return fmt.Errorf("STORAGE_DSN is required for driver %q", cfg.Storage.Driver)
	}

	return nil
}

// LoggerConfig converts the logging settings to the logger configuration.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		Format:       c.Logging.Format,
		EnableCaller: c.Logging.Caller,
		ServiceName:  c.Logging.ServiceName,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
