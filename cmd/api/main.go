// Package main provides the entrypoint for the carbonwise API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/carbonwise/carbonwise/internal/api"
	"github.com/carbonwise/carbonwise/internal/api/middleware"
	"github.com/carbonwise/carbonwise/internal/config"
	"github.com/carbonwise/carbonwise/internal/footprint"
	"github.com/carbonwise/carbonwise/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "carbonwise-api"

func main() {
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log = log.Level(cfg.Level())

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.App.Environment).
		Msg("starting carbonwise API")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.FromConfig(cfg, serviceName, Version))
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()
	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Float64("sample_ratio", cfg.Telemetry.SampleRatio).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	service, err := footprint.NewService(footprint.ServiceConfig{Engine: engine, Logger: log})
	if err != nil {
		return err
	}

	router, err := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Service:     service,
		RequireTLS:  cfg.HTTP.RequireTLS,
		RateLimits: &api.RateLimits{
			Enabled:   cfg.HTTP.RateLimit.Enabled,
			Calculate: middleware.PerMinute(cfg.HTTP.RateLimit.CalculatePerMinute),
			Standard:  middleware.PerMinute(cfg.HTTP.RateLimit.StandardPerMinute),
		},
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newEngine builds the calculation engine, loading factor overrides when a
// factors file is configured.
func newEngine(cfg *config.Config, log zerolog.Logger) (*footprint.Engine, error) {
	engineCfg := footprint.EngineConfig{MaxRecommendations: cfg.Engine.MaxRecommendations}
	if path := cfg.Engine.FactorsPath; path != "" {
		factors, err := footprint.LoadFactors(path)
		if err != nil {
			return nil, err
		}
		engineCfg.Factors = &factors
		log.Info().Str("path", path).Msg("emission factors loaded")
	}
	return footprint.NewEngine(engineCfg)
}
