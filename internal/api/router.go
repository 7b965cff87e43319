// Package api provides the HTTP API for carbonwise.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/carbonwise/carbonwise/internal/api/handler"
	"github.com/carbonwise/carbonwise/internal/api/middleware"
	"github.com/carbonwise/carbonwise/internal/api/response"
	"github.com/carbonwise/carbonwise/internal/footprint"
)

const defaultServiceName = "carbonwise-api"

// RateLimits configures per-IP limits by endpoint group.
type RateLimits struct {
	Enabled   bool
	Calculate middleware.RateLimitConfig
	Standard  middleware.RateLimitConfig
}

// DefaultRateLimits returns the built-in limits.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Enabled:   true,
		Calculate: middleware.CalculateRateLimit,
		Standard:  middleware.StandardRateLimit,
	}
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	// Service performs calculations. Nil uses a service over the default engine.
	Service    *footprint.Service
	RequireTLS bool
	// RateLimits defaults to DefaultRateLimits when nil.
	RateLimits *RateLimits
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) (*chi.Mux, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	service := cfg.Service
	if service == nil {
		var err error
		service, err = footprint.NewService(footprint.ServiceConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, err
		}
	}

	limits := DefaultRateLimits()
	if cfg.RateLimits != nil {
		limits = *cfg.RateLimits
	}

	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))
	r.Use(middleware.ContentTypeJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route matches "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r, r.Method+" is not supported on "+r.URL.Path)
	})

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, service.Engine())
	footprintHandler := handler.NewFootprintHandler(service, cfg.Logger)
	metadataHandler := handler.NewMetadataHandler(service.Engine())

	calculateLimit := passthrough
	standardLimit := passthrough
	if limits.Enabled {
		calculateLimit = middleware.RateLimitByIP(limits.Calculate)
		standardLimit = middleware.RateLimitByIP(limits.Standard)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.With(calculateLimit, middleware.RequireJSON).
			Post("/footprint:calculate", footprintHandler.Calculate)

		r.Route("/footprint", func(r chi.Router) {
			r.Use(standardLimit)
			r.Get("/defaults", footprintHandler.GetDefaults)
		})

		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardLimit)
			r.Get("/enums", metadataHandler.GetEnums)
			r.Get("/categories", metadataHandler.ListCategories)
			r.Get("/factors", metadataHandler.GetFactors)
		})
	})

	return r, nil
}

func passthrough(next http.Handler) http.Handler {
	return next
}
