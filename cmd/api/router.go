package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/birthdayapi/birthdayapi/internal/config"
	"github.com/birthdayapi/birthdayapi/internal/handler"
	"github.com/birthdayapi/birthdayapi/internal/metrics"
	"github.com/birthdayapi/birthdayapi/internal/middleware"
)

type routerDeps struct {
	cfg     *config.Config
	logger  *slog.Logger
	service handler.BirthdayService
	store   handler.HealthChecker
	exposer metrics.Exposer
	// nil disables rate limiting regardless of cfg.
	limiter middleware.IPRateLimiter
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) http.Handler {
	cfg := deps.cfg
	logger := deps.logger

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	healthHandler := handler.NewHealthHandler(cfg.Environment, deps.store)
	r.Get("/health", healthHandler.Health)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", handler.NewMetricsHandler(deps.exposer).Metrics)

	rateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  logger,
		Limiter: deps.limiter,
		Enabled: cfg.RateLimitEnabled,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	})

	helloHandler := handler.NewHelloHandler(deps.service, logger)
	r.With(rateLimit).Put("/hello/{username}", helloHandler.Put)
	r.With(rateLimit).Get("/hello/{username}", helloHandler.Get)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
