package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/birthdayapi/birthdayapi/internal/cache"
	"github.com/birthdayapi/birthdayapi/internal/config"
	"github.com/birthdayapi/birthdayapi/internal/metrics"
	"github.com/birthdayapi/birthdayapi/internal/server"
	"github.com/birthdayapi/birthdayapi/internal/service"
	"github.com/birthdayapi/birthdayapi/internal/storage/backend"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage",
			slog.String("backend", cfg.Backend()),
			slog.String("error", sanitizeError(err, cfg.RedisURL, cfg.DatabaseURL)),
		)
		return err
	}

	var limiter *cache.Cache
	if cfg.RateLimitEnabled {
		limiter, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			_ = store.Close()
			return err
		}
		logger.Info("connected to Redis for rate limiting")
	}

	recorder := metrics.NewVictoria()
	svc := service.NewBirthdayService(store,
		service.WithLocation(loc),
		service.WithMetrics(recorder),
	)

	deps := routerDeps{
		cfg:     cfg,
		logger:  logger,
		service: svc,
		store:   store,
		exposer: recorder,
	}
	if limiter != nil {
		deps.limiter = limiter
	}

	srv := server.New(setupRouter(deps), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("storage", func(ctx context.Context) error {
		return store.Close()
	})
	if limiter != nil {
		srv.OnShutdown("rate-limiter", func(ctx context.Context) error {
			return limiter.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"environment", cfg.Environment,
		"backend", cfg.Backend(),
		"timezone", loc.String(),
		"version", Version,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}

func runProvision(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Backend() == config.BackendMemory {
		logger.Info("memory backend has nothing to provision")
		return nil
	}

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("provisioning failed",
			slog.String("backend", cfg.Backend()),
			slog.String("error", sanitizeError(err, cfg.RedisURL, cfg.DatabaseURL)),
		)
		return err
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s store: %w", cfg.Backend(), err)
	}

	logger.Info("storage provisioned", slog.String("backend", cfg.Backend()))
	return nil
}
