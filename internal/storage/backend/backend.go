// Package backend turns configuration into a concrete storage.Store.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/cache"
	"github.com/birthdayapi/birthdayapi/internal/config"
	"github.com/birthdayapi/birthdayapi/internal/storage"
	"github.com/birthdayapi/birthdayapi/internal/storage/dynamo"
	"github.com/birthdayapi/birthdayapi/internal/storage/memory"
	"github.com/birthdayapi/birthdayapi/internal/storage/postgres"
	"github.com/birthdayapi/birthdayapi/internal/storage/redisstore"
	"github.com/birthdayapi/birthdayapi/internal/storage/sqlite"
)

// Open connects to the backend selected by cfg.Backend() and provisions its
// schema: SQLite migrations, the DynamoDB table, or the Postgres table.
// Any error here is a startup failure.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	name := cfg.Backend()

	switch name {
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("storage ready", slog.String("backend", name), slog.String("path", cfg.SQLitePath))
		return s, nil

	case config.BackendDynamoDB:
		ctx, cancel := context.WithTimeout(ctx, cfg.DynamoDBTableWait+30*time.Second)
		defer cancel()

		s, err := dynamo.New(ctx, dynamo.Options{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
			Table:           cfg.DynamoDBTable,
			ReadCapacity:    cfg.DynamoDBReadCapacity,
			WriteCapacity:   cfg.DynamoDBWriteCapacity,
			TableWait:       cfg.DynamoDBTableWait,
		})
		if err != nil {
			return nil, fmt.Errorf("open dynamodb store: %w", err)
		}
		logger.Info("storage ready",
			slog.String("backend", name),
			slog.String("region", cfg.AWSRegion),
			slog.String("table", cfg.DynamoDBTable),
		)
		return s, nil

	case config.BackendRedis:
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		logger.Info("storage ready", slog.String("backend", name))
		return redisstore.New(c), nil

	case config.BackendPostgres:
		s, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		logger.Info("storage ready", slog.String("backend", name))
		return s, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage; records are lost on restart")
		return memory.New(), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", name)
}
