package database

import (
	"context"
	"time"

	"go-jobboard-backend/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// connectAttempts bounds the startup retry loop; request paths never retry.
const connectAttempts = 5

func NewPostgresConnection(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	// Transaction-mode poolers (PgBouncer) reject named prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectAttempts),
		ctx,
	)
	err = backoff.RetryNotify(func() error {
		return pool.Ping(ctx)
	}, policy, func(err error, wait time.Duration) {
		logger.Log.Warn("Database not reachable yet, retrying", "error", err, "wait", wait.String())
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	logger.Log.Info("Database connection established successfully")
	return pool, nil
}
