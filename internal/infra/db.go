// README: Postgres connection pool initialization using pgxpool.
package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"voyage/internal/logger"
)

const dbPingAttempts = 5

func NewDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

// WaitForDB pings with a linear backoff until the pool answers or attempts run out.
func WaitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	var err error
	for attempt := 1; attempt <= dbPingAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			logger.Log.Info("database connection ok")
			return nil
		}
		wait := time.Duration(attempt) * 200 * time.Millisecond
		logger.Log.Warn("database ping failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if attempt < dbPingAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", dbPingAttempts, err)
}
