package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jcepedarey/emmita-backend/app/config"
)

const (
	connectTimeout     = 30 * time.Second
	healthCheckTimeout = 5 * time.Second
)

// DB owns the pgx pool shared by the profile, tenant and signup repositories.
type DB struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewConnection opens the pool described by cfg and pings it once. The pool
// is sized by DB_MAX_CONNS; idle connections are dropped after
// DB_MAX_CONN_IDLE_TIME.
func NewConnection(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	poolConfig, err := poolConfigFrom(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open tenant database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("tenant database unreachable: %w", err)
	}

	logger.Info("tenant database ready",
		"host", poolConfig.ConnConfig.Host,
		"database", poolConfig.ConnConfig.Database,
		"pool_size", poolConfig.MaxConns)

	return &DB{pool: pool, logger: logger}, nil
}

func poolConfigFrom(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.DatabaseMaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.DatabaseMaxConns)
	}
	if cfg.DatabaseIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.DatabaseIdleTime
	}
	return poolConfig, nil
}

// Close releases every pooled connection.
func (db *DB) Close() {
	if db.pool == nil {
		return
	}
	db.pool.Close()
	db.logger.Info("tenant database pool closed")
}

// Pool is what the repositories are built on.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// HealthCheck pings the database for the readiness probe.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.pool == nil {
		return errors.New("tenant database pool is not open")
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	return db.pool.Ping(ctx)
}
