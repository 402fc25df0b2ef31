// Package database opens the database/sql connection used by the migration
// command. The API server itself uses the pgx pool in driver/postgres.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

// Config holds database connection configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnTimeout     time.Duration
}

// DefaultConfig returns the pool settings used for one-off commands.
func DefaultConfig(dsn string) *Config {
	return &Config{
		DSN:             dsn,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnTimeout:     10 * time.Second,
	}
}

// Connection represents a database connection wrapper
type Connection struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewConnection opens and pings a lib/pq connection.
func NewConnection(ctx context.Context, config *Config, logger *slog.Logger) (*Connection, error) {
	if config.DSN == "" {
		return nil, errors.New("database DSN is required")
	}
	logger = logger.With("component", "database")

	logger.Info("Connecting to database", "target", redactDSN(config.DSN))

	db, err := sql.Open("postgres", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, config.ConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully")
	return &Connection{db: db, logger: logger}, nil
}

// NewConnectionWithDB wraps an already opened handle.
func NewConnectionWithDB(db *sql.DB, logger *slog.Logger) *Connection {
	return &Connection{db: db, logger: logger.With("component", "database")}
}

// DB returns the underlying *sql.DB instance
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}
	c.logger.Info("Closing database connection")
	return c.db.Close()
}

// WithTransaction runs fn inside a transaction, rolling back when fn fails.
func (c *Connection) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// redactDSN drops credentials from a URL-style DSN for logging.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "(unparsed dsn)"
	}
	return u.Host + u.Path
}
