// Package migration applies the versioned SQL files embedded in the migrate
// command.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Migration is one versioned schema change.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	Checksum  string
	AppliedAt time.Time
}

// State describes a migration in a status report.
type State struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt time.Time
	// Drifted is set when the applied checksum no longer matches the file.
	Drifted bool
}

type Migrator struct {
	db           *sql.DB
	logger       *slog.Logger
	migrationsFS fs.FS
}

// NewMigrator creates a new migration manager
func NewMigrator(db *sql.DB, logger *slog.Logger, migrationsFS fs.FS) *Migrator {
	return &Migrator{
		db:           db,
		logger:       logger.With("component", "migrator"),
		migrationsFS: migrationsFS,
	}
}

// CreateMigrationsTable creates the migrations tracking table
func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	const query = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		checksum VARCHAR(64) NOT NULL
	)`

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// LoadMigrations reads NNN_name.up.sql / NNN_name.down.sql pairs.
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	var migrations []Migration
	seen := make(map[int]string)

	err := fs.WalkDir(m.migrationsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, upSuffix) {
			return nil
		}

		version, name, err := parseFilename(path.Base(p))
		if err != nil {
			return err
		}
		if other, dup := seen[version]; dup {
			return fmt.Errorf("duplicate migration version %d: %s and %s", version, other, name)
		}
		seen[version] = name

		up, err := fs.ReadFile(m.migrationsFS, p)
		if err != nil {
			return fmt.Errorf("failed to read up migration %s: %w", p, err)
		}
		downPath := strings.TrimSuffix(p, upSuffix) + downSuffix
		down, err := fs.ReadFile(m.migrationsFS, downPath)
		if err != nil {
			return fmt.Errorf("failed to read down migration %s: %w", downPath, err)
		}

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			UpSQL:    string(up),
			DownSQL:  string(down),
			Checksum: checksum(string(up)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// GetAppliedMigrations returns the applied migrations in version order.
func (m *Migrator) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version, name, checksum, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	var migrations []Migration
	for rows.Next() {
		var mig Migration
		if err := rows.Scan(&mig.Version, &mig.Name, &mig.Checksum, &mig.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		migrations = append(migrations, mig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating migration rows: %w", err)
	}
	return migrations, nil
}

// Up runs all pending migrations. It refuses to run when an applied
// migration was edited after it ran.
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return err
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return err
	}
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	appliedSums := make(map[int]string, len(applied))
	for _, mig := range applied {
		appliedSums[mig.Version] = mig.Checksum
	}

	for _, mig := range all {
		if sum, ok := appliedSums[mig.Version]; ok {
			if sum != mig.Checksum {
				return fmt.Errorf("migration %d (%s) changed after it was applied", mig.Version, mig.Name)
			}
			continue
		}

		if err := m.apply(ctx, mig); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", mig.Version, err)
		}
		m.logger.InfoContext(ctx, "Applied migration", "version", mig.Version, "name", mig.Name)
	}
	return nil
}

// Down rolls back the last applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.logger.InfoContext(ctx, "No migrations to roll back")
		return nil
	}
	last := applied[len(applied)-1]

	all, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	for _, mig := range all {
		if mig.Version != last.Version {
			continue
		}
		if err := m.rollback(ctx, mig); err != nil {
			return fmt.Errorf("failed to rollback migration %d: %w", mig.Version, err)
		}
		m.logger.InfoContext(ctx, "Rolled back migration", "version", mig.Version, "name", mig.Name)
		return nil
	}
	return fmt.Errorf("migration %d not found in filesystem", last.Version)
}

// Status reports every known migration and whether it ran.
func (m *Migrator) Status(ctx context.Context) ([]State, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return nil, err
	}
	all, err := m.LoadMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]Migration, len(applied))
	for _, mig := range applied {
		byVersion[mig.Version] = mig
	}

	states := make([]State, 0, len(all))
	for _, mig := range all {
		st := State{Version: mig.Version, Name: mig.Name}
		if a, ok := byVersion[mig.Version]; ok {
			st.Applied = true
			st.AppliedAt = a.AppliedAt
			st.Drifted = a.Checksum != mig.Checksum
		}
		states = append(states, st)
	}
	return states, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		mig.Version, mig.Name, mig.Checksum); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}

func (m *Migrator) rollback(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.DownSQL); err != nil {
		return fmt.Errorf("failed to execute rollback: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	return tx.Commit()
}

// parseFilename splits "001_create_tenants.up.sql" into 1 and
// "create_tenants".
func parseFilename(filename string) (int, string, error) {
	base := strings.TrimSuffix(filename, upSuffix)
	prefix, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("invalid migration filename: %s", filename)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("invalid migration version in %s", filename)
	}
	return version, name, nil
}

func checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
