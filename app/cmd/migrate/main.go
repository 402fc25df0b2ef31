package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/Jcepedarey/emmita-backend/app/config"
	"github.com/Jcepedarey/emmita-backend/app/utils/database"
	"github.com/Jcepedarey/emmita-backend/app/utils/logger"
	"github.com/Jcepedarey/emmita-backend/app/utils/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	var (
		command = flag.String("command", "up", "Migration command (up, down, status)")
		steps   = flag.Int("steps", 1, "Number of steps for down migration")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Could not load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = "debug"
	}
	appLogger, err := logger.New(logLevel)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), *command, *steps, cfg, appLogger); err != nil {
		appLogger.Error("Migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, steps int, cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	conn, err := database.NewConnection(ctx, database.DefaultConfig(cfg.DatabaseDSN()), log)
	if err != nil {
		return err
	}
	defer conn.Close()

	files, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	migrator := migration.NewMigrator(conn.DB(), log, files)

	switch command {
	case "up":
		if err := migrator.Up(ctx); err != nil {
			return err
		}
		log.Info("All migrations applied successfully")

	case "down":
		if steps <= 0 {
			steps = 1
		}
		for i := 0; i < steps; i++ {
			if err := migrator.Down(ctx); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		log.Info("Migrations rolled back successfully", "steps", steps)

	case "status":
		states, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		for _, st := range states {
			switch {
			case st.Drifted:
				log.Warn("Migration changed after apply", "version", st.Version, "name", st.Name)
			case st.Applied:
				log.Info("Migration applied", "version", st.Version, "name", st.Name,
					"applied_at", st.AppliedAt.Format(time.RFC3339))
			default:
				log.Info("Migration pending", "version", st.Version, "name", st.Name)
			}
		}

	default:
		return fmt.Errorf("unknown command %q (available: up, down, status)", command)
	}
	return nil
}
