// Command seeder applies database migrations and optionally extends the
// global catalogs. It is intended to be run offline, not as part of the
// main server.
//
// Flags:
//
//	--migrations  path to the goose migrations directory (default ./migrations)
//	--exercises   comma-separated exercise names to add as global catalog rows
//	--metrics     comma-separated metric keys to add as global definitions
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/nilecochen/trainlog-backend/internal/app"
	"github.com/nilecochen/trainlog-backend/internal/config"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

func main() {
	migrationsFlag := flag.String("migrations", "./migrations", "path to goose migrations directory")
	exercisesFlag := flag.String("exercises", "", "comma-separated exercise names to add as global rows")
	metricsFlag := flag.String("metrics", "", "comma-separated metric keys to add as global definitions")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*migrationsFlag))
	if err != nil {
		logger.Error("create goose provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		logger.Error("apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("migrations applied", slog.Int("count", len(results)))

	if err := seedGlobals(ctx, db, *exercisesFlag, *metricsFlag); err != nil {
		logger.Error("seed globals", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding complete")
}

// seedGlobals inserts extra global catalog rows. Existing names are left
// untouched.
func seedGlobals(ctx context.Context, db *sql.DB, exercises, metrics string) error {
	for _, raw := range strings.Split(exercises, ",") {
		name := domain.NormalizeExerciseName(raw)
		if name == "" {
			continue
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO exercises (name, is_global) VALUES ($1, TRUE) ON CONFLICT DO NOTHING`,
			name,
		); err != nil {
			return err
		}
	}

	for _, raw := range strings.Split(metrics, ",") {
		key := domain.NormalizeMetricKey(raw)
		if key == "" {
			continue
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO metric_definitions (key, is_global) VALUES ($1, TRUE) ON CONFLICT DO NOTHING`,
			key,
		); err != nil {
			return err
		}
	}

	return nil
}
