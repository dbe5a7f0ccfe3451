package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres"
	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/catalog"
	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/entry"
	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/workout"
	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/workoutexercise"
	"github.com/nilecochen/trainlog-backend/internal/config"
	"github.com/nilecochen/trainlog-backend/internal/service/workoutlog"
)

// Run is the application entry point. It loads configuration, initializes
// the logger and the database pool, wires the workout-log engine, and
// blocks until the context is canceled. Request dispatch, authentication
// and the chat assistant are separate deployables that embed or call this
// engine; they are not started here.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := BuildEngine(logger, pool, cfg.Engine)

	// Startup self-check: listing for user 0 matches nobody, so only the
	// seeded global catalog comes back. A failure here means the schema or
	// the seeds are broken and the engine is not usable.
	names, err := svc.ListExerciseNames(ctx, 0)
	if err != nil {
		return fmt.Errorf("engine self-check: %w", err)
	}

	logger.Info("engine ready", slog.Int("global_exercises", len(names)))

	<-ctx.Done()
	logger.Info("shutting down")

	return nil
}

// BuildEngine wires the repositories, the ownership guard and the
// transaction manager into a workout-log service over the given pool.
func BuildEngine(logger *slog.Logger, pool *pgxpool.Pool, engineCfg config.EngineConfig) *workoutlog.Service {
	return workoutlog.NewService(
		logger,
		postgres.NewTxManager(pool),
		ownership.New(pool),
		workout.New(pool),
		workoutexercise.New(pool),
		entry.New(pool),
		catalog.NewExercises(pool),
		catalog.NewMetricDefinitions(pool),
		engineCfg,
	)
}
