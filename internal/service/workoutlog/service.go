// Package workoutlog implements the workout data engine: the ownership
// guard, the namespace resolver over the exercise and metric catalogs, the
// atomic entry replacement transaction, and the derived-cache invalidation
// that follows every mutation.
//
// Every operation takes the caller's user id explicitly; the engine never
// infers identity. Identity verification belongs to the request dispatcher.
package workoutlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/config"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type ownershipGuard interface {
	Check(ctx context.Context, chain ownership.Chain, targetID, userID int64) error
	Lock(ctx context.Context, chain ownership.Chain, targetID, userID int64) error
}

type catalogRepo interface {
	FindVisible(ctx context.Context, name string, userID int64) (int64, error)
	CreateOwned(ctx context.Context, name string, userID int64) (int64, error)
}

type exerciseCatalog interface {
	catalogRepo
	ListVisibleNames(ctx context.Context, userID int64) ([]string, error)
	ListVisible(ctx context.Context, userID int64, prefix string) ([]domain.CatalogRow, error)
}

type workoutRepo interface {
	Create(ctx context.Context, userID int64, date time.Time, kind *string) (*domain.Workout, error)
	GetMeta(ctx context.Context, userID, workoutID int64) (*domain.WorkoutMeta, error)
	UpdateMeta(ctx context.Context, userID, workoutID int64, date *time.Time, kind *string) (*domain.WorkoutMeta, error)
	Delete(ctx context.Context, userID, workoutID int64) error
	ClearEmbedding(ctx context.Context, workoutID int64) error
	ClearEmbeddingByWorkoutExercise(ctx context.Context, workoutExerciseID int64) error
}

type attachmentRepo interface {
	Insert(ctx context.Context, workoutID, exerciseID int64) (int64, error)
	Update(ctx context.Context, workoutExerciseID int64, exerciseID *int64, note *string) error
	GetRef(ctx context.Context, workoutExerciseID int64) (*domain.WorkoutExerciseRef, error)
	GetWorkoutID(ctx context.Context, workoutExerciseID int64) (int64, error)
	GetExerciseID(ctx context.Context, workoutExerciseID int64) (int64, error)
	Delete(ctx context.Context, userID, workoutExerciseID int64) error
	ListForWorkout(ctx context.Context, userID, workoutID int64) ([]domain.WorkoutExerciseRef, error)
	ClearEmbedding(ctx context.Context, workoutExerciseID int64) error
}

type entryRepo interface {
	ListIDs(ctx context.Context, workoutExerciseID int64) ([]int64, error)
	DeleteWithMetrics(ctx context.Context, entryIDs []int64) error
	Insert(ctx context.Context, workoutExerciseID int64, entryIndex int) (*domain.Entry, error)
	InsertMetrics(ctx context.Context, entryID int64, metrics []domain.EntryMetric) error
	ListWithMetrics(ctx context.Context, workoutExerciseID int64) ([]domain.EntryWithMetrics, error)
	LastEntryMetrics(ctx context.Context, userID, exerciseID int64) ([]domain.EntryMetric, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the workout-log engine.
type Service struct {
	log         *slog.Logger
	tx          txManager
	guard       ownershipGuard
	workouts    workoutRepo
	attachments attachmentRepo
	entries     entryRepo
	exercises   exerciseCatalog
	metrics     catalogRepo
	cfg         config.EngineConfig
}

// NewService creates a new workout-log service.
func NewService(
	logger *slog.Logger,
	tx txManager,
	guard ownershipGuard,
	workouts workoutRepo,
	attachments attachmentRepo,
	entries entryRepo,
	exercises exerciseCatalog,
	metrics catalogRepo,
	cfg config.EngineConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "workoutlog"),
		tx:          tx,
		guard:       guard,
		workouts:    workouts,
		attachments: attachments,
		entries:     entries,
		exercises:   exercises,
		metrics:     metrics,
		cfg:         cfg,
	}
}
