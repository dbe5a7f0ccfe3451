package workoutlog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/config"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockGuard struct {
	CheckFunc func(ctx context.Context, chain ownership.Chain, targetID, userID int64) error
	LockFunc  func(ctx context.Context, chain ownership.Chain, targetID, userID int64) error
}

func (m *mockGuard) Check(ctx context.Context, chain ownership.Chain, targetID, userID int64) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, chain, targetID, userID)
	}
	// Default: everything is owned.
	return nil
}

func (m *mockGuard) Lock(ctx context.Context, chain ownership.Chain, targetID, userID int64) error {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, chain, targetID, userID)
	}
	return nil
}

type mockCatalog struct {
	FindVisibleFunc      func(ctx context.Context, name string, userID int64) (int64, error)
	CreateOwnedFunc      func(ctx context.Context, name string, userID int64) (int64, error)
	ListVisibleNamesFunc func(ctx context.Context, userID int64) ([]string, error)
	ListVisibleFunc      func(ctx context.Context, userID int64, prefix string) ([]domain.CatalogRow, error)
}

func (m *mockCatalog) FindVisible(ctx context.Context, name string, userID int64) (int64, error) {
	return m.FindVisibleFunc(ctx, name, userID)
}

func (m *mockCatalog) CreateOwned(ctx context.Context, name string, userID int64) (int64, error) {
	return m.CreateOwnedFunc(ctx, name, userID)
}

func (m *mockCatalog) ListVisibleNames(ctx context.Context, userID int64) ([]string, error) {
	return m.ListVisibleNamesFunc(ctx, userID)
}

func (m *mockCatalog) ListVisible(ctx context.Context, userID int64, prefix string) ([]domain.CatalogRow, error) {
	return m.ListVisibleFunc(ctx, userID, prefix)
}

type mockWorkoutRepo struct {
	CreateFunc                          func(ctx context.Context, userID int64, date time.Time, kind *string) (*domain.Workout, error)
	GetMetaFunc                         func(ctx context.Context, userID, workoutID int64) (*domain.WorkoutMeta, error)
	UpdateMetaFunc                      func(ctx context.Context, userID, workoutID int64, date *time.Time, kind *string) (*domain.WorkoutMeta, error)
	DeleteFunc                          func(ctx context.Context, userID, workoutID int64) error
	ClearEmbeddingFunc                  func(ctx context.Context, workoutID int64) error
	ClearEmbeddingByWorkoutExerciseFunc func(ctx context.Context, workoutExerciseID int64) error
}

func (m *mockWorkoutRepo) Create(ctx context.Context, userID int64, date time.Time, kind *string) (*domain.Workout, error) {
	return m.CreateFunc(ctx, userID, date, kind)
}

func (m *mockWorkoutRepo) GetMeta(ctx context.Context, userID, workoutID int64) (*domain.WorkoutMeta, error) {
	return m.GetMetaFunc(ctx, userID, workoutID)
}

func (m *mockWorkoutRepo) UpdateMeta(ctx context.Context, userID, workoutID int64, date *time.Time, kind *string) (*domain.WorkoutMeta, error) {
	return m.UpdateMetaFunc(ctx, userID, workoutID, date, kind)
}

func (m *mockWorkoutRepo) Delete(ctx context.Context, userID, workoutID int64) error {
	return m.DeleteFunc(ctx, userID, workoutID)
}

func (m *mockWorkoutRepo) ClearEmbedding(ctx context.Context, workoutID int64) error {
	if m.ClearEmbeddingFunc != nil {
		return m.ClearEmbeddingFunc(ctx, workoutID)
	}
	return nil
}

func (m *mockWorkoutRepo) ClearEmbeddingByWorkoutExercise(ctx context.Context, workoutExerciseID int64) error {
	if m.ClearEmbeddingByWorkoutExerciseFunc != nil {
		return m.ClearEmbeddingByWorkoutExerciseFunc(ctx, workoutExerciseID)
	}
	return nil
}

type mockAttachmentRepo struct {
	InsertFunc         func(ctx context.Context, workoutID, exerciseID int64) (int64, error)
	UpdateFunc         func(ctx context.Context, workoutExerciseID int64, exerciseID *int64, note *string) error
	GetRefFunc         func(ctx context.Context, workoutExerciseID int64) (*domain.WorkoutExerciseRef, error)
	GetWorkoutIDFunc   func(ctx context.Context, workoutExerciseID int64) (int64, error)
	GetExerciseIDFunc  func(ctx context.Context, workoutExerciseID int64) (int64, error)
	DeleteFunc         func(ctx context.Context, userID, workoutExerciseID int64) error
	ListForWorkoutFunc func(ctx context.Context, userID, workoutID int64) ([]domain.WorkoutExerciseRef, error)
	ClearEmbeddingFunc func(ctx context.Context, workoutExerciseID int64) error
}

func (m *mockAttachmentRepo) Insert(ctx context.Context, workoutID, exerciseID int64) (int64, error) {
	return m.InsertFunc(ctx, workoutID, exerciseID)
}

func (m *mockAttachmentRepo) Update(ctx context.Context, workoutExerciseID int64, exerciseID *int64, note *string) error {
	return m.UpdateFunc(ctx, workoutExerciseID, exerciseID, note)
}

func (m *mockAttachmentRepo) GetRef(ctx context.Context, workoutExerciseID int64) (*domain.WorkoutExerciseRef, error) {
	return m.GetRefFunc(ctx, workoutExerciseID)
}

func (m *mockAttachmentRepo) GetWorkoutID(ctx context.Context, workoutExerciseID int64) (int64, error) {
	return m.GetWorkoutIDFunc(ctx, workoutExerciseID)
}

func (m *mockAttachmentRepo) GetExerciseID(ctx context.Context, workoutExerciseID int64) (int64, error) {
	return m.GetExerciseIDFunc(ctx, workoutExerciseID)
}

func (m *mockAttachmentRepo) Delete(ctx context.Context, userID, workoutExerciseID int64) error {
	return m.DeleteFunc(ctx, userID, workoutExerciseID)
}

func (m *mockAttachmentRepo) ListForWorkout(ctx context.Context, userID, workoutID int64) ([]domain.WorkoutExerciseRef, error) {
	return m.ListForWorkoutFunc(ctx, userID, workoutID)
}

func (m *mockAttachmentRepo) ClearEmbedding(ctx context.Context, workoutExerciseID int64) error {
	if m.ClearEmbeddingFunc != nil {
		return m.ClearEmbeddingFunc(ctx, workoutExerciseID)
	}
	return nil
}

type mockEntryRepo struct {
	ListIDsFunc           func(ctx context.Context, workoutExerciseID int64) ([]int64, error)
	DeleteWithMetricsFunc func(ctx context.Context, entryIDs []int64) error
	InsertFunc            func(ctx context.Context, workoutExerciseID int64, entryIndex int) (*domain.Entry, error)
	InsertMetricsFunc     func(ctx context.Context, entryID int64, metrics []domain.EntryMetric) error
	ListWithMetricsFunc   func(ctx context.Context, workoutExerciseID int64) ([]domain.EntryWithMetrics, error)
	LastEntryMetricsFunc  func(ctx context.Context, userID, exerciseID int64) ([]domain.EntryMetric, error)
}

func (m *mockEntryRepo) ListIDs(ctx context.Context, workoutExerciseID int64) ([]int64, error) {
	return m.ListIDsFunc(ctx, workoutExerciseID)
}

func (m *mockEntryRepo) DeleteWithMetrics(ctx context.Context, entryIDs []int64) error {
	return m.DeleteWithMetricsFunc(ctx, entryIDs)
}

func (m *mockEntryRepo) Insert(ctx context.Context, workoutExerciseID int64, entryIndex int) (*domain.Entry, error) {
	return m.InsertFunc(ctx, workoutExerciseID, entryIndex)
}

func (m *mockEntryRepo) InsertMetrics(ctx context.Context, entryID int64, metrics []domain.EntryMetric) error {
	return m.InsertMetricsFunc(ctx, entryID, metrics)
}

func (m *mockEntryRepo) ListWithMetrics(ctx context.Context, workoutExerciseID int64) ([]domain.EntryWithMetrics, error) {
	return m.ListWithMetricsFunc(ctx, workoutExerciseID)
}

func (m *mockEntryRepo) LastEntryMetrics(ctx context.Context, userID, exerciseID int64) ([]domain.EntryMetric, error) {
	return m.LastEntryMetricsFunc(ctx, userID, exerciseID)
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testDeps struct {
	guard       *mockGuard
	tx          *mockTxManager
	workouts    *mockWorkoutRepo
	attachments *mockAttachmentRepo
	entries     *mockEntryRepo
	exercises   *mockCatalog
	metrics     *mockCatalog
}

func newTestService(t *testing.T, d testDeps) *Service {
	t.Helper()

	if d.guard == nil {
		d.guard = &mockGuard{}
	}
	if d.tx == nil {
		d.tx = &mockTxManager{}
	}
	if d.workouts == nil {
		d.workouts = &mockWorkoutRepo{}
	}
	if d.attachments == nil {
		d.attachments = &mockAttachmentRepo{}
	}
	if d.entries == nil {
		d.entries = &mockEntryRepo{}
	}
	if d.exercises == nil {
		d.exercises = &mockCatalog{}
	}
	if d.metrics == nil {
		d.metrics = &mockCatalog{}
	}

	return NewService(
		slog.Default(),
		d.tx,
		d.guard,
		d.workouts,
		d.attachments,
		d.entries,
		d.exercises,
		d.metrics,
		config.EngineConfig{MaxEntriesPerReplace: 200, MaxMetricsPerEntry: 50},
	)
}

func ptrString(s string) *string { return &s }

func ptrFloat(f float64) *float64 { return &f }

func ptrInt(i int) *int { return &i }
