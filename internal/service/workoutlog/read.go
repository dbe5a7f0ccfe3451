package workoutlog

import (
	"context"
	"errors"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// GetEntriesAndMetrics returns the entries of an attachment with their
// metric values, ordered by entry index. Reads are lenient: a missing or
// foreign attachment yields an empty slice, not an error.
func (s *Service) GetEntriesAndMetrics(ctx context.Context, userID, workoutExerciseID int64) ([]domain.EntryWithMetrics, error) {
	if err := s.guard.Check(ctx, ownership.ChainWorkoutExercise, workoutExerciseID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.EntryWithMetrics{}, nil
		}
		return nil, err
	}

	return s.entries.ListWithMetrics(ctx, workoutExerciseID)
}

// GetExercisesForWorkout returns the attachments of an owned workout with
// their exercise names. A missing or foreign workout yields an empty slice.
func (s *Service) GetExercisesForWorkout(ctx context.Context, userID, workoutID int64) ([]domain.WorkoutExerciseRef, error) {
	return s.attachments.ListForWorkout(ctx, userID, workoutID)
}

// GetWorkoutMeta returns the date and kind of an owned workout. Unlike the
// list reads this one is strict: a missing or foreign workout is
// domain.ErrNotFound.
func (s *Service) GetWorkoutMeta(ctx context.Context, userID, workoutID int64) (*domain.WorkoutMeta, error) {
	return s.workouts.GetMeta(ctx, userID, workoutID)
}

// GetExerciseIDFromWorkoutExercise maps an attachment id to its catalog
// exercise id without an ownership check; the result exposes nothing beyond
// the catalog reference. An unknown attachment yields zero, not an error.
func (s *Service) GetExerciseIDFromWorkoutExercise(ctx context.Context, workoutExerciseID int64) (int64, error) {
	id, err := s.attachments.GetExerciseID(ctx, workoutExerciseID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListExerciseNames returns the exercise names visible to the user, global
// plus private, ordered by name. Feeds autocomplete.
func (s *Service) ListExerciseNames(ctx context.Context, userID int64) ([]string, error) {
	return s.exercises.ListVisibleNames(ctx, userID)
}

// SearchExerciseCatalog returns the catalog rows visible to the user whose
// name starts with prefix (case-insensitive). An empty prefix lists the
// whole visible catalog.
func (s *Service) SearchExerciseCatalog(ctx context.Context, userID int64, prefix string) ([]domain.CatalogRow, error) {
	return s.exercises.ListVisible(ctx, userID, domain.NormalizeExerciseName(prefix))
}
