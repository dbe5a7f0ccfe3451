package workoutlog

import (
	"context"
	"errors"

	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// CreateWorkout inserts a new workout owned by the user. A fresh workout
// has no cached summary yet, so nothing needs invalidating.
func (s *Service) CreateWorkout(ctx context.Context, userID int64, in CreateWorkoutInput) (*domain.Workout, error) {
	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date", "workout date must be set")
	}

	w, err := s.workouts.Create(ctx, userID, in.Date, in.Kind)
	if err != nil {
		return nil, err
	}

	s.log.Debug("workout created", "workout_id", w.ID, "user_id", userID)

	return w, nil
}

// EditWorkoutMeta applies a partial update to an owned workout's date and
// kind. With no fields supplied the current meta is returned unchanged.
func (s *Service) EditWorkoutMeta(ctx context.Context, userID, workoutID int64, in EditWorkoutInput) (_ *domain.WorkoutMeta, err error) {
	if in.Date == nil && in.Kind == nil {
		return s.workouts.GetMeta(ctx, userID, workoutID)
	}
	if in.Date != nil && in.Date.IsZero() {
		return nil, domain.NewValidationError("date", "workout date must be set")
	}

	defer func() {
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		s.invalidateWorkout(ctx, workoutID)
	}()

	meta, err := s.workouts.UpdateMeta(ctx, userID, workoutID, in.Date, in.Kind)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// DeleteWorkout removes an owned workout; attachments, entries and metric
// values cascade. Catalog rows are never touched.
func (s *Service) DeleteWorkout(ctx context.Context, userID, workoutID int64) error {
	if err := s.workouts.Delete(ctx, userID, workoutID); err != nil {
		return err
	}

	s.log.Debug("workout deleted", "workout_id", workoutID, "user_id", userID)

	return nil
}
