package workoutlog

import (
	"context"
	"errors"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// EditWorkoutExercise applies a partial update to an owned attachment. A
// supplied exercise name is resolved through the catalog; a supplied note
// replaces the stored one. Nil fields are untouched. Returns the updated
// attachment.
func (s *Service) EditWorkoutExercise(ctx context.Context, userID, workoutExerciseID int64, in EditWorkoutExerciseInput) (_ *domain.WorkoutExerciseRef, err error) {
	var name string
	if in.ExerciseName != nil {
		name = domain.NormalizeExerciseName(*in.ExerciseName)
		if name == "" {
			return nil, domain.NewValidationError("exercise_name", "exercise name must not be empty")
		}
	}

	defer func() {
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		s.invalidateAttachment(ctx, workoutExerciseID)
	}()

	var ref *domain.WorkoutExerciseRef
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.guard.Lock(ctx, ownership.ChainWorkoutExercise, workoutExerciseID, userID); err != nil {
			return err
		}

		var exerciseID *int64
		if in.ExerciseName != nil {
			id, err := resolveOrCreate(ctx, s.exercises, name, userID)
			if err != nil {
				return err
			}
			exerciseID = &id
		}

		if err := s.attachments.Update(ctx, workoutExerciseID, exerciseID, in.Note); err != nil {
			return err
		}

		var err error
		ref, err = s.attachments.GetRef(ctx, workoutExerciseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ref, nil
}
