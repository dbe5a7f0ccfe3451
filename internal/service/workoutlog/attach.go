package workoutlog

import (
	"context"
	"errors"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// AddWorkoutExercise attaches an exercise to an owned workout, resolving
// the name through the exercise catalog (creating a private exercise when
// no visible one matches). Returns the new attachment with its resolved
// exercise.
func (s *Service) AddWorkoutExercise(ctx context.Context, userID, workoutID int64, exerciseName string) (_ *domain.WorkoutExerciseRef, err error) {
	name := domain.NormalizeExerciseName(exerciseName)
	if name == "" {
		return nil, domain.NewValidationError("exercise_name", "exercise name must not be empty")
	}

	defer func() {
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		s.invalidateWorkout(ctx, workoutID)
	}()

	var ref *domain.WorkoutExerciseRef
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.guard.Lock(ctx, ownership.ChainWorkout, workoutID, userID); err != nil {
			return err
		}

		exerciseID, err := resolveOrCreate(ctx, s.exercises, name, userID)
		if err != nil {
			return err
		}

		id, err := s.attachments.Insert(ctx, workoutID, exerciseID)
		if err != nil {
			return err
		}

		ref, err = s.attachments.GetRef(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("exercise attached",
		"workout_id", workoutID, "workout_exercise_id", ref.WorkoutExerciseID)

	return ref, nil
}
