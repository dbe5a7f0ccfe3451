package workoutlog

import (
	"context"
	"errors"

	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// DeleteWorkoutExercise removes an owned attachment; its entries and
// metric values go with it. The catalog exercise is never touched. The
// parent workout id is captured up front so its cache can still be cleared
// after the row is gone.
func (s *Service) DeleteWorkoutExercise(ctx context.Context, userID, workoutExerciseID int64) (err error) {
	workoutID, err := s.attachments.GetWorkoutID(ctx, workoutExerciseID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if workoutID != 0 {
		defer func() {
			if errors.Is(err, domain.ErrNotFound) {
				// The delete was rejected; the caller does not own the
				// attachment and no cache went stale.
				return
			}
			s.invalidateWorkout(ctx, workoutID)
		}()
	}

	if err = s.attachments.Delete(ctx, userID, workoutExerciseID); err != nil {
		return err
	}

	s.log.Debug("attachment deleted", "workout_exercise_id", workoutExerciseID)

	return nil
}
