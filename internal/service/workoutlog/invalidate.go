package workoutlog

import (
	"context"
)

// Derived-cache invalidation. Every mutation of workout content clears the
// cached embedding of the touched attachment and of its parent workout, so
// downstream summaries regenerate from fresh data. Invalidation runs after
// the mutation whether it committed or failed midway: clearing a cache that
// was already stale is harmless, while skipping a clear after a partial
// failure could leave a stale summary visible indefinitely. The one
// exception is an ownership rejection: the caller does not own the target,
// nothing was touched, and clearing would let a non-owner null another
// user's caches by id.
//
// Invalidation never fails the operation. Failures are logged and dropped;
// the caches are nulled lazily on the next successful mutation.

// invalidateAttachment clears the attachment's cache and its parent
// workout's cache. Used after entry replacement and attachment edits.
func (s *Service) invalidateAttachment(ctx context.Context, workoutExerciseID int64) {
	// The operation's context may already be canceled or past its deadline
	// when a deferred invalidation runs.
	ctx = context.WithoutCancel(ctx)

	if err := s.attachments.ClearEmbedding(ctx, workoutExerciseID); err != nil {
		s.log.Warn("clear attachment embedding failed",
			"workout_exercise_id", workoutExerciseID, "error", err)
	}
	if err := s.workouts.ClearEmbeddingByWorkoutExercise(ctx, workoutExerciseID); err != nil {
		s.log.Warn("clear workout embedding failed",
			"workout_exercise_id", workoutExerciseID, "error", err)
	}
}

// invalidateWorkout clears only the workout's own cache. Used after
// workout-level mutations and after an attachment is removed.
func (s *Service) invalidateWorkout(ctx context.Context, workoutID int64) {
	ctx = context.WithoutCancel(ctx)

	if err := s.workouts.ClearEmbedding(ctx, workoutID); err != nil {
		s.log.Warn("clear workout embedding failed",
			"workout_id", workoutID, "error", err)
	}
}
