package workoutlog

import (
	"context"

	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// GetLastEntryForExercise returns the full metric set of the most recent
// entry the user logged for an exercise, across all of their workouts.
// Recency is workout date first, then entry id within a date. Returns nil
// when the user has never logged the exercise, the last entry has no
// metrics, or the ids are unknown; there is nothing to prefill in any of
// those cases and none of them is an error.
func (s *Service) GetLastEntryForExercise(ctx context.Context, userID, exerciseID int64) ([]domain.EntryMetric, error) {
	metrics, err := s.entries.LastEntryMetrics(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, nil
	}

	return metrics, nil
}
