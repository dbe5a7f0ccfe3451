package workoutlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/ownership"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// ReplaceEntriesAndMetrics atomically replaces every entry (and its metric
// values) under an attachment with the given payload. The previous entries
// are deleted and the payload is inserted in order; there is no diffing or
// partial update. An empty payload deletes everything. Either the whole
// replacement commits or nothing changes.
//
// Entry indexes default to payload position when not supplied. Metric keys
// are resolved through the catalog, creating private definitions as needed.
//
// The guard takes a row lock on the attachment, so concurrent replacements
// of the same attachment serialize: the later one deletes everything the
// earlier one committed. Exactly one payload survives, never a mix.
func (s *Service) ReplaceEntriesAndMetrics(ctx context.Context, userID, workoutExerciseID int64, entries []EntryInput) (_ []domain.EntryWithMetrics, err error) {
	if err := s.validateReplacePayload(entries); err != nil {
		return nil, err
	}

	defer func() {
		if errors.Is(err, domain.ErrNotFound) {
			// The caller does not own the attachment; nothing was touched.
			return
		}
		s.invalidateAttachment(ctx, workoutExerciseID)
	}()

	result := make([]domain.EntryWithMetrics, 0, len(entries))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.guard.Lock(ctx, ownership.ChainWorkoutExercise, workoutExerciseID, userID); err != nil {
			return err
		}

		oldIDs, err := s.entries.ListIDs(ctx, workoutExerciseID)
		if err != nil {
			return err
		}
		if err := s.entries.DeleteWithMetrics(ctx, oldIDs); err != nil {
			return err
		}

		for i, in := range entries {
			idx := i
			if in.EntryIndex != nil {
				idx = *in.EntryIndex
			}

			e, err := s.entries.Insert(ctx, workoutExerciseID, idx)
			if err != nil {
				return fmt.Errorf("insert entry %d: %w", i, err)
			}

			metrics := make([]domain.EntryMetric, 0, len(in.Metrics))
			for _, m := range in.Metrics {
				metricID, err := resolveOrCreate(ctx, s.metrics, m.Key, userID)
				if err != nil {
					return err
				}
				metrics = append(metrics, domain.EntryMetric{
					MetricID:    metricID,
					Key:         m.Key,
					ValueNumber: m.ValueNumber,
					ValueText:   m.ValueText,
					Unit:        m.Unit,
				})
			}

			if err := s.entries.InsertMetrics(ctx, e.ID, metrics); err != nil {
				return fmt.Errorf("insert metrics for entry %d: %w", i, err)
			}

			result = append(result, domain.EntryWithMetrics{
				EntryID:    e.ID,
				EntryIndex: e.EntryIndex,
				Metrics:    metrics,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("entries replaced",
		"workout_exercise_id", workoutExerciseID, "count", len(result))

	return result, nil
}
