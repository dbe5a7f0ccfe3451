package workoutlog

import (
	"fmt"
	"time"

	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// MetricInput is one metric value to record on an entry. Key is resolved
// against the metric catalog; the value fields are stored as given.
type MetricInput struct {
	Key         string
	ValueNumber *float64
	ValueText   *string
	Unit        *string
}

// EntryInput is one entry (set) in a replacement payload. A nil EntryIndex
// falls back to the entry's position in the payload.
type EntryInput struct {
	EntryIndex *int
	Metrics    []MetricInput
}

// CreateWorkoutInput carries the fields of a new workout.
type CreateWorkoutInput struct {
	Date time.Time
	Kind *string
}

// EditWorkoutInput carries a partial workout-meta update. Nil fields are
// left untouched.
type EditWorkoutInput struct {
	Date *time.Time
	Kind *string
}

// EditWorkoutExerciseInput carries a partial attachment update. Nil fields
// are left untouched. A non-nil ExerciseName is resolved against the
// exercise catalog, creating a private entry when needed.
type EditWorkoutExerciseInput struct {
	ExerciseName *string
	Note         *string
}

// validateReplacePayload checks the payload against the configured caps and
// normalizes metric keys in place. All validation happens before any store
// access.
func (s *Service) validateReplacePayload(entries []EntryInput) error {
	if len(entries) > s.cfg.MaxEntriesPerReplace {
		return domain.NewValidationError("entries",
			fmt.Sprintf("at most %d entries per replacement", s.cfg.MaxEntriesPerReplace))
	}

	for i := range entries {
		if len(entries[i].Metrics) > s.cfg.MaxMetricsPerEntry {
			return domain.NewValidationError(
				fmt.Sprintf("entries[%d].metrics", i),
				fmt.Sprintf("at most %d metrics per entry", s.cfg.MaxMetricsPerEntry))
		}
		for j := range entries[i].Metrics {
			key := domain.NormalizeMetricKey(entries[i].Metrics[j].Key)
			if key == "" {
				return domain.NewValidationError(
					fmt.Sprintf("entries[%d].metrics[%d].key", i, j),
					"metric key must not be empty")
			}
			entries[i].Metrics[j].Key = key
		}
	}

	return nil
}
