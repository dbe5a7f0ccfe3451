package domain

import "time"

// Workout is one logged training session owned by a single user.
// Embedding and EmbeddingText are derived summaries maintained by an
// external service; the engine only ever clears them.
type Workout struct {
	ID            int64
	UserID        int64
	WorkoutDate   time.Time
	WorkoutKind   *string
	Embedding     *string
	EmbeddingText *string
	CreatedAt     time.Time
}

// WorkoutMeta is the date + kind projection used by the meta read.
type WorkoutMeta struct {
	ID          int64
	WorkoutDate time.Time
	WorkoutKind *string
}

// WorkoutExercise attaches one catalog Exercise to one Workout.
// Deleting the attachment never deletes the catalog row it points at.
type WorkoutExercise struct {
	ID            int64
	WorkoutID     int64
	ExerciseID    int64
	Note          *string
	Embedding     *string
	EmbeddingText *string
}

// WorkoutExerciseRef is the attachment joined with its exercise name,
// as returned by attach/edit/list operations.
type WorkoutExerciseRef struct {
	WorkoutExerciseID int64
	ExerciseID        int64
	Name              string
	Note              *string
}

// Entry is one repetition instance (a set) inside a WorkoutExercise.
// EntryIndex is caller-supplied or positional; duplicates are tolerated
// and ordering is by index then id.
type Entry struct {
	ID                int64
	WorkoutExerciseID int64
	EntryIndex        int
}

// EntryMetric is one recorded value against a resolved metric definition.
// Absent value/unit fields stay nil; they are stored as NULL, not defaulted.
type EntryMetric struct {
	MetricID    int64
	Key         string
	ValueNumber *float64
	ValueText   *string
	Unit        *string
}

// EntryWithMetrics is an entry with its full resolved metric set.
type EntryWithMetrics struct {
	EntryID    int64
	EntryIndex int
	Metrics    []EntryMetric
}
