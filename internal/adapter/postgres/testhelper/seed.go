package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Suffix returns a short unique string for generating non-conflicting test data.
func Suffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	ctx := context.Background()

	suffix := Suffix()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO users (email, name)
		 VALUES ($1, $2)
		 RETURNING id`,
		"testuser-"+suffix+"@example.com", "Test User "+suffix,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return id
}

// SeedWorkout creates a workout for the user on the given date and returns its id.
func SeedWorkout(t *testing.T, pool *pgxpool.Pool, userID int64, date time.Time) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO workouts (user_id, workout_date)
		 VALUES ($1, $2)
		 RETURNING id`,
		userID, date,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedWorkout: %v", err)
	}

	return id
}

// SeedGlobalExercise creates a global catalog exercise and returns its id.
// The name gets a unique suffix to avoid collisions across tests.
func SeedGlobalExercise(t *testing.T, pool *pgxpool.Pool, name string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	fullName := name + " " + Suffix()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO exercises (name, is_global)
		 VALUES ($1, TRUE)
		 RETURNING id`,
		fullName,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedGlobalExercise: %v", err)
	}

	return id, fullName
}

// SeedOwnedExercise creates a private catalog exercise for the user.
func SeedOwnedExercise(t *testing.T, pool *pgxpool.Pool, userID int64, name string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	fullName := name + " " + Suffix()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO exercises (name, is_global, user_id)
		 VALUES ($1, FALSE, $2)
		 RETURNING id`,
		fullName, userID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedOwnedExercise: %v", err)
	}

	return id, fullName
}

// SeedGlobalMetric creates a global metric definition and returns its id.
func SeedGlobalMetric(t *testing.T, pool *pgxpool.Pool, key string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	fullKey := key + "-" + Suffix()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO metric_definitions (key, is_global)
		 VALUES ($1, TRUE)
		 RETURNING id`,
		fullKey,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedGlobalMetric: %v", err)
	}

	return id, fullKey
}

// SeedOwnedMetric creates a private metric definition for the user.
func SeedOwnedMetric(t *testing.T, pool *pgxpool.Pool, userID int64, key string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	fullKey := key + "-" + Suffix()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO metric_definitions (key, is_global, user_id)
		 VALUES ($1, FALSE, $2)
		 RETURNING id`,
		fullKey, userID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedOwnedMetric: %v", err)
	}

	return id, fullKey
}

// SeedWorkoutExercise attaches an exercise to a workout and returns the attachment id.
func SeedWorkoutExercise(t *testing.T, pool *pgxpool.Pool, workoutID, exerciseID int64) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO workout_exercises (workout_id, exercise_id)
		 VALUES ($1, $2)
		 RETURNING id`,
		workoutID, exerciseID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedWorkoutExercise: %v", err)
	}

	return id
}

// SeedEntry creates an entry under an attachment and returns its id.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, workoutExerciseID int64, entryIndex int) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO entries (workout_exercise_id, entry_index)
		 VALUES ($1, $2)
		 RETURNING id`,
		workoutExerciseID, entryIndex,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry: %v", err)
	}

	return id
}

// SeedEntryMetric records a numeric metric value on an entry.
func SeedEntryMetric(t *testing.T, pool *pgxpool.Pool, entryID, metricID int64, value float64) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO entry_metrics (entry_id, metric_id, value_number)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		entryID, metricID, value,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedEntryMetric: %v", err)
	}

	return id
}

// SetEmbedding stores a non-null embedding on a workout so tests can assert
// invalidation cleared it.
func SetEmbedding(t *testing.T, pool *pgxpool.Pool, table string, id int64) {
	t.Helper()
	ctx := context.Background()

	var query string
	switch table {
	case "workouts":
		query = `UPDATE workouts SET embedding = 'stale', embedding_text = 'stale' WHERE id = $1`
	case "workout_exercises":
		query = `UPDATE workout_exercises SET embedding = 'stale', embedding_text = 'stale' WHERE id = $1`
	default:
		t.Fatalf("testhelper: SetEmbedding: unknown table %q", table)
	}

	if _, err := pool.Exec(ctx, query, id); err != nil {
		t.Fatalf("testhelper: SetEmbedding: %v", err)
	}
}

// EmbeddingIsNull reports whether the row's embedding columns are both NULL.
func EmbeddingIsNull(t *testing.T, pool *pgxpool.Pool, table string, id int64) bool {
	t.Helper()
	ctx := context.Background()

	var query string
	switch table {
	case "workouts":
		query = `SELECT embedding IS NULL AND embedding_text IS NULL FROM workouts WHERE id = $1`
	case "workout_exercises":
		query = `SELECT embedding IS NULL AND embedding_text IS NULL FROM workout_exercises WHERE id = $1`
	default:
		t.Fatalf("testhelper: EmbeddingIsNull: unknown table %q", table)
	}

	var isNull bool
	if err := pool.QueryRow(ctx, query, id).Scan(&isNull); err != nil {
		t.Fatalf("testhelper: EmbeddingIsNull: %v", err)
	}

	return isNull
}
