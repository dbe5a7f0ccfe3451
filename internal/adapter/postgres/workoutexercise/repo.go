// Package workoutexercise implements the attachment repository: the rows
// linking a catalog exercise to a workout, with their note and cached
// derived summary.
package workoutexercise

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nilecochen/trainlog-backend/internal/adapter/postgres"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides workout_exercise persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workout_exercise repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert attaches an exercise to a workout and returns the attachment id.
func (r *Repo) Insert(ctx context.Context, workoutID, exerciseID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO workout_exercises (workout_id, exercise_id)
		 VALUES ($1, $2)
		 RETURNING id`,
		workoutID, exerciseID,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "workout_exercise", workoutID)
	}

	return id, nil
}

// Update applies the supplied fields to an attachment. A nil field is left
// untouched; at least one field must be supplied.
func (r *Repo) Update(ctx context.Context, workoutExerciseID int64, exerciseID *int64, note *string) error {
	if exerciseID == nil && note == nil {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Update("workout_exercises").Where(sq.Eq{"id": workoutExerciseID})
	if exerciseID != nil {
		b = b.Set("exercise_id", *exerciseID)
	}
	if note != nil {
		b = b.Set("note", *note)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build workout_exercise update: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "workout_exercise", workoutExerciseID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout_exercise %d: %w", workoutExerciseID, domain.ErrNotFound)
	}

	return nil
}

// GetRef returns the attachment joined with its exercise name.
func (r *Repo) GetRef(ctx context.Context, workoutExerciseID int64) (*domain.WorkoutExerciseRef, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ref domain.WorkoutExerciseRef
	err := q.QueryRow(ctx,
		`SELECT we.id, e.id, e.name, we.note
		 FROM workout_exercises we
		 JOIN exercises e ON we.exercise_id = e.id
		 WHERE we.id = $1`,
		workoutExerciseID,
	).Scan(&ref.WorkoutExerciseID, &ref.ExerciseID, &ref.Name, &ref.Note)
	if err != nil {
		return nil, postgres.MapError(err, "workout_exercise", workoutExerciseID)
	}

	return &ref, nil
}

// Delete removes an attachment owned by the user; entries cascade by the
// store's referential rules. The catalog exercise row is never touched.
// Returns domain.ErrNotFound on a missing or foreign attachment.
func (r *Repo) Delete(ctx context.Context, userID, workoutExerciseID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM workout_exercises we
		 USING workouts w
		 WHERE we.id = $1 AND we.workout_id = w.id AND w.user_id = $2`,
		workoutExerciseID, userID,
	)
	if err != nil {
		return postgres.MapError(err, "workout_exercise", workoutExerciseID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout_exercise %d: %w", workoutExerciseID, domain.ErrNotFound)
	}

	return nil
}

// ListForWorkout returns the attachments of an owned workout joined with
// their exercise names. An unowned or missing workout yields an empty slice.
func (r *Repo) ListForWorkout(ctx context.Context, userID, workoutID int64) ([]domain.WorkoutExerciseRef, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT we.id, e.id, e.name, we.note
		 FROM workout_exercises we
		 JOIN workouts w ON we.workout_id = w.id
		 JOIN exercises e ON we.exercise_id = e.id
		 WHERE we.workout_id = $1 AND w.user_id = $2
		 ORDER BY we.id`,
		workoutID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()

	var refs []domain.WorkoutExerciseRef
	for rows.Next() {
		var ref domain.WorkoutExerciseRef
		if err := rows.Scan(&ref.WorkoutExerciseID, &ref.ExerciseID, &ref.Name, &ref.Note); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout exercises: %w", err)
	}

	if refs == nil {
		refs = []domain.WorkoutExerciseRef{}
	}

	return refs, nil
}

// GetWorkoutID returns the id of the workout an attachment belongs to.
func (r *Repo) GetWorkoutID(ctx context.Context, workoutExerciseID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx,
		`SELECT workout_id FROM workout_exercises WHERE id = $1`,
		workoutExerciseID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("workout_exercise %d: %w", workoutExerciseID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get workout id: %w", err)
	}

	return id, nil
}

// GetExerciseID returns the catalog exercise id an attachment points at.
// Deliberately unscoped: exposes no user data beyond the catalog reference.
func (r *Repo) GetExerciseID(ctx context.Context, workoutExerciseID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx,
		`SELECT exercise_id FROM workout_exercises WHERE id = $1`,
		workoutExerciseID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("workout_exercise %d: %w", workoutExerciseID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get exercise id: %w", err)
	}

	return id, nil
}

// ClearEmbedding nulls the attachment's cached derived summary.
func (r *Repo) ClearEmbedding(ctx context.Context, workoutExerciseID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`UPDATE workout_exercises SET embedding = NULL, embedding_text = NULL WHERE id = $1`,
		workoutExerciseID,
	)
	if err != nil {
		return fmt.Errorf("clear workout_exercise embedding: %w", err)
	}

	return nil
}
