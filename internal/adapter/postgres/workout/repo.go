// Package workout implements the workout repository using PostgreSQL.
package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nilecochen/trainlog-backend/internal/adapter/postgres"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides workout persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workout repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new workout for the user and returns the persisted row.
func (r *Repo) Create(ctx context.Context, userID int64, date time.Time, kind *string) (*domain.Workout, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var w domain.Workout
	err := q.QueryRow(ctx,
		`INSERT INTO workouts (user_id, workout_date, workout_kind)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, workout_date, workout_kind, created_at`,
		userID, date, kind,
	).Scan(&w.ID, &w.UserID, &w.WorkoutDate, &w.WorkoutKind, &w.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "workout", userID)
	}

	return &w, nil
}

// GetMeta returns the workout's date and kind, scoped to the owner.
// Returns domain.ErrNotFound when the workout does not exist or belongs
// to another user.
func (r *Repo) GetMeta(ctx context.Context, userID, workoutID int64) (*domain.WorkoutMeta, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var m domain.WorkoutMeta
	err := q.QueryRow(ctx,
		`SELECT id, workout_date, workout_kind
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID,
	).Scan(&m.ID, &m.WorkoutDate, &m.WorkoutKind)
	if err != nil {
		return nil, postgres.MapError(err, "workout", workoutID)
	}

	return &m, nil
}

// UpdateMeta applies the supplied date/kind fields to an owned workout and
// returns the updated meta. Nil fields are left untouched.
func (r *Repo) UpdateMeta(ctx context.Context, userID, workoutID int64, date *time.Time, kind *string) (*domain.WorkoutMeta, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Update("workouts").
		Where(sq.Eq{"id": workoutID, "user_id": userID}).
		Suffix("RETURNING id, workout_date, workout_kind")
	if date != nil {
		b = b.Set("workout_date", *date)
	}
	if kind != nil {
		b = b.Set("workout_kind", *kind)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build workout update: %w", err)
	}

	var m domain.WorkoutMeta
	err = q.QueryRow(ctx, query, args...).Scan(&m.ID, &m.WorkoutDate, &m.WorkoutKind)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workout %d: %w", workoutID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, postgres.MapError(err, "workout", workoutID)
	}

	return &m, nil
}

// Delete removes an owned workout; attachments and entries cascade.
// Returns domain.ErrNotFound if the workout does not exist or belongs
// to another user.
func (r *Repo) Delete(ctx context.Context, userID, workoutID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, userID,
	)
	if err != nil {
		return postgres.MapError(err, "workout", workoutID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %d: %w", workoutID, domain.ErrNotFound)
	}

	return nil
}

// ClearEmbedding nulls the workout's cached derived summary, signaling the
// downstream embedding service to regenerate it lazily.
func (r *Repo) ClearEmbedding(ctx context.Context, workoutID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`UPDATE workouts SET embedding = NULL, embedding_text = NULL WHERE id = $1`,
		workoutID,
	)
	if err != nil {
		return fmt.Errorf("clear workout embedding: %w", err)
	}

	return nil
}

// ClearEmbeddingByWorkoutExercise resolves the parent workout from an
// attachment id and nulls its derived summary in a single statement.
func (r *Repo) ClearEmbeddingByWorkoutExercise(ctx context.Context, workoutExerciseID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`UPDATE workouts
		 SET embedding = NULL, embedding_text = NULL
		 WHERE id = (SELECT workout_id FROM workout_exercises WHERE id = $1)`,
		workoutExerciseID,
	)
	if err != nil {
		return fmt.Errorf("clear workout embedding via attachment: %w", err)
	}

	return nil
}
