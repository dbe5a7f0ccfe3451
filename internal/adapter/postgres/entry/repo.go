// Package entry implements persistence for logged entries (sets) and their
// metric values. Writes are designed to run inside the service's replace
// transaction; reads assemble entries with their resolved metric keys.
package entry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nilecochen/trainlog-backend/internal/adapter/postgres"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// Repo provides entry and entry_metric persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations (replace transaction building blocks)
// ---------------------------------------------------------------------------

// ListIDs returns the ids of all entries under an attachment.
func (r *Repo) ListIDs(ctx context.Context, workoutExerciseID int64) ([]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id FROM entries WHERE workout_exercise_id = $1`,
		workoutExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entry ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan entry id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry ids: %w", err)
	}

	return ids, nil
}

// DeleteWithMetrics removes the given entries and their metric rows.
// Metrics go first so the delete order never trips the FK.
func (r *Repo) DeleteWithMetrics(ctx context.Context, entryIDs []int64) error {
	if len(entryIDs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`DELETE FROM entry_metrics WHERE entry_id = ANY($1::bigint[])`, entryIDs,
	); err != nil {
		return fmt.Errorf("delete entry metrics: %w", err)
	}

	if _, err := q.Exec(ctx,
		`DELETE FROM entries WHERE id = ANY($1::bigint[])`, entryIDs,
	); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}

	return nil
}

// Insert creates one entry row under an attachment.
func (r *Repo) Insert(ctx context.Context, workoutExerciseID int64, entryIndex int) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var e domain.Entry
	err := q.QueryRow(ctx,
		`INSERT INTO entries (workout_exercise_id, entry_index)
		 VALUES ($1, $2)
		 RETURNING id, workout_exercise_id, entry_index`,
		workoutExerciseID, entryIndex,
	).Scan(&e.ID, &e.WorkoutExerciseID, &e.EntryIndex)
	if err != nil {
		return nil, postgres.MapError(err, "entry", workoutExerciseID)
	}

	return &e, nil
}

// InsertMetrics inserts one entry_metric row per metric using pgx.Batch.
// Nil value/unit fields are stored as NULL.
func (r *Repo) InsertMetrics(ctx context.Context, entryID int64, metrics []domain.EntryMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range metrics {
		batch.Queue(
			`INSERT INTO entry_metrics (entry_id, metric_id, value_number, value_text, unit)
			 VALUES ($1, $2, $3, $4, $5)`,
			entryID, m.MetricID, m.ValueNumber, m.ValueText, m.Unit,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range metrics {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert entry metric: %w", err)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read assembly
// ---------------------------------------------------------------------------

// ListWithMetrics returns the entries of an attachment ordered by entry
// index (then id), each with its metrics joined to the human-readable key.
func (r *Repo) ListWithMetrics(ctx context.Context, workoutExerciseID int64) ([]domain.EntryWithMetrics, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, entry_index
		 FROM entries
		 WHERE workout_exercise_id = $1
		 ORDER BY entry_index, id`,
		workoutExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var entries []domain.EntryWithMetrics
	for rows.Next() {
		var e domain.EntryWithMetrics
		if err := rows.Scan(&e.EntryID, &e.EntryIndex); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Metrics = []domain.EntryMetric{}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	if len(entries) == 0 {
		return []domain.EntryWithMetrics{}, nil
	}

	entryIDs := make([]int64, len(entries))
	byID := make(map[int64]*domain.EntryWithMetrics, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].EntryID
		byID[entries[i].EntryID] = &entries[i]
	}

	mrows, err := q.Query(ctx,
		`SELECT em.entry_id, em.metric_id, md.key, em.value_number, em.value_text, em.unit
		 FROM entry_metrics em
		 JOIN metric_definitions md ON em.metric_id = md.id
		 WHERE em.entry_id = ANY($1::bigint[])
		 ORDER BY em.id`,
		entryIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list entry metrics: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var entryID int64
		var m domain.EntryMetric
		if err := mrows.Scan(&entryID, &m.MetricID, &m.Key, &m.ValueNumber, &m.ValueText, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan entry metric: %w", err)
		}
		if e, ok := byID[entryID]; ok {
			e.Metrics = append(e.Metrics, m)
		}
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry metrics: %w", err)
	}

	return entries, nil
}

// LastEntryMetrics returns the full metric set of the most recent entry the
// user logged for an exercise, across all of their workouts. Recency is
// workout date first, then entry id. An empty result means there is nothing
// to prefill: no such entry, no metrics on it, or unknown ids.
func (r *Repo) LastEntryMetrics(ctx context.Context, userID, exerciseID int64) ([]domain.EntryMetric, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT em.metric_id, md.key, em.value_number, em.value_text, em.unit
		 FROM entries e
		 JOIN workout_exercises we ON e.workout_exercise_id = we.id
		 JOIN workouts w ON we.workout_id = w.id
		 JOIN entry_metrics em ON e.id = em.entry_id
		 JOIN metric_definitions md ON em.metric_id = md.id
		 WHERE we.exercise_id = $1 AND w.user_id = $2
		   AND e.id = (
		     SELECT e2.id FROM entries e2
		     JOIN workout_exercises we2 ON e2.workout_exercise_id = we2.id
		     JOIN workouts w2 ON we2.workout_id = w2.id
		     WHERE we2.exercise_id = $1 AND w2.user_id = $2
		     ORDER BY w2.workout_date DESC, e2.id DESC
		     LIMIT 1
		   )
		 ORDER BY em.id`,
		exerciseID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("last entry metrics: %w", err)
	}
	defer rows.Close()

	var metrics []domain.EntryMetric
	for rows.Next() {
		var m domain.EntryMetric
		if err := rows.Scan(&m.MetricID, &m.Key, &m.ValueNumber, &m.ValueText, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan last entry metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate last entry metrics: %w", err)
	}

	return metrics, nil
}
