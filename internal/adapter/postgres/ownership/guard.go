// Package ownership implements the ownership guard: a single join walk from
// a target row up to the owning workout's user_id. Every mutating operation
// runs it first, inside its transaction, before any write.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nilecochen/trainlog-backend/internal/adapter/postgres"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// Chain describes which joins to walk from a target id to workouts.user_id.
// Each query must select a single column for the matching row and take
// ($1 = target id, $2 = caller user id). lockQuery is the same walk with a
// FOR UPDATE row lock on the target, used by mutating transactions.
type Chain struct {
	entity    string
	query     string
	lockQuery string
}

var (
	// ChainWorkout checks a workout directly against its owner.
	ChainWorkout = Chain{
		entity:    "workout",
		query:     `SELECT 1 FROM workouts WHERE id = $1 AND user_id = $2`,
		lockQuery: `SELECT 1 FROM workouts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
	}

	// ChainWorkoutExercise walks attachment → workout → owner.
	ChainWorkoutExercise = Chain{
		entity: "workout_exercise",
		query: `SELECT 1
		        FROM workout_exercises we
		        JOIN workouts w ON we.workout_id = w.id
		        WHERE we.id = $1 AND w.user_id = $2`,
		lockQuery: `SELECT 1
		        FROM workout_exercises we
		        JOIN workouts w ON we.workout_id = w.id
		        WHERE we.id = $1 AND w.user_id = $2
		        FOR UPDATE OF we`,
	}
)

// Guard verifies ownership chains. Read-only; it participates in the
// caller's transaction when one is present in the context.
type Guard struct {
	pool *pgxpool.Pool
}

// New creates a new ownership guard.
func New(pool *pgxpool.Pool) *Guard {
	return &Guard{pool: pool}
}

// Check confirms that targetID exists and traces up to a workout owned by
// userID. A miss returns domain.ErrNotFound regardless of whether the row
// is absent or owned by someone else; callers must not be able to tell
// the difference.
func (g *Guard) Check(ctx context.Context, chain Chain, targetID, userID int64) error {
	return g.run(ctx, chain, chain.query, targetID, userID)
}

// Lock performs the same ownership check but additionally takes a FOR
// UPDATE lock on the target row, held until the surrounding transaction
// ends. Concurrent mutations of the same row serialize here: the second
// writer blocks on the lock, and every statement it runs afterwards sees
// the first writer's committed rows. Must run inside a transaction or the
// lock is released immediately.
func (g *Guard) Lock(ctx context.Context, chain Chain, targetID, userID int64) error {
	return g.run(ctx, chain, chain.lockQuery, targetID, userID)
}

func (g *Guard) run(ctx context.Context, chain Chain, query string, targetID, userID int64) error {
	q := postgres.QuerierFromCtx(ctx, g.pool)

	var one int
	err := q.QueryRow(ctx, query, targetID, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", chain.entity, targetID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check %s ownership: %w", chain.entity, err)
	}

	return nil
}
