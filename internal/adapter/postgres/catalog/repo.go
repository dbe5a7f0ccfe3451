// Package catalog implements the shared-vocabulary catalogs (exercises and
// metric definitions) behind one table-parameterized repository. Both tables
// have the same scope shape: a global flag, a nullable owner, and per-scope
// uniqueness on the name column.
package catalog

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nilecochen/trainlog-backend/internal/adapter/postgres"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides catalog persistence for one of the two catalog tables.
type Repo struct {
	pool    *pgxpool.Pool
	table   string
	nameCol string
	entity  string
}

// NewExercises creates the exercise catalog repository.
func NewExercises(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, table: "exercises", nameCol: "name", entity: "exercise"}
}

// NewMetricDefinitions creates the metric-definition catalog repository.
func NewMetricDefinitions(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, table: "metric_definitions", nameCol: "key", entity: "metric_definition"}
}

// FindVisible returns the id of the catalog row matching name that the user
// may see: a global row, or a private row owned by the user. Another user's
// private row with the same name is never returned.
// Returns domain.ErrNotFound when no visible row matches.
func (r *Repo) FindVisible(ctx context.Context, name string, userID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(
		`SELECT id FROM %s WHERE %s = $1 AND (is_global = TRUE OR user_id = $2) LIMIT 1`,
		r.table, r.nameCol,
	)

	var id int64
	err := q.QueryRow(ctx, query, name, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%s %q: %w", r.entity, name, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("find %s %q: %w", r.entity, name, err)
	}

	return id, nil
}

// CreateOwned inserts a new privately-owned catalog row and returns its id.
// Global rows are never created through this path; they are seeded
// administratively. A uniqueness race with a concurrent create surfaces as
// domain.ErrAlreadyExists.
func (r *Repo) CreateOwned(ctx context.Context, name string, userID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, is_global, user_id) VALUES ($1, FALSE, $2) RETURNING id`,
		r.table, r.nameCol,
	)

	var id int64
	if err := q.QueryRow(ctx, query, name, userID).Scan(&id); err != nil {
		return 0, postgres.MapError(err, r.entity, userID)
	}

	return id, nil
}

// ListVisibleNames returns the distinct names visible to the user
// (global rows plus the user's own), ordered by name. Feeds autocomplete.
func (r *Repo) ListVisibleNames(ctx context.Context, userID int64) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select(r.nameCol).
		Distinct().
		From(r.table).
		Where(sq.Or{sq.Eq{"is_global": true}, sq.Eq{"user_id": userID}}).
		OrderBy(r.nameCol).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s query: %w", r.entity, err)
	}

	var names []string
	if err := pgxscan.Select(ctx, q, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list %s names: %w", r.entity, err)
	}

	if names == nil {
		names = []string{}
	}

	return names, nil
}

// ListVisible returns the catalog rows visible to the user, optionally
// filtered by a name prefix, ordered by name.
func (r *Repo) ListVisible(ctx context.Context, userID int64, prefix string) ([]domain.CatalogRow, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.
		Select("id", r.nameCol+" AS name", "is_global").
		From(r.table).
		Where(sq.Or{sq.Eq{"is_global": true}, sq.Eq{"user_id": userID}}).
		OrderBy(r.nameCol)
	if prefix != "" {
		b = b.Where(sq.ILike{r.nameCol: prefix + "%"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s query: %w", r.entity, err)
	}

	var rows []domain.CatalogRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entity, err)
	}

	if rows == nil {
		rows = []domain.CatalogRow{}
	}

	return rows, nil
}
