package workoutlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nilecochen/trainlog-backend/internal/domain"
)

// resolveOrCreate maps a name to a catalog id under the shared-namespace
// rule: a visible row (global, or private to the user) wins; otherwise a
// new private row is created for the user. The same rule serves both the
// exercise and the metric catalog.
//
// A uniqueness violation on the create step means a concurrent caller
// created the row between our lookup and insert; that surfaces as
// domain.ErrConflict so the caller can retry.
func resolveOrCreate(ctx context.Context, cat catalogRepo, name string, userID int64) (int64, error) {
	id, err := cat.FindVisible(ctx, name, userID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	id, err = cat.CreateOwned(ctx, name, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return 0, fmt.Errorf("resolve %q: %w", name, domain.ErrConflict)
		}
		return 0, err
	}

	return id, nil
}
