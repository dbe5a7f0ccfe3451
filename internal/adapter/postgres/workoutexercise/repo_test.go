package workoutexercise_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/testhelper"
	"github.com/nilecochen/trainlog-backend/internal/adapter/postgres/workoutexercise"
	"github.com/nilecochen/trainlog-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestRepo_Insert_AndGetRef(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, userID, time.Now())
	exerciseID, name := testhelper.SeedGlobalExercise(t, pool, "Ref Lift")

	id, err := repo.Insert(ctx, workoutID, exerciseID)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ref, err := repo.GetRef(ctx, id)
	if err != nil {
		t.Fatalf("GetRef: %v", err)
	}
	if ref.ExerciseID != exerciseID {
		t.Errorf("ExerciseID mismatch: got %d, want %d", ref.ExerciseID, exerciseID)
	}
	if ref.Name != name {
		t.Errorf("Name mismatch: got %q, want %q", ref.Name, name)
	}
	if ref.Note != nil {
		t.Errorf("fresh attachment should have no note, got %v", ref.Note)
	}
}

func TestRepo_Update_NoteAndExercise(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, userID, time.Now())
	exerciseID, _ := testhelper.SeedGlobalExercise(t, pool, "Old Lift")
	newExerciseID, newName := testhelper.SeedGlobalExercise(t, pool, "New Lift")
	weID := testhelper.SeedWorkoutExercise(t, pool, workoutID, exerciseID)

	if err := repo.Update(ctx, weID, nil, strPtr("slow eccentric")); err != nil {
		t.Fatalf("Update note: %v", err)
	}
	if err := repo.Update(ctx, weID, &newExerciseID, nil); err != nil {
		t.Fatalf("Update exercise: %v", err)
	}

	ref, err := repo.GetRef(ctx, weID)
	if err != nil {
		t.Fatalf("GetRef: %v", err)
	}
	if ref.Name != newName {
		t.Errorf("exercise not updated: got %q, want %q", ref.Name, newName)
	}
	if ref.Note == nil || *ref.Note != "slow eccentric" {
		t.Errorf("note not preserved across partial update: got %v", ref.Note)
	}
}

func TestRepo_Update_UnknownAttachment(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	err := repo.Update(ctx, 999_999_999, nil, strPtr("x"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Delete_OwnerScoped(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, owner, time.Now())
	exerciseID, _ := testhelper.SeedGlobalExercise(t, pool, "Scoped Lift")
	weID := testhelper.SeedWorkoutExercise(t, pool, workoutID, exerciseID)
	testhelper.SeedEntry(t, pool, weID, 0)

	err := repo.Delete(ctx, other, weID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign delete: expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, owner, weID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	var count int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM entries WHERE workout_exercise_id = $1`, weID,
	).Scan(&count); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if count != 0 {
		t.Errorf("entries should cascade with the attachment, %d remain", count)
	}
}

func TestRepo_ListForWorkout(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, owner, time.Now())
	exA, _ := testhelper.SeedGlobalExercise(t, pool, "List A")
	exB, _ := testhelper.SeedGlobalExercise(t, pool, "List B")
	weA := testhelper.SeedWorkoutExercise(t, pool, workoutID, exA)
	weB := testhelper.SeedWorkoutExercise(t, pool, workoutID, exB)

	refs, err := repo.ListForWorkout(ctx, owner, workoutID)
	if err != nil {
		t.Fatalf("ListForWorkout: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(refs))
	}
	// Attachment order, not alphabetical.
	if refs[0].WorkoutExerciseID != weA || refs[1].WorkoutExerciseID != weB {
		t.Errorf("order mismatch: got %d,%d want %d,%d",
			refs[0].WorkoutExerciseID, refs[1].WorkoutExerciseID, weA, weB)
	}

	// A foreign caller gets an empty slice, not an error.
	foreign, err := repo.ListForWorkout(ctx, other, workoutID)
	if err != nil {
		t.Fatalf("foreign ListForWorkout: %v", err)
	}
	if foreign == nil || len(foreign) != 0 {
		t.Errorf("expected empty non-nil slice for foreign workout, got %#v", foreign)
	}
}

func TestRepo_GetExerciseID_Unscoped(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, userID, time.Now())
	exerciseID, _ := testhelper.SeedGlobalExercise(t, pool, "Map Lift")
	weID := testhelper.SeedWorkoutExercise(t, pool, workoutID, exerciseID)

	got, err := repo.GetExerciseID(ctx, weID)
	if err != nil {
		t.Fatalf("GetExerciseID: %v", err)
	}
	if got != exerciseID {
		t.Errorf("id mismatch: got %d, want %d", got, exerciseID)
	}

	_, err = repo.GetExerciseID(ctx, 999_999_999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown attachment: expected ErrNotFound, got %v", err)
	}
}

func TestRepo_GetWorkoutID(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, userID, time.Now())
	exerciseID, _ := testhelper.SeedGlobalExercise(t, pool, "Parent Lift")
	weID := testhelper.SeedWorkoutExercise(t, pool, workoutID, exerciseID)

	got, err := repo.GetWorkoutID(ctx, weID)
	if err != nil {
		t.Fatalf("GetWorkoutID: %v", err)
	}
	if got != workoutID {
		t.Errorf("id mismatch: got %d, want %d", got, workoutID)
	}
}

func TestRepo_ClearEmbedding(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := workoutexercise.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	workoutID := testhelper.SeedWorkout(t, pool, userID, time.Now())
	exerciseID, _ := testhelper.SeedGlobalExercise(t, pool, "Stale Lift")
	weID := testhelper.SeedWorkoutExercise(t, pool, workoutID, exerciseID)
	testhelper.SetEmbedding(t, pool, "workout_exercises", weID)

	if err := repo.ClearEmbedding(ctx, weID); err != nil {
		t.Fatalf("ClearEmbedding: %v", err)
	}
	if !testhelper.EmbeddingIsNull(t, pool, "workout_exercises", weID) {
		t.Error("embedding should be NULL after clear")
	}
}
