package repository

import (
	"context"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/testutil"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestIncrementAttemptCount(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewProblemRepository(db)
	owner := testutil.SeedUser(t, ctx, db, "owner@example.com", "password123")
	other := testutil.SeedUser(t, ctx, db, "other@example.com", "password123")
	p := testutil.SeedProblem(t, ctx, db, owner.ID, "Two Sum", model.DifficultyEasy)

	for want := 1; want <= 2; want++ {
		n, owned, err := repo.IncrementAttemptCount(ctx, p.ID, owner.ID)
		if err != nil || !owned || n != want {
			t.Fatalf("increment %d: got %d owned=%v err=%v", want, n, owned, err)
		}
	}

	if _, owned, err := repo.IncrementAttemptCount(ctx, p.ID, other.ID); err != nil || owned {
		t.Fatalf("foreign increment must not apply: owned=%v err=%v", owned, err)
	}
	stored, err := repo.FindByID(ctx, p.ID)
	if err != nil || stored.AttemptCount != 2 {
		t.Fatalf("counter changed by foreign increment: %+v %v", stored, err)
	}
}

func TestProblemSlugAndCount(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewProblemRepository(db)
	u := testutil.SeedUser(t, ctx, db, "a@example.com", "password123")
	p := testutil.SeedProblem(t, ctx, db, u.ID, "Longest Substring Without Repeating Characters", model.DifficultyMedium)

	if p.Slug != "longest-substring-without-repeating-characters" {
		t.Fatalf("unexpected slug %q", p.Slug)
	}
	if n, err := repo.CountByUser(ctx, u.ID); err != nil || n != 1 {
		t.Fatalf("count: %d %v", n, err)
	}
}

func TestUpsertByEmailKeepsExistingRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewUserRepository(db)

	first, err := repo.UpsertByEmail(ctx, &model.User{Name: "Demo", Email: "demo@example.com", Password: "x"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.UpsertByEmail(ctx, &model.User{Name: "Changed", Email: "demo@example.com", Password: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID || second.Name != "Demo" {
		t.Fatalf("upsert should return the stored row, got %+v", second)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.DB(t))

	if err := repo.Create(ctx, &model.User{Name: "A", Email: "dup@example.com", Password: "x"}); err != nil {
		t.Fatal(err)
	}
	err := repo.Create(ctx, &model.User{Name: "B", Email: "dup@example.com", Password: "y"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key, got %v", err)
	}
}
