package service

import (
	"context"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/util"
	"errors"
	"strings"
	"testing"
)

func TestProblemCreateNormalizesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")

	blank := "   "
	p, err := f.problems.Create(ctx, Authenticated(u.ID), ProblemRequest{
		Title:        "  Two Sum ",
		Platform:     &blank,
		PlatformLink: &blank,
		Difficulty:   "Easy",
		Topics:       "Array, Hash Table",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Title != "Two Sum" || p.Slug != "two-sum" {
		t.Fatalf("unexpected title/slug %q/%q", p.Title, p.Slug)
	}
	if p.Platform != nil || p.PlatformLink != nil {
		t.Fatalf("blank optional fields should be stored as null")
	}
	if p.UserID != u.ID || p.AttemptCount != 0 {
		t.Fatalf("unexpected owner/counter: %+v", p)
	}
}

func TestProblemCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	link := "ftp://example.com/p"
	junk := "not a url"
	long := "https://example.com/" + strings.Repeat("a", 500)

	cases := map[string]ProblemRequest{
		"difficulty": {Title: "X", Difficulty: "Insane", Topics: "Math"},
		"title":      {Title: " ", Difficulty: "Easy", Topics: "Math"},
		"topics":     {Title: "X", Difficulty: "Easy", Topics: ""},
		"link":       {Title: "X", Difficulty: "Easy", Topics: "Math", PlatformLink: &link},
		"junk link":  {Title: "X", Difficulty: "Easy", Topics: "Math", PlatformLink: &junk},
		"long link":  {Title: "X", Difficulty: "Easy", Topics: "Math", PlatformLink: &long},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.problems.Create(ctx, Authenticated(u.ID), req)
			if !errors.Is(err, util.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestProblemCreateAcceptsHTTPSLink(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@example.com")
	link := "  https://leetcode.com/problems/two-sum/ "
	p, err := f.problems.Create(context.Background(), Authenticated(u.ID), ProblemRequest{Title: "Two Sum", Difficulty: "Easy", Topics: "Array", PlatformLink: &link})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.PlatformLink == nil || *p.PlatformLink != "https://leetcode.com/problems/two-sum/" {
		t.Fatalf("unexpected link %v", p.PlatformLink)
	}
}

func TestProblemWritesRequireAuthentication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	demo := f.user(t, "demo@example.com")
	p, err := f.problems.Create(ctx, Authenticated(demo.ID), ProblemRequest{Title: "Two Sum", Difficulty: "Easy", Topics: "Array"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, v := range []Viewer{Guest(demo.ID), Anonymous} {
		if _, err := f.problems.Create(ctx, v, ProblemRequest{Title: "X", Difficulty: "Easy", Topics: "Y"}); !errors.Is(err, util.ErrUnauthorized) {
			t.Fatalf("%s create: expected unauthorized, got %v", v.Kind, err)
		}
		if err := f.problems.Delete(ctx, v, p.ID); !errors.Is(err, util.ErrUnauthorized) {
			t.Fatalf("%s delete: expected unauthorized, got %v", v.Kind, err)
		}
	}

	// guests still read the demo catalog
	list, err := f.problems.List(ctx, Guest(demo.ID))
	if err != nil || len(list) != 1 {
		t.Fatalf("guest list: %v, %d problems", err, len(list))
	}
}

func TestProblemListAnonymousIsEmpty(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@example.com")
	if _, err := f.problems.Create(context.Background(), Authenticated(u.ID), ProblemRequest{Title: "X", Difficulty: "Hard", Topics: "Y"}); err != nil {
		t.Fatal(err)
	}

	list, err := f.problems.List(context.Background(), Anonymous)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", list)
	}
}

func TestProblemListOnlyOwnNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")

	for _, title := range []string{"First", "Second"} {
		if _, err := f.problems.Create(ctx, Authenticated(a.ID), ProblemRequest{Title: title, Difficulty: "Easy", Topics: "T"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.problems.Create(ctx, Authenticated(b.ID), ProblemRequest{Title: "Other", Difficulty: "Easy", Topics: "T"}); err != nil {
		t.Fatal(err)
	}

	list, err := f.problems.List(ctx, Authenticated(a.ID))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Title != "Second" || list[1].Title != "First" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestProblemGetAndDeleteOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	p, err := f.problems.Create(ctx, Authenticated(owner.ID), ProblemRequest{Title: "Two Sum", Difficulty: "Easy", Topics: "Array"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.problems.Get(ctx, Authenticated(other.ID), p.ID); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("get by other: expected forbidden, got %v", err)
	}
	if _, err := f.problems.Get(ctx, Anonymous, p.ID); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("get anonymous: expected forbidden, got %v", err)
	}
	if _, err := f.problems.Get(ctx, Authenticated(owner.ID), 9999); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("get missing: expected not found, got %v", err)
	}
	if err := f.problems.Delete(ctx, Authenticated(other.ID), p.ID); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("delete by other: expected forbidden, got %v", err)
	}
	if err := f.problems.Delete(ctx, Authenticated(owner.ID), 9999); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("delete missing: expected not found, got %v", err)
	}

	got, err := f.problems.Get(ctx, Authenticated(owner.ID), p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get by owner: %v", err)
	}
}

func TestProblemDeleteCascadesAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	viewer := Authenticated(u.ID)
	p, err := f.problems.Create(ctx, viewer, ProblemRequest{Title: "Two Sum", Difficulty: "Easy", Topics: "Array"})
	if err != nil {
		t.Fatal(err)
	}
	keep, err := f.problems.Create(ctx, viewer, ProblemRequest{Title: "Keep", Difficulty: "Medium", Topics: "Graph"})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []uint{p.ID, p.ID, keep.ID} {
		if _, err := f.attempts.Create(ctx, viewer, AttemptRequest{ProblemID: id, Solved: boolPtr(true)}); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.problems.Delete(ctx, viewer, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.problems.Get(ctx, viewer, p.ID); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("deleted problem still visible: %v", err)
	}

	attempts, err := f.attempts.List(ctx, viewer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 1 || attempts[0].ProblemID != keep.ID {
		t.Fatalf("expected only the kept problem's attempt, got %+v", attempts)
	}

	var orphans int64
	f.db.Model(&model.Attempt{}).Where("problem_id = ?", p.ID).Count(&orphans)
	if orphans != 0 {
		t.Fatalf("found %d orphaned attempts", orphans)
	}
}
