package service

import (
	"context"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/internal/testutil"
	"testing"

	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	problems *ProblemService
	attempts *AttemptService
	stats    *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	problemRepo := repository.NewProblemRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	attempts := NewAttemptService(db, problemRepo, attemptRepo)
	return &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		problems: NewProblemService(problemRepo),
		attempts: attempts,
		stats:    NewStatsService(attempts),
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func (f *fixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), f.db, email, "password123")
}
