package service

import (
	"context"
	"dsa_tracker_backend/internal/config"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/pkg/logger"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedService provisions the demo identity outside the request path.
type SeedService struct {
	UserRepo    *repository.UserRepository
	ProblemRepo *repository.ProblemRepository
	Problems    *ProblemService
	Attempts    *AttemptService
	Demo        config.DemoConfig
}

func NewSeedService(userRepo *repository.UserRepository, problemRepo *repository.ProblemRepository, problems *ProblemService, attempts *AttemptService, demo config.DemoConfig) *SeedService {
	return &SeedService{
		UserRepo:    userRepo,
		ProblemRepo: problemRepo,
		Problems:    problems,
		Attempts:    attempts,
		Demo:        demo,
	}
}

type SeedResult struct {
	Demo     *model.User
	Problems int
	Attempts int
}

// Bootstrap upserts the demo identity. With samples set and an empty catalog
// it also creates the sample problems and a month of attempts.
func (s *SeedService) Bootstrap(ctx context.Context, samples bool) (*SeedResult, error) {
	if s.Demo.Email == "" {
		return nil, fmt.Errorf("demo email is not configured")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	demo, err := s.UserRepo.UpsertByEmail(ctx, &model.User{
		Name:     s.Demo.Name,
		Email:    normalizeEmail(s.Demo.Email),
		Password: string(hashed),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert demo user: %w", err)
	}
	result := &SeedResult{Demo: demo}

	if !samples {
		return result, nil
	}
	existing, err := s.ProblemRepo.CountByUser(ctx, demo.ID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		logger.Log.Info("demo catalog already present", zap.Int64("problems", existing))
		return result, nil
	}

	viewer := Authenticated(demo.ID)
	created := make([]*model.Problem, 0, len(sampleProblems))
	for _, req := range sampleProblems {
		p, err := s.Problems.Create(ctx, viewer, req)
		if err != nil {
			return nil, fmt.Errorf("seed problem %q: %w", req.Title, err)
		}
		created = append(created, p)
	}
	result.Problems = len(created)

	n, err := s.seedAttempts(ctx, viewer, created)
	if err != nil {
		return nil, err
	}
	result.Attempts = n

	logger.Log.Info("demo catalog seeded",
		zap.Int("problems", result.Problems),
		zap.Int("attempts", result.Attempts),
	)
	return result, nil
}

// seedAttempts leaves the first few problems unsolved and spreads random
// attempts over the rest, all within the last 30 days.
func (s *SeedService) seedAttempts(ctx context.Context, viewer Viewer, problems []*model.Problem) (int, error) {
	const (
		unsolved      = 3
		randomRounds  = 80
		solveChance   = 0.7
		windowDays    = 30
		minSolveTime  = 10
		solveTimeSpan = 90
	)
	if len(problems) <= unsolved {
		return 0, nil
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()
	count := 0
	record := func(p *model.Problem, solved bool) error {
		at := now.AddDate(0, 0, -rng.Intn(windowDays))
		req := AttemptRequest{
			ProblemID: p.ID,
			Solved:    &solved,
			SolvedAt:  &at,
		}
		if solved {
			minutes := rng.Intn(solveTimeSpan) + minSolveTime
			req.TimeTaken = &minutes
		}
		if note := sampleNotes[rng.Intn(len(sampleNotes))]; note != "" {
			req.Notes = &note
		}
		if _, err := s.Attempts.Create(ctx, viewer, req); err != nil {
			return fmt.Errorf("seed attempt for %q: %w", p.Title, err)
		}
		count++
		return nil
	}

	for _, p := range problems[:unsolved] {
		for j := rng.Intn(2) + 1; j > 0; j-- {
			if err := record(p, false); err != nil {
				return count, err
			}
		}
	}
	rest := problems[unsolved:]
	for i := 0; i < randomRounds; i++ {
		p := rest[rng.Intn(len(rest))]
		if err := record(p, rng.Float64() < solveChance); err != nil {
			return count, err
		}
	}
	return count, nil
}
