package service

import (
	"context"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/internal/util"
	"dsa_tracker_backend/pkg/logger"
	"dsa_tracker_backend/pkg/monitoring"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProblemRequest 创建题目请求
// swagger:model ProblemRequest
type ProblemRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Platform     *string `json:"platform" binding:"omitempty,max=100"`
	PlatformLink *string `json:"platformLink" binding:"omitempty,http_url,max=500"`
	Difficulty   string  `json:"difficulty" binding:"required"`
	Topics       string  `json:"topics" binding:"required"`
}

type ProblemService struct {
	ProblemRepo *repository.ProblemRepository
}

func NewProblemService(problemRepo *repository.ProblemRepository) *ProblemService {
	return &ProblemService{ProblemRepo: problemRepo}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r *ProblemRequest) normalize() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Topics = strings.TrimSpace(r.Topics)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
	r.Platform = blankToNil(r.Platform)
	r.PlatformLink = blankToNil(r.PlatformLink)

	if r.Title == "" {
		return util.Validationf("title is required")
	}
	if r.Topics == "" {
		return util.Validationf("topics is required")
	}
	valid := false
	for _, d := range model.Difficulties {
		if string(d) == r.Difficulty {
			valid = true
			break
		}
	}
	if !valid {
		return util.Validationf("difficulty must be one of Easy, Medium, Hard")
	}
	// same tags the HTTP binding checks, for callers that skip it
	if err := binding.Validator.ValidateStruct(r); err != nil {
		return util.Validationf("%s", err.Error())
	}
	return nil
}

func (s *ProblemService) Create(ctx context.Context, viewer Viewer, req ProblemRequest) (*model.Problem, error) {
	userID, err := viewer.WriterID()
	if err != nil {
		return nil, err
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	problem := &model.Problem{}
	if err := copier.Copy(problem, &req); err != nil {
		return nil, fmt.Errorf("map problem request: %w", err)
	}
	problem.UserID = userID

	if err := s.ProblemRepo.Create(ctx, problem); err != nil {
		return nil, err
	}

	monitoring.ProblemsCreated.WithLabelValues(string(problem.Difficulty)).Inc()
	logger.Log.Debug("problem created", zap.Uint("problem_id", problem.ID), zap.Uint("user_id", userID))
	return problem, nil
}

// List 返回当前身份拥有的全部题目（含尝试记录），匿名访问返回空列表
func (s *ProblemService) List(ctx context.Context, viewer Viewer) ([]model.Problem, error) {
	userID, ok := viewer.IdentityID()
	if !ok {
		return []model.Problem{}, nil
	}
	return s.ProblemRepo.ListByUser(ctx, userID)
}

func (s *ProblemService) findOwned(ctx context.Context, problemID, userID uint, hasIdentity bool) (*model.Problem, error) {
	problem, err := s.ProblemRepo.FindByID(ctx, problemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProblemNotFound
	}
	if err != nil {
		return nil, err
	}
	if !hasIdentity || problem.UserID != userID {
		return nil, util.ErrNotProblemOwner
	}
	return problem, nil
}

func (s *ProblemService) Get(ctx context.Context, viewer Viewer, problemID uint) (*model.Problem, error) {
	userID, ok := viewer.IdentityID()
	return s.findOwned(ctx, problemID, userID, ok)
}

// Delete removes an owned problem together with its attempts.
func (s *ProblemService) Delete(ctx context.Context, viewer Viewer, problemID uint) error {
	userID, err := viewer.WriterID()
	if err != nil {
		return err
	}
	if _, err := s.findOwned(ctx, problemID, userID, true); err != nil {
		return err
	}
	if err := s.ProblemRepo.DeleteWithAttempts(ctx, problemID); err != nil {
		return err
	}

	logger.Log.Info("problem deleted", zap.Uint("problem_id", problemID), zap.Uint("user_id", userID))
	return nil
}
