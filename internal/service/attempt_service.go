package service

import (
	"context"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/internal/util"
	"dsa_tracker_backend/pkg/logger"
	"dsa_tracker_backend/pkg/monitoring"
	"dsa_tracker_backend/pkg/tracing"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 允许客户端时钟的少量偏差
const solvedAtSkew = time.Minute

// AttemptRequest 记录一次尝试
// swagger:model AttemptRequest
type AttemptRequest struct {
	ProblemID   uint       `json:"problemId" binding:"required"`
	Solved      *bool      `json:"solved" binding:"required"`
	TimeTaken   *int       `json:"timeTaken" binding:"omitempty,min=0"`
	Notes       *string    `json:"notes"`
	Approach    *string    `json:"approach"`
	Language    *string    `json:"language" binding:"omitempty,max=50"`
	CodeSnippet *string    `json:"codeSnippet"`
	SolvedAt    *time.Time `json:"solvedAt"`
}

type AttemptService struct {
	DB          *gorm.DB
	ProblemRepo *repository.ProblemRepository
	AttemptRepo *repository.AttemptRepository
	now         func() time.Time
}

func NewAttemptService(db *gorm.DB, problemRepo *repository.ProblemRepository, attemptRepo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{
		DB:          db,
		ProblemRepo: problemRepo,
		AttemptRepo: attemptRepo,
		now:         time.Now,
	}
}

func (r *AttemptRequest) validate(now time.Time) error {
	if r.ProblemID == 0 {
		return util.Validationf("problemId is required")
	}
	if r.Solved == nil {
		return util.Validationf("solved is required")
	}
	if r.TimeTaken != nil && *r.TimeTaken < 0 {
		return util.Validationf("timeTaken must not be negative")
	}
	if r.SolvedAt != nil && r.SolvedAt.After(now.Add(solvedAtSkew)) {
		return util.Validationf("solvedAt must not be in the future")
	}
	r.Notes = blankToNil(r.Notes)
	r.Approach = blankToNil(r.Approach)
	r.Language = blankToNil(r.Language)
	r.CodeSnippet = blankToNil(r.CodeSnippet)
	return nil
}

// Create logs an attempt against a problem owned by the viewer. The attempt
// number comes from the problem's counter, incremented in the same
// transaction as the insert.
func (s *AttemptService) Create(ctx context.Context, viewer Viewer, req AttemptRequest) (*model.Attempt, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AttemptService.Create")
	defer span.End()

	userID, err := viewer.WriterID()
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := req.validate(now); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("problem.id", int64(req.ProblemID)))

	attempt := &model.Attempt{}
	if err := copier.Copy(attempt, &req); err != nil {
		return nil, fmt.Errorf("map attempt request: %w", err)
	}
	attempt.UserID = userID
	attempt.Solved = *req.Solved
	if req.SolvedAt != nil {
		attempt.SolvedAt = *req.SolvedAt
	} else {
		attempt.SolvedAt = now
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		problems := s.ProblemRepo.WithTx(tx)
		number, owned, err := problems.IncrementAttemptCount(ctx, req.ProblemID, userID)
		if err != nil {
			return err
		}
		if !owned {
			if _, err := problems.FindByID(ctx, req.ProblemID); errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrProblemNotFound
			} else if err != nil {
				return err
			}
			return util.ErrNotProblemOwner
		}

		attempt.AttemptNumber = number
		return s.AttemptRepo.WithTx(tx).Create(ctx, attempt)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("attempt.number", attempt.AttemptNumber))
	monitoring.AttemptsRecorded.WithLabelValues(strconv.FormatBool(attempt.Solved)).Inc()
	logger.Log.Debug("attempt recorded",
		zap.Uint("attempt_id", attempt.ID),
		zap.Uint("problem_id", attempt.ProblemID),
		zap.Int("attempt_number", attempt.AttemptNumber),
	)
	return attempt, nil
}

// List 返回当前身份的尝试记录（按时间倒序），可按题目过滤
func (s *AttemptService) List(ctx context.Context, viewer Viewer, problemID *uint) ([]model.Attempt, error) {
	userID, ok := viewer.IdentityID()
	if !ok {
		return []model.Attempt{}, nil
	}
	return s.AttemptRepo.ListByUser(ctx, userID, problemID)
}
