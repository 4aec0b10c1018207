package repository

import (
	"context"
	"dsa_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: tx}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

// ListByUser returns the user's attempts newest first, each with its problem.
// A non-nil problemID narrows the list to that problem.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint, problemID *uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	q := r.DB.WithContext(ctx).
		Preload("Problem").
		Where("user_id = ?", userID)
	if problemID != nil {
		q = q.Where("problem_id = ?", *problemID)
	}
	err := q.Order("solved_at DESC").Order("id DESC").Find(&attempts).Error
	return attempts, err
}
