package repository

import (
	"context"
	"dsa_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *ProblemRepository) WithTx(tx *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: tx}
}

func (r *ProblemRepository) Create(ctx context.Context, problem *model.Problem) error {
	return r.DB.WithContext(ctx).Create(problem).Error
}

func (r *ProblemRepository) FindByID(ctx context.Context, id uint) (*model.Problem, error) {
	var p model.Problem
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser 按创建时间倒序返回用户的题目及其尝试记录
func (r *ProblemRepository) ListByUser(ctx context.Context, userID uint) ([]model.Problem, error) {
	var problems []model.Problem
	err := r.DB.WithContext(ctx).
		Preload("Attempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("solved_at DESC").Order("id DESC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&problems).Error
	return problems, err
}

func (r *ProblemRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Problem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// IncrementAttemptCount bumps the problem's attempt counter and returns the new value.
// It reports false when no problem with that id is owned by userID.
// Run it inside the transaction that inserts the attempt.
func (r *ProblemRepository) IncrementAttemptCount(ctx context.Context, problemID, userID uint) (int, bool, error) {
	db := r.DB.WithContext(ctx)
	res := db.Model(&model.Problem{}).
		Where("id = ? AND user_id = ?", problemID, userID).
		Update("attempt_count", gorm.Expr("attempt_count + ?", 1))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}

	var count int
	if err := db.Model(&model.Problem{}).Select("attempt_count").Where("id = ?", problemID).Scan(&count).Error; err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// DeleteWithAttempts removes the problem and every attempt logged against it.
func (r *ProblemRepository) DeleteWithAttempts(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Problem{}, id).Error
	})
}
