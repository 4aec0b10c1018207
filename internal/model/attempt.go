package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID        uint      `gorm:"index;not null" json:"userId"`
	ProblemID     uint      `gorm:"not null;uniqueIndex:idx_problem_attempt_number,priority:1" json:"problemId"`
	AttemptNumber int       `gorm:"not null;uniqueIndex:idx_problem_attempt_number,priority:2" json:"attemptNumber"`
	Solved        bool      `gorm:"not null" json:"solved"`
	TimeTaken     *int      `json:"timeTaken"` // 分钟
	Notes         *string   `gorm:"type:text" json:"notes"`
	Approach      *string   `gorm:"type:text" json:"approach"`
	Language      *string   `gorm:"size:50" json:"language"`
	CodeSnippet   *string   `gorm:"type:text" json:"codeSnippet"`
	SolvedAt      time.Time `gorm:"index;not null" json:"solvedAt"`
	Problem       *Problem  `gorm:"foreignKey:ProblemID" json:"problem,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.SolvedAt.IsZero() {
		a.SolvedAt = time.Now()
	}
	return nil
}
