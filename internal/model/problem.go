package model

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// swagger:model Problem
type Problem struct {
	BaseModel
	UserID       uint       `gorm:"index;not null" json:"userId"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Slug         string     `gorm:"size:255;index" json:"slug"`
	Platform     *string    `gorm:"size:100" json:"platform"`
	PlatformLink *string    `gorm:"size:500" json:"platformLink"`
	Difficulty   Difficulty `gorm:"size:20;not null;index" json:"difficulty"`
	Topics       string     `gorm:"type:text" json:"topics"`
	// last attempt number issued for this problem
	AttemptCount int       `gorm:"not null;default:0" json:"attemptCount"`
	Attempts     []Attempt `gorm:"foreignKey:ProblemID" json:"attempts,omitempty"`
}

func (Problem) TableName() string {
	return "problems"
}

func (p *Problem) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	return nil
}

// PlatformLabel returns the platform name used for grouping.
func (p *Problem) PlatformLabel() string {
	if p.Platform == nil || *p.Platform == "" {
		return "Other"
	}
	return *p.Platform
}
