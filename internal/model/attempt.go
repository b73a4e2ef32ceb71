package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is one user's graded run of one test. It is created in a
// provisional zero-score state and finalized by the same transaction that
// grades the answers; after that commit it is never mutated.
type Attempt struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserID         uint            `json:"user_id" gorm:"not null;index"`
	User           User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TestID         uint            `json:"test_id" gorm:"not null;index"`
	Test           Test            `json:"test,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
	Score          int             `json:"score" gorm:"not null"`
	TotalQuestions int             `json:"total_questions" gorm:"not null"`
	Percentage     float64         `json:"percentage" gorm:"not null"`
	Answers        []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
