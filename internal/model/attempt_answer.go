package model

import "time"

// AttemptAnswer records one graded response. IsCorrect is fixed at write
// time and never re-derived, so the audit trail stays stable even if the
// answer key is edited later.
type AttemptAnswer struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	AttemptID      uint      `json:"attempt_id" gorm:"not null;index"`
	QuestionID     uint      `json:"question_id" gorm:"not null;index"`
	Question       Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
	SelectedOption string    `json:"selected_option" gorm:"type:varchar(1);not null"`
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
