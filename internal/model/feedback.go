package model

import "time"

// Feedback is an optional free-text note a taker attaches to a finished
// attempt. It is written outside the scoring transaction.
type Feedback struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	AttemptID    uint      `json:"attempt_id" gorm:"not null;index"`
	Attempt      Attempt   `json:"attempt,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE;"`
	FeedbackText string    `json:"feedback_text" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
