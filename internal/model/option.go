package model

import "time"

// Option is one labeled choice of a question. Labels are unique within a
// question; a well-formed question carries exactly four of them (A-D).
type Option struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index;uniqueIndex:idx_option_question_label"`
	Label      string    `json:"option_label" gorm:"type:varchar(1);not null;uniqueIndex:idx_option_question_label"`
	Text       string    `json:"option_text" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
