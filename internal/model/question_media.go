package model

import "time"

type QuestionMedia struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	MediaType  string    `json:"media_type" gorm:"not null"` // "image", "audio"
	MediaURL   string    `json:"media_url" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
