package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type OptionDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"option_label"`
	Text  string `json:"option_text"`
}

type MediaDTO struct {
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
}

// QuestionForTakerDTO is a question as presented to a test taker. The
// correct option is deliberately not part of this shape.
type QuestionForTakerDTO struct {
	QuestionID   uint        `json:"question_id"`
	QuestionText string      `json:"question_text"`
	Options      []OptionDTO `json:"options"`
	Media        *MediaDTO   `json:"media,omitempty"`
}

// StartTestResponse hands the taker their (possibly just created) user
// record, the randomly assigned test and its questions.
type StartTestResponse struct {
	User      UserDTO               `json:"user"`
	TestID    uint                  `json:"testId"`
	Questions []QuestionForTakerDTO `json:"questions"`
}

// AttemptResultDTO is the outcome of a scored submission.
type AttemptResultDTO struct {
	AttemptID      uint    `json:"attemptId"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

// TestCreatedResponse reports a created or fully replaced test graph.
type TestCreatedResponse struct {
	Message     string `json:"message"`
	TestID      uint   `json:"testId"`
	QuestionIDs []uint `json:"questionIds"`
}

// TestResultDTO is one attempt row of an admin results report. TestName is
// only populated by the all-tests report.
type TestResultDTO struct {
	AttemptID      uint      `json:"attempt_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	AttemptDate    time.Time `json:"attempt_date"`
	UserID         uint      `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	TestName       string    `json:"test_name,omitempty"`
}

// FeedbackDTO is one feedback row of an admin feedback report.
type FeedbackDTO struct {
	FeedbackID   uint      `json:"feedback_id"`
	FeedbackText string    `json:"feedback_text"`
	FeedbackDate time.Time `json:"feedback_date"`
	AttemptID    uint      `json:"attempt_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
}
