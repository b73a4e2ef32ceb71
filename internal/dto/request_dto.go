package dto

// StartTestRequest identifies the taker; the user record is upserted by
// email before a test is assigned.
type StartTestRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// SubmittedAnswerDTO is one answer within a test submission.
type SubmittedAnswerDTO struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required,oneof=A B C D"`
}

// SubmitTestRequest is the body of POST /tests/:id/submit.
type SubmitTestRequest struct {
	UserID  uint                 `json:"user_id" binding:"required"`
	Answers []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
}

// SubmitFeedbackRequest attaches a free-text note to a finished attempt.
type SubmitFeedbackRequest struct {
	AttemptID    uint   `json:"attempt_id" binding:"required"`
	FeedbackText string `json:"feedback_text" binding:"required"`
}
