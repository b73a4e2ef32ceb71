package dto

// OptionCreateDTO is one choice of a question being authored.
type OptionCreateDTO struct {
	Label string `json:"label" binding:"required,oneof=A B C D"`
	Text  string `json:"text" binding:"required"`
}

// MediaCreateDTO optionally attaches an image or audio clip to a question.
type MediaCreateDTO struct {
	Type string `json:"type" binding:"required,oneof=image audio"`
	URL  string `json:"url" binding:"required,url"`
}

// QuestionCreateDTO is used within TestCreateDTO for admin test authoring.
// Exactly four options are required; the service additionally checks that
// the labels are distinct.
type QuestionCreateDTO struct {
	QuestionText  string            `json:"question_text" binding:"required"`
	CorrectOption string            `json:"correct_option" binding:"required,oneof=A B C D"`
	Options       []OptionCreateDTO `json:"options" binding:"required,len=4,dive"`
	Media         *MediaCreateDTO   `json:"media,omitempty"`
}

// TestCreateDTO is the body for creating a test and, with the same shape,
// for editing one (edits replace the whole question graph).
type TestCreateDTO struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description,omitempty"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}
