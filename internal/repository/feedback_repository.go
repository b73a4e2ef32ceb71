package repository

import (
	"context"
	"time"

	"github.com/davrbek/quizcore/internal/model"
	"gorm.io/gorm"
)

// FeedbackRow is one row of an admin feedback report: a feedback note
// joined with its attempt and the attempting user.
type FeedbackRow struct {
	FeedbackID   uint
	FeedbackText string
	FeedbackDate time.Time
	AttemptID    uint
	FullName     string
	Email        string
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	ByTest(ctx context.Context, testID uint) ([]FeedbackRow, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) ByTest(ctx context.Context, testID uint) ([]FeedbackRow, error) {
	var rows []FeedbackRow
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Select(`feedbacks.id AS feedback_id, feedbacks.feedback_text,
			feedbacks.created_at AS feedback_date, attempts.id AS attempt_id,
			users.full_name, users.email`).
		Joins("JOIN attempts ON attempts.id = feedbacks.attempt_id").
		Joins("JOIN users ON users.id = attempts.user_id").
		Where("attempts.test_id = ?", testID).
		Order("feedbacks.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
