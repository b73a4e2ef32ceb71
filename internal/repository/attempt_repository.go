package repository

import (
	"context"
	"time"

	"github.com/davrbek/quizcore/internal/model"
	"gorm.io/gorm"
)

// AttemptResultRow is one row of an admin results report: an attempt joined
// with its user (and, for the all-tests report, the test name).
type AttemptResultRow struct {
	AttemptID      uint
	Score          int
	TotalQuestions int
	Percentage     float64
	AttemptDate    time.Time
	UserID         uint
	FullName       string
	Email          string
	TestName       string
}

type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository
	Create(ctx context.Context, attempt *model.Attempt) error
	CreateAnswers(ctx context.Context, answers []model.AttemptAnswer) error
	// Finalize sets the aggregate score on a provisional attempt. Only
	// valid inside the same transaction that created the attempt.
	Finalize(ctx context.Context, attemptID uint, score int, percentage float64) error
	ExistsForTest(ctx context.Context, attemptID, testID uint) (bool, error)
	ResultsByTest(ctx context.Context, testID uint) ([]AttemptResultRow, error)
	AllResults(ctx context.Context) ([]AttemptResultRow, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	if tx == nil {
		return r
	}
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) CreateAnswers(ctx context.Context, answers []model.AttemptAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

func (r *attemptRepository) Finalize(ctx context.Context, attemptID uint, score int, percentage float64) error {
	return r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]interface{}{"score": score, "percentage": percentage}).Error
}

func (r *attemptRepository) ExistsForTest(ctx context.Context, attemptID, testID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND test_id = ?", attemptID, testID).
		Count(&count).Error
	return count > 0, err
}

func (r *attemptRepository) ResultsByTest(ctx context.Context, testID uint) ([]AttemptResultRow, error) {
	var rows []AttemptResultRow
	err := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Select(`attempts.id AS attempt_id, attempts.score, attempts.total_questions,
			attempts.percentage, attempts.created_at AS attempt_date,
			users.id AS user_id, users.full_name, users.email`).
		Joins("JOIN users ON users.id = attempts.user_id").
		Where("attempts.test_id = ?", testID).
		Order("attempts.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *attemptRepository) AllResults(ctx context.Context) ([]AttemptResultRow, error) {
	var rows []AttemptResultRow
	err := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Select(`attempts.id AS attempt_id, attempts.score, attempts.total_questions,
			attempts.percentage, attempts.created_at AS attempt_date,
			users.id AS user_id, users.full_name, users.email,
			tests.name AS test_name`).
		Joins("JOIN users ON users.id = attempts.user_id").
		Joins("JOIN tests ON tests.id = attempts.test_id").
		Order("attempts.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
