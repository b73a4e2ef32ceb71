package repository

import (
	"context"

	"github.com/davrbek/quizcore/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	CreateBatch(ctx context.Context, questions []model.Question) error
	FindByTestID(ctx context.Context, testID uint) ([]model.Question, error)
	// CorrectOptionsByTest fetches the answer key for the given question
	// ids scoped to one test, in a single query. A question belonging to a
	// different test is simply absent from the returned map.
	CorrectOptionsByTest(ctx context.Context, testID uint, questionIDs []uint) (map[uint]string, error)
	DeleteByTestID(ctx context.Context, testID uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	if tx == nil {
		return r
	}
	return &questionRepository{db: tx}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) FindByTestID(ctx context.Context, testID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.label ASC")
		}).
		Preload("Media").
		Where("test_id = ?", testID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CorrectOptionsByTest(ctx context.Context, testID uint, questionIDs []uint) (map[uint]string, error) {
	var rows []struct {
		ID            uint
		CorrectOption string
	}
	err := r.db.WithContext(ctx).Model(&model.Question{}).
		Select("id, correct_option").
		Where("test_id = ? AND id IN ?", testID, questionIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	key := make(map[uint]string, len(rows))
	for _, row := range rows {
		key[row.ID] = row.CorrectOption
	}
	return key, nil
}

func (r *questionRepository) DeleteByTestID(ctx context.Context, testID uint) error {
	// Hard delete: edits replace the whole question graph, and the cascade
	// takes the options and media with each question.
	return r.db.WithContext(ctx).Unscoped().Where("test_id = ?", testID).Delete(&model.Question{}).Error
}
