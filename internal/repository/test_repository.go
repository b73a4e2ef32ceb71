package repository

import (
	"context"

	"github.com/davrbek/quizcore/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	// WithTx returns a copy of the repository bound to the given
	// transaction handle.
	WithTx(tx *gorm.DB) TestRepository
	Create(ctx context.Context, test *model.Test) error
	Update(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindRandom(ctx context.Context) (*model.Test, error)
	DeleteCascade(ctx context.Context, id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) WithTx(tx *gorm.DB) TestRepository {
	if tx == nil {
		return r
	}
	return &testRepository{db: tx}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	// Creates the associated questions, options and media in one go when
	// test.Questions is populated.
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) Update(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Model(&model.Test{ID: test.ID}).
		Updates(map[string]interface{}{"name": test.Name, "description": test.Description}).Error
}

func (r *testRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Test{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *testRepository) FindRandom(ctx context.Context) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).Order("RANDOM()").First(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) DeleteCascade(ctx context.Context, id uint) error {
	// Hard delete so the foreign-key cascade removes the question graph,
	// attempts and feedback along with the test.
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Test{}, id).Error
}
