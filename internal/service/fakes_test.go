package service

import (
	"context"

	"github.com/davrbek/quizcore/internal/model"
	"github.com/davrbek/quizcore/internal/repository"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. The fake transaction
// manager only tracks commit/rollback decisions; rollback effects are
// asserted through what was (not) finalized.

type fakeTxManager struct {
	began      int
	committed  int
	rolledBack int
}

func (m *fakeTxManager) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	m.began++
	if err := fn(nil); err != nil {
		m.rolledBack++
		return err
	}
	m.committed++
	return nil
}

type fakeTestRepo struct {
	tests  map[uint]*model.Test
	nextID uint

	deleted []uint
}

func newFakeTestRepo() *fakeTestRepo {
	return &fakeTestRepo{tests: make(map[uint]*model.Test), nextID: 1}
}

func (f *fakeTestRepo) WithTx(_ *gorm.DB) repository.TestRepository { return f }

func (f *fakeTestRepo) Create(_ context.Context, test *model.Test) error {
	test.ID = f.nextID
	f.nextID++
	for i := range test.Questions {
		test.Questions[i].ID = f.nextID
		test.Questions[i].TestID = test.ID
		f.nextID++
	}
	f.tests[test.ID] = test
	return nil
}

func (f *fakeTestRepo) Update(_ context.Context, test *model.Test) error {
	stored, ok := f.tests[test.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name = test.Name
	stored.Description = test.Description
	return nil
}

func (f *fakeTestRepo) FindByID(_ context.Context, id uint) (*model.Test, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *test
	return &copied, nil
}

func (f *fakeTestRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := f.tests[id]
	return ok, nil
}

func (f *fakeTestRepo) FindRandom(_ context.Context) (*model.Test, error) {
	for _, test := range f.tests {
		copied := *test
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTestRepo) DeleteCascade(_ context.Context, id uint) error {
	delete(f.tests, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeQuestionRepo struct {
	questionsByTest map[uint][]model.Question
	keyByTest       map[uint]map[uint]string
	nextID          uint

	deletedTests []uint
	created      []model.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questionsByTest: make(map[uint][]model.Question),
		keyByTest:       make(map[uint]map[uint]string),
		nextID:          100,
	}
}

func (f *fakeQuestionRepo) WithTx(_ *gorm.DB) repository.QuestionRepository { return f }

func (f *fakeQuestionRepo) CreateBatch(_ context.Context, questions []model.Question) error {
	for i := range questions {
		questions[i].ID = f.nextID
		f.nextID++
		f.questionsByTest[questions[i].TestID] = append(f.questionsByTest[questions[i].TestID], questions[i])
	}
	f.created = append(f.created, questions...)
	return nil
}

func (f *fakeQuestionRepo) FindByTestID(_ context.Context, testID uint) ([]model.Question, error) {
	return f.questionsByTest[testID], nil
}

func (f *fakeQuestionRepo) CorrectOptionsByTest(_ context.Context, testID uint, questionIDs []uint) (map[uint]string, error) {
	testKey := f.keyByTest[testID]
	key := make(map[uint]string)
	for _, id := range questionIDs {
		if correct, ok := testKey[id]; ok {
			key[id] = correct
		}
	}
	return key, nil
}

func (f *fakeQuestionRepo) DeleteByTestID(_ context.Context, testID uint) error {
	delete(f.questionsByTest, testID)
	f.deletedTests = append(f.deletedTests, testID)
	return nil
}

type fakeAttemptRepo struct {
	attempts []model.Attempt
	answers  []model.AttemptAnswer
	nextID   uint

	finalized  map[uint][2]float64 // attemptID -> {score, percentage}
	resultRows []repository.AttemptResultRow
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{nextID: 1, finalized: make(map[uint][2]float64)}
}

func (f *fakeAttemptRepo) WithTx(_ *gorm.DB) repository.AttemptRepository { return f }

func (f *fakeAttemptRepo) Create(_ context.Context, attempt *model.Attempt) error {
	attempt.ID = f.nextID
	f.nextID++
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptRepo) CreateAnswers(_ context.Context, answers []model.AttemptAnswer) error {
	f.answers = append(f.answers, answers...)
	return nil
}

func (f *fakeAttemptRepo) Finalize(_ context.Context, attemptID uint, score int, percentage float64) error {
	f.finalized[attemptID] = [2]float64{float64(score), percentage}
	return nil
}

func (f *fakeAttemptRepo) ExistsForTest(_ context.Context, attemptID, testID uint) (bool, error) {
	for _, attempt := range f.attempts {
		if attempt.ID == attemptID && attempt.TestID == testID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttemptRepo) ResultsByTest(_ context.Context, _ uint) ([]repository.AttemptResultRow, error) {
	return f.resultRows, nil
}

func (f *fakeAttemptRepo) AllResults(_ context.Context) ([]repository.AttemptResultRow, error) {
	return f.resultRows, nil
}

type fakeFeedbackRepo struct {
	created []model.Feedback
	rows    []repository.FeedbackRow
	nextID  uint
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{nextID: 1}
}

func (f *fakeFeedbackRepo) Create(_ context.Context, feedback *model.Feedback) error {
	feedback.ID = f.nextID
	f.nextID++
	f.created = append(f.created, *feedback)
	return nil
}

func (f *fakeFeedbackRepo) ByTest(_ context.Context, _ uint) ([]repository.FeedbackRow, error) {
	return f.rows, nil
}

type fakeUserRepo struct {
	usersByEmail map[string]*model.User
	nextID       uint

	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByEmail: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.usersByEmail[user.Email] = user
	f.createCalls++
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}
