package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davrbek/quizcore/internal/apperr"
	"github.com/davrbek/quizcore/internal/dto"
	"github.com/davrbek/quizcore/internal/model"
	"github.com/davrbek/quizcore/internal/repository"
)

type adminFixture struct {
	testRepo     *fakeTestRepo
	questionRepo *fakeQuestionRepo
	attemptRepo  *fakeAttemptRepo
	feedbackRepo *fakeFeedbackRepo
	tx           *fakeTxManager
	svc          AdminTestService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		testRepo:     newFakeTestRepo(),
		questionRepo: newFakeQuestionRepo(),
		attemptRepo:  newFakeAttemptRepo(),
		feedbackRepo: newFakeFeedbackRepo(),
		tx:           &fakeTxManager{},
	}
	f.svc = NewAdminTestService(f.testRepo, f.questionRepo, f.attemptRepo, f.feedbackRepo, f.tx)
	return f
}

func fourOptions() []dto.OptionCreateDTO {
	return []dto.OptionCreateDTO{
		{Label: "A", Text: "first"},
		{Label: "B", Text: "second"},
		{Label: "C", Text: "third"},
		{Label: "D", Text: "fourth"},
	}
}

func validCreateRequest() dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Name:        "Grammar basics",
		Description: "intro level",
		Questions: []dto.QuestionCreateDTO{
			{QuestionText: "Pick the verb", CorrectOption: "B", Options: fourOptions()},
			{
				QuestionText:  "Listen and choose",
				CorrectOption: "A",
				Options:       fourOptions(),
				Media:         &dto.MediaCreateDTO{Type: "audio", URL: "https://cdn.example.com/q2.mp3"},
			},
		},
	}
}

func (f *adminFixture) seedOwnedTest(adminID uint) uint {
	test := &model.Test{Name: "Owned", CreatedBy: adminID}
	if err := f.testRepo.Create(context.Background(), test); err != nil {
		panic(err)
	}
	return test.ID
}

func TestCreateTest(t *testing.T) {
	f := newAdminFixture()

	resp, err := f.svc.CreateTest(context.Background(), 42, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateTest returned error: %v", err)
	}
	if resp.TestID == 0 {
		t.Error("test id not assigned")
	}
	if len(resp.QuestionIDs) != 2 {
		t.Errorf("got %d question ids, want 2", len(resp.QuestionIDs))
	}
	if resp.Message != "Test created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if f.tx.committed != 1 {
		t.Errorf("tx committed=%d, want 1", f.tx.committed)
	}

	stored := f.testRepo.tests[resp.TestID]
	if stored == nil {
		t.Fatal("test not persisted")
	}
	if stored.CreatedBy != 42 {
		t.Errorf("CreatedBy = %d, want 42", stored.CreatedBy)
	}
	if stored.Questions[1].Media == nil || stored.Questions[1].Media.MediaType != "audio" {
		t.Error("question media not carried into the model graph")
	}
}

func TestCreateTestDuplicateOptionLabel(t *testing.T) {
	f := newAdminFixture()
	req := validCreateRequest()
	req.Questions[0].Options[2].Label = "A"

	_, err := f.svc.CreateTest(context.Background(), 42, req)
	if !errors.Is(err, apperr.ErrInvalidTestDefinition) {
		t.Fatalf("got %v, want ErrInvalidTestDefinition", err)
	}
	if f.tx.began != 0 {
		t.Error("transaction opened for an invalid question set")
	}
}

func TestUpdateTestReplacesQuestionGraph(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)
	req := validCreateRequest()
	req.Name = "Grammar basics v2"

	resp, err := f.svc.UpdateTest(context.Background(), 42, testID, req)
	if err != nil {
		t.Fatalf("UpdateTest returned error: %v", err)
	}
	if resp.Message != "Test updated successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if f.testRepo.tests[testID].Name != "Grammar basics v2" {
		t.Errorf("test name = %q, not updated", f.testRepo.tests[testID].Name)
	}
	if len(f.questionRepo.deletedTests) != 1 || f.questionRepo.deletedTests[0] != testID {
		t.Error("previous question graph was not removed")
	}
	if len(f.questionRepo.created) != 2 {
		t.Errorf("inserted %d replacement questions, want 2", len(f.questionRepo.created))
	}
	for _, question := range f.questionRepo.created {
		if question.TestID != testID {
			t.Errorf("replacement question bound to test %d, want %d", question.TestID, testID)
		}
	}
}

func TestUpdateTestNotOwner(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)

	_, err := f.svc.UpdateTest(context.Background(), 7, testID, validCreateRequest())
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
	if f.tx.began != 0 {
		t.Error("transaction opened despite failed ownership check")
	}
}

func TestUpdateTestNotFound(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.UpdateTest(context.Background(), 42, 99, validCreateRequest())
	if !errors.Is(err, apperr.ErrTestNotFound) {
		t.Fatalf("got %v, want ErrTestNotFound", err)
	}
}

func TestDeleteTest(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)

	if err := f.svc.DeleteTest(context.Background(), 42, testID); err != nil {
		t.Fatalf("DeleteTest returned error: %v", err)
	}
	if _, ok := f.testRepo.tests[testID]; ok {
		t.Error("test still present after delete")
	}
}

func TestDeleteTestNotOwner(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)

	err := f.svc.DeleteTest(context.Background(), 7, testID)
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
	if len(f.testRepo.deleted) != 0 {
		t.Error("test deleted despite failed ownership check")
	}
}

func TestGetTestResults(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)
	f.attemptRepo.resultRows = []repository.AttemptResultRow{
		{
			AttemptID:      5,
			Score:          8,
			TotalQuestions: 10,
			Percentage:     80,
			AttemptDate:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			UserID:         3,
			FullName:       "Dana Smith",
			Email:          "dana@example.com",
		},
	}

	results, err := f.svc.GetTestResults(context.Background(), 42, testID)
	if err != nil {
		t.Fatalf("GetTestResults returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d rows, want 1", len(results))
	}
	row := results[0]
	if row.AttemptID != 5 || row.Score != 8 || row.Percentage != 80 || row.Email != "dana@example.com" {
		t.Errorf("unexpected row mapping: %+v", row)
	}
}

func TestGetTestResultsNotOwner(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)

	_, err := f.svc.GetTestResults(context.Background(), 7, testID)
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Fatalf("got %v, want ErrNotOwner", err)
	}
}

func TestGetAllResultsIncludesTestName(t *testing.T) {
	f := newAdminFixture()
	f.attemptRepo.resultRows = []repository.AttemptResultRow{
		{AttemptID: 1, Score: 1, TotalQuestions: 1, Percentage: 100, FullName: "Dana Smith", TestName: "Grammar basics"},
	}

	results, err := f.svc.GetAllResults(context.Background())
	if err != nil {
		t.Fatalf("GetAllResults returned error: %v", err)
	}
	if len(results) != 1 || results[0].TestName != "Grammar basics" {
		t.Errorf("unexpected rows: %+v", results)
	}
}

func TestGetTestFeedback(t *testing.T) {
	f := newAdminFixture()
	testID := f.seedOwnedTest(42)
	f.feedbackRepo.rows = []repository.FeedbackRow{
		{
			FeedbackID:   2,
			FeedbackText: "too easy",
			FeedbackDate: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			AttemptID:    5,
			FullName:     "Dana Smith",
			Email:        "dana@example.com",
		},
	}

	feedback, err := f.svc.GetTestFeedback(context.Background(), 42, testID)
	if err != nil {
		t.Fatalf("GetTestFeedback returned error: %v", err)
	}
	if len(feedback) != 1 {
		t.Fatalf("got %d rows, want 1", len(feedback))
	}
	if feedback[0].FeedbackText != "too easy" || feedback[0].AttemptID != 5 {
		t.Errorf("unexpected row mapping: %+v", feedback[0])
	}
}
