package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/davrbek/quizcore/internal/apperr"
)

func TestGradeSingleCorrectAnswer(t *testing.T) {
	key := map[uint]string{10: "B"}

	verdicts, result, err := Grade([]SubmittedAnswer{{QuestionID: 10, SelectedOption: "B"}}, key)
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.Score != 1 || result.TotalQuestions != 1 || result.Percentage != 100 {
		t.Fatalf("result = %+v, want score 1, total 1, percentage 100", result)
	}
	if len(verdicts) != 1 || !verdicts[0].IsCorrect {
		t.Fatalf("verdicts = %+v, want one correct verdict", verdicts)
	}
}

func TestGradeSingleWrongAnswer(t *testing.T) {
	key := map[uint]string{10: "B"}

	verdicts, result, err := Grade([]SubmittedAnswer{{QuestionID: 10, SelectedOption: "A"}}, key)
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.Score != 0 || result.TotalQuestions != 1 || result.Percentage != 0 {
		t.Fatalf("result = %+v, want score 0, total 1, percentage 0", result)
	}
	if verdicts[0].IsCorrect {
		t.Fatalf("wrong answer graded correct: %+v", verdicts[0])
	}
}

func TestGradeHalfCorrect(t *testing.T) {
	key := map[uint]string{1: "A", 2: "C"}
	answers := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: "D"},
	}

	verdicts, result, err := Grade(answers, key)
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.Score != 1 || result.TotalQuestions != 2 {
		t.Fatalf("result = %+v, want score 1 of 2", result)
	}
	if math.Abs(result.Percentage-50) > 1e-9 {
		t.Fatalf("percentage = %v, want 50", result.Percentage)
	}
	if !verdicts[0].IsCorrect || verdicts[1].IsCorrect {
		t.Fatalf("verdicts = %+v, want [correct, incorrect]", verdicts)
	}
}

func TestGradeKeepsInputOrder(t *testing.T) {
	key := map[uint]string{1: "A", 2: "B", 3: "C"}
	answers := []SubmittedAnswer{
		{QuestionID: 3, SelectedOption: "C"},
		{QuestionID: 1, SelectedOption: "B"},
		{QuestionID: 2, SelectedOption: "B"},
	}

	verdicts, _, err := Grade(answers, key)
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	for i, answer := range answers {
		if verdicts[i].QuestionID != answer.QuestionID {
			t.Fatalf("verdict %d is for question %d, want %d", i, verdicts[i].QuestionID, answer.QuestionID)
		}
	}
}

func TestGradeRejectsForeignQuestion(t *testing.T) {
	key := map[uint]string{1: "A"}
	answers := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 99, SelectedOption: "B"}, // not in this test's key
	}

	verdicts, _, err := Grade(answers, key)
	if !errors.Is(err, apperr.ErrQuestionNotInTest) {
		t.Fatalf("err = %v, want ErrQuestionNotInTest", err)
	}
	if verdicts != nil {
		t.Fatalf("expected no partial verdicts, got %+v", verdicts)
	}
}

func TestGradeRejectsEmptySubmission(t *testing.T) {
	if _, _, err := Grade(nil, map[uint]string{1: "A"}); !errors.Is(err, apperr.ErrEmptySubmission) {
		t.Fatalf("err = %v, want ErrEmptySubmission", err)
	}
}
