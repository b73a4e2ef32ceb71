// Package scoring grades a submitted answer set against an answer key. It
// is pure: no store access, no side effects, so the submission transaction
// can call it with whatever key snapshot it loaded.
package scoring

import "github.com/davrbek/quizcore/internal/apperr"

// SubmittedAnswer is one answer of a submission, in the order the taker
// sent it.
type SubmittedAnswer struct {
	QuestionID     uint
	SelectedOption string
}

// Verdict is the correctness decision for a single submitted answer.
type Verdict struct {
	QuestionID     uint
	SelectedOption string
	IsCorrect      bool
}

// Result aggregates a fully graded submission. TotalQuestions is the number
// of submitted answers, not the test's question count: a skipped question
// is simply absent from the attempt.
type Result struct {
	Score          int
	TotalQuestions int
	Percentage     float64
}

// Grade checks every answer against the key and returns one verdict per
// answer, in input order. The key must map every submitted question id to
// its correct option label; a miss means the question does not belong to
// the test being submitted and the whole submission is rejected with no
// partial verdicts. An empty submission is rejected outright so the
// percentage stays well defined.
func Grade(answers []SubmittedAnswer, key map[uint]string) ([]Verdict, Result, error) {
	if len(answers) == 0 {
		return nil, Result{}, apperr.ErrEmptySubmission
	}

	verdicts := make([]Verdict, 0, len(answers))
	score := 0
	for _, answer := range answers {
		correct, ok := key[answer.QuestionID]
		if !ok {
			return nil, Result{}, apperr.ErrQuestionNotInTest
		}
		verdict := Verdict{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			IsCorrect:      answer.SelectedOption == correct,
		}
		if verdict.IsCorrect {
			score++
		}
		verdicts = append(verdicts, verdict)
	}

	result := Result{
		Score:          score,
		TotalQuestions: len(answers),
	}
	result.Percentage = float64(result.Score) / float64(result.TotalQuestions) * 100

	return verdicts, result, nil
}
