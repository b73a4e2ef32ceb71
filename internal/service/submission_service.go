package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/davrbek/quizcore/internal/apperr"
	"github.com/davrbek/quizcore/internal/dto"
	"github.com/davrbek/quizcore/internal/model"
	"github.com/davrbek/quizcore/internal/repository"
	"github.com/davrbek/quizcore/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService coordinates the scoring workflow: it validates a
// submission against the stored answer key, persists the attempt with its
// per-question verdicts inside one transaction, and attaches post-scoring
// feedback.
type SubmissionService interface {
	SubmitTest(ctx context.Context, testID uint, req dto.SubmitTestRequest) (*dto.AttemptResultDTO, error)
	SubmitFeedback(ctx context.Context, testID uint, req dto.SubmitFeedbackRequest) error
}

type submissionService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	feedbackRepo repository.FeedbackRepository
	tx           repository.TxManager
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	feedbackRepo repository.FeedbackRepository,
	tx repository.TxManager,
) SubmissionService {
	return &submissionService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		feedbackRepo: feedbackRepo,
		tx:           tx,
	}
}

// SubmitTest grades one submission. Everything the call writes - the
// provisional attempt, the answer rows, the finalized score - lives in a
// single transaction: a reader either sees the fully scored attempt or
// nothing at all. An answer for a question outside the test aborts the
// whole call.
func (s *submissionService) SubmitTest(ctx context.Context, testID uint, req dto.SubmitTestRequest) (*dto.AttemptResultDTO, error) {
	if len(req.Answers) == 0 {
		return nil, apperr.ErrEmptySubmission
	}

	exists, err := s.testRepo.Exists(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: failed to check test existence")
		return nil, fmt.Errorf("checking test %d: %w", testID, err)
	}
	if !exists {
		return nil, apperr.ErrTestNotFound
	}

	submitted := make([]scoring.SubmittedAnswer, len(req.Answers))
	questionIDs := make([]uint, len(req.Answers))
	for i, answer := range req.Answers {
		submitted[i] = scoring.SubmittedAnswer{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
		}
		questionIDs[i] = answer.QuestionID
	}

	attempt := model.Attempt{
		UserID:         req.UserID,
		TestID:         testID,
		Score:          0,
		TotalQuestions: len(req.Answers),
		Percentage:     0,
	}

	var result scoring.Result
	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		attemptRepo := s.attemptRepo.WithTx(tx)

		if err := attemptRepo.Create(ctx, &attempt); err != nil {
			return fmt.Errorf("creating attempt: %w", err)
		}

		// One query for the whole answer key instead of a lookup per
		// answer. A question from another test is missing from the key and
		// fails grading below.
		key, err := s.questionRepo.WithTx(tx).CorrectOptionsByTest(ctx, testID, questionIDs)
		if err != nil {
			return fmt.Errorf("loading answer key for test %d: %w", testID, err)
		}

		verdicts, graded, err := scoring.Grade(submitted, key)
		if err != nil {
			return err
		}

		answers := make([]model.AttemptAnswer, len(verdicts))
		for i, verdict := range verdicts {
			answers[i] = model.AttemptAnswer{
				AttemptID:      attempt.ID,
				QuestionID:     verdict.QuestionID,
				SelectedOption: verdict.SelectedOption,
				IsCorrect:      verdict.IsCorrect,
			}
		}
		if err := attemptRepo.CreateAnswers(ctx, answers); err != nil {
			return fmt.Errorf("recording attempt answers: %w", err)
		}

		if err := attemptRepo.Finalize(ctx, attempt.ID, graded.Score, graded.Percentage); err != nil {
			return fmt.Errorf("finalizing attempt %d: %w", attempt.ID, err)
		}

		result = graded
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrQuestionNotInTest) {
			log.Warn().Uint("testID", testID).Uint("userID", req.UserID).Msg("SubmitTest: answer for a question outside this test, submission rejected")
			return nil, apperr.ErrQuestionNotInTest
		}
		log.Error().Err(err).Uint("testID", testID).Uint("userID", req.UserID).Msg("SubmitTest: transaction rolled back")
		return nil, fmt.Errorf("submitting test %d: %w", testID, err)
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("testID", testID).
		Uint("userID", req.UserID).
		Int("score", result.Score).
		Int("totalQuestions", result.TotalQuestions).
		Msg("Test submission scored")

	return &dto.AttemptResultDTO{
		AttemptID:      attempt.ID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
	}, nil
}

// SubmitFeedback attaches a note to an attempt after verifying the attempt
// belongs to the addressed test. Independent of the scoring transaction.
func (s *submissionService) SubmitFeedback(ctx context.Context, testID uint, req dto.SubmitFeedbackRequest) error {
	ok, err := s.attemptRepo.ExistsForTest(ctx, req.AttemptID, testID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", req.AttemptID).Uint("testID", testID).Msg("SubmitFeedback: failed to check attempt")
		return fmt.Errorf("checking attempt %d: %w", req.AttemptID, err)
	}
	if !ok {
		return apperr.ErrAttemptTestMismatch
	}

	feedback := model.Feedback{
		AttemptID:    req.AttemptID,
		FeedbackText: req.FeedbackText,
	}
	if err := s.feedbackRepo.Create(ctx, &feedback); err != nil {
		log.Error().Err(err).Uint("attemptID", req.AttemptID).Msg("SubmitFeedback: failed to save feedback")
		return fmt.Errorf("saving feedback: %w", err)
	}
	return nil
}
