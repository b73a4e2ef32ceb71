package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/davrbek/quizcore/internal/apperr"
	"github.com/davrbek/quizcore/internal/dto"
	"github.com/davrbek/quizcore/internal/model"
	"github.com/davrbek/quizcore/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminTestService covers test authoring (owner-scoped create / edit /
// delete) and the reporting reads over what scoring and feedback wrote.
type AdminTestService interface {
	CreateTest(ctx context.Context, adminID uint, req dto.TestCreateDTO) (*dto.TestCreatedResponse, error)
	UpdateTest(ctx context.Context, adminID, testID uint, req dto.TestCreateDTO) (*dto.TestCreatedResponse, error)
	DeleteTest(ctx context.Context, adminID, testID uint) error
	GetTestResults(ctx context.Context, adminID, testID uint) ([]dto.TestResultDTO, error)
	GetTestFeedback(ctx context.Context, adminID, testID uint) ([]dto.FeedbackDTO, error)
	GetAllResults(ctx context.Context) ([]dto.TestResultDTO, error)
}

type adminTestService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	feedbackRepo repository.FeedbackRepository
	tx           repository.TxManager
}

func NewAdminTestService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	feedbackRepo repository.FeedbackRepository,
	tx repository.TxManager,
) AdminTestService {
	return &adminTestService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		feedbackRepo: feedbackRepo,
		tx:           tx,
	}
}

// buildQuestionModels validates the authored questions and converts them to
// models. Binding already enforces four options with valid labels; label
// uniqueness within each question is checked here.
func buildQuestionModels(questions []dto.QuestionCreateDTO) ([]model.Question, error) {
	models := make([]model.Question, 0, len(questions))
	for i, qDTO := range questions {
		labels := make(map[string]bool, len(qDTO.Options))
		options := make([]model.Option, 0, len(qDTO.Options))
		for _, oDTO := range qDTO.Options {
			if labels[oDTO.Label] {
				return nil, fmt.Errorf("%w: question %d has a duplicate option label %q", apperr.ErrInvalidTestDefinition, i+1, oDTO.Label)
			}
			labels[oDTO.Label] = true
			options = append(options, model.Option{Label: oDTO.Label, Text: oDTO.Text})
		}

		questionModel := model.Question{
			QuestionText:  qDTO.QuestionText,
			CorrectOption: qDTO.CorrectOption,
			Options:       options,
		}
		if qDTO.Media != nil {
			questionModel.Media = &model.QuestionMedia{MediaType: qDTO.Media.Type, MediaURL: qDTO.Media.URL}
		}
		models = append(models, questionModel)
	}
	return models, nil
}

func (s *adminTestService) CreateTest(ctx context.Context, adminID uint, req dto.TestCreateDTO) (*dto.TestCreatedResponse, error) {
	questions, err := buildQuestionModels(req.Questions)
	if err != nil {
		return nil, err
	}

	test := model.Test{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   adminID,
		Questions:   questions,
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		return s.testRepo.WithTx(tx).Create(ctx, &test)
	})
	if err != nil {
		log.Error().Err(err).Uint("adminID", adminID).Msg("CreateTest: failed to create test")
		return nil, fmt.Errorf("creating test: %w", err)
	}

	log.Info().Uint("testID", test.ID).Uint("adminID", adminID).Int("questionCount", len(test.Questions)).Msg("Test created")
	return &dto.TestCreatedResponse{
		Message:     "Test created successfully",
		TestID:      test.ID,
		QuestionIDs: questionIDs(test.Questions),
	}, nil
}

// UpdateTest replaces the whole question graph: the existing questions,
// options and media are deleted and the submitted set is inserted, all in
// one transaction. Only the owner may edit.
func (s *adminTestService) UpdateTest(ctx context.Context, adminID, testID uint, req dto.TestCreateDTO) (*dto.TestCreatedResponse, error) {
	test, err := s.ownedTest(ctx, adminID, testID)
	if err != nil {
		return nil, err
	}

	questions, err := buildQuestionModels(req.Questions)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].TestID = testID
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		testRepo := s.testRepo.WithTx(tx)
		questionRepo := s.questionRepo.WithTx(tx)

		test.Name = req.Name
		test.Description = req.Description
		if err := testRepo.Update(ctx, test); err != nil {
			return fmt.Errorf("updating test metadata: %w", err)
		}
		if err := questionRepo.DeleteByTestID(ctx, testID); err != nil {
			return fmt.Errorf("removing previous questions: %w", err)
		}
		if err := questionRepo.CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("inserting replacement questions: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("adminID", adminID).Msg("UpdateTest: transaction rolled back")
		return nil, fmt.Errorf("updating test %d: %w", testID, err)
	}

	log.Info().Uint("testID", testID).Uint("adminID", adminID).Int("questionCount", len(questions)).Msg("Test replaced")
	return &dto.TestCreatedResponse{
		Message:     "Test updated successfully",
		TestID:      testID,
		QuestionIDs: questionIDs(questions),
	}, nil
}

func (s *adminTestService) DeleteTest(ctx context.Context, adminID, testID uint) error {
	if _, err := s.ownedTest(ctx, adminID, testID); err != nil {
		return err
	}

	if err := s.testRepo.DeleteCascade(ctx, testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("DeleteTest: failed to delete test")
		return fmt.Errorf("deleting test %d: %w", testID, err)
	}
	log.Info().Uint("testID", testID).Uint("adminID", adminID).Msg("Test deleted")
	return nil
}

func (s *adminTestService) GetTestResults(ctx context.Context, adminID, testID uint) ([]dto.TestResultDTO, error) {
	if _, err := s.ownedTest(ctx, adminID, testID); err != nil {
		return nil, err
	}

	rows, err := s.attemptRepo.ResultsByTest(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestResults: failed to fetch results")
		return nil, fmt.Errorf("fetching results for test %d: %w", testID, err)
	}
	return resultDTOs(rows)
}

func (s *adminTestService) GetAllResults(ctx context.Context) ([]dto.TestResultDTO, error) {
	rows, err := s.attemptRepo.AllResults(ctx)
	if err != nil {
		log.Error().Err(err).Msg("GetAllResults: failed to fetch results")
		return nil, fmt.Errorf("fetching results: %w", err)
	}
	return resultDTOs(rows)
}

func (s *adminTestService) GetTestFeedback(ctx context.Context, adminID, testID uint) ([]dto.FeedbackDTO, error) {
	if _, err := s.ownedTest(ctx, adminID, testID); err != nil {
		return nil, err
	}

	rows, err := s.feedbackRepo.ByTest(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestFeedback: failed to fetch feedback")
		return nil, fmt.Errorf("fetching feedback for test %d: %w", testID, err)
	}

	dtos := make([]dto.FeedbackDTO, len(rows))
	for i, row := range rows {
		if err := copier.Copy(&dtos[i], &row); err != nil {
			return nil, fmt.Errorf("preparing feedback response: %w", err)
		}
	}
	return dtos, nil
}

// ownedTest loads a test and enforces that the acting admin created it.
func (s *adminTestService) ownedTest(ctx context.Context, adminID, testID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrTestNotFound
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to load test for ownership check")
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}
	if test.CreatedBy != adminID {
		return nil, apperr.ErrNotOwner
	}
	return test, nil
}

func questionIDs(questions []model.Question) []uint {
	ids := make([]uint, len(questions))
	for i, question := range questions {
		ids[i] = question.ID
	}
	return ids
}

func resultDTOs(rows []repository.AttemptResultRow) ([]dto.TestResultDTO, error) {
	dtos := make([]dto.TestResultDTO, len(rows))
	for i, row := range rows {
		if err := copier.Copy(&dtos[i], &row); err != nil {
			return nil, fmt.Errorf("preparing results response: %w", err)
		}
	}
	return dtos, nil
}
