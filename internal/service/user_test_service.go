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

// UserTestService assigns tests to takers.
type UserTestService interface {
	StartTest(ctx context.Context, req dto.StartTestRequest) (*dto.StartTestResponse, error)
}

type userTestService struct {
	userRepo     repository.UserRepository
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewUserTestService(
	userRepo repository.UserRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
) UserTestService {
	return &userTestService{
		userRepo:     userRepo,
		testRepo:     testRepo,
		questionRepo: questionRepo,
	}
}

// StartTest upserts the taker by email, picks one test uniformly at random
// and materializes its questions with options and media. The answer key is
// never part of the response.
func (s *userTestService) StartTest(ctx context.Context, req dto.StartTestRequest) (*dto.StartTestResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{FullName: req.FullName, Email: req.Email, Role: "user"}
		if err := s.userRepo.Create(ctx, user); err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("StartTest: failed to create user")
			return nil, fmt.Errorf("creating user: %w", err)
		}
		log.Info().Uint("userID", user.ID).Str("email", user.Email).Msg("New taker registered")
	} else if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("StartTest: failed to look up user")
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	test, err := s.testRepo.FindRandom(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNoTestsAvailable
	}
	if err != nil {
		log.Error().Err(err).Msg("StartTest: failed to pick a random test")
		return nil, fmt.Errorf("picking a test: %w", err)
	}

	questions, err := s.questionRepo.FindByTestID(ctx, test.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("StartTest: failed to load questions")
		return nil, fmt.Errorf("loading questions for test %d: %w", test.ID, err)
	}

	resp := dto.StartTestResponse{
		TestID:    test.ID,
		Questions: make([]dto.QuestionForTakerDTO, len(questions)),
	}
	if err := copier.Copy(&resp.User, user); err != nil {
		log.Error().Err(err).Msg("StartTest: failed to copy user to DTO")
		return nil, fmt.Errorf("preparing response: %w", err)
	}

	for i, question := range questions {
		qDTO := dto.QuestionForTakerDTO{
			QuestionID:   question.ID,
			QuestionText: question.QuestionText,
			Options:      make([]dto.OptionDTO, len(question.Options)),
		}
		for j, option := range question.Options {
			qDTO.Options[j] = dto.OptionDTO{ID: option.ID, Label: option.Label, Text: option.Text}
		}
		if question.Media != nil {
			qDTO.Media = &dto.MediaDTO{MediaType: question.Media.MediaType, MediaURL: question.Media.MediaURL}
		}
		resp.Questions[i] = qDTO
	}

	log.Info().Uint("userID", user.ID).Uint("testID", test.ID).Int("questionCount", len(questions)).Msg("Test assigned")
	return &resp, nil
}
