package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/davrbek/quizcore/internal/apperr"
	"github.com/davrbek/quizcore/internal/dto"
	"github.com/davrbek/quizcore/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService   service.UserTestService
	submissionService service.SubmissionService
}

func NewUserTestController(uts service.UserTestService, ss service.SubmissionService) *UserTestController {
	return &UserTestController{
		userTestService:   uts,
		submissionService: ss,
	}
}

// StartTest godoc
// @Summary Start a randomly assigned test
// @Description Registers the taker by email if unknown, picks one test at random and returns its questions. The correct options are never included.
// @Tags Taker
// @Accept json
// @Produce json
// @Param request body dto.StartTestRequest true "Taker identity"
// @Success 200 {object} dto.StartTestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "No tests available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /start-test [post]
func (c *UserTestController) StartTest(ctx *gin.Context) {
	var req dto.StartTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.userTestService.StartTest(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperr.ErrNoTestsAvailable) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: apperr.ErrNoTestsAvailable.Error()})
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("StartTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to start test"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitTest godoc
// @Summary Submit answers for a test
// @Description Grades the submitted answers against the test's answer key and persists the attempt atomically. Resubmission creates a new attempt.
// @Tags Taker
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param request body dto.SubmitTestRequest true "Submitted answers"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid body, empty submission, or an answer outside this test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{id}/submit [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	testID, ok := pathTestID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitTest(ctx.Request.Context(), testID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: apperr.ErrTestNotFound.Error()})
		case errors.Is(err, apperr.ErrQuestionNotInTest):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: apperr.ErrQuestionNotInTest.Error()})
		case errors.Is(err, apperr.ErrEmptySubmission):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: apperr.ErrEmptySubmission.Error()})
		default:
			log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit test"})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SubmitFeedback godoc
// @Summary Leave feedback on a scored attempt
// @Description Attaches a free-text note to an attempt of the addressed test.
// @Tags Taker
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param request body dto.SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body or attempt does not belong to this test"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{id}/feedback [post]
func (c *UserTestController) SubmitFeedback(ctx *gin.Context) {
	testID, ok := pathTestID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.submissionService.SubmitFeedback(ctx.Request.Context(), testID, req); err != nil {
		if errors.Is(err, apperr.ErrAttemptTestMismatch) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: apperr.ErrAttemptTestMismatch.Error()})
			return
		}
		log.Error().Err(err).Uint("testID", testID).Uint("attemptID", req.AttemptID).Msg("SubmitFeedback: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit feedback"})
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Feedback submitted successfully"})
}

func pathTestID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID format"})
		return 0, false
	}
	return uint(val), true
}
