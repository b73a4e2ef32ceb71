package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/davrbek/quizcore/internal/apperr"
	"github.com/davrbek/quizcore/internal/dto"
	"github.com/davrbek/quizcore/internal/middleware"
	"github.com/davrbek/quizcore/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(ats service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: ats}
}

// CreateTest godoc
// @Summary (Admin) Create a test
// @Description Creates a test with its full question graph. Each question needs exactly four options with distinct labels.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid test definition"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTestService.CreateTest(ctx.Request.Context(), identity.UserID, req)
	if err != nil {
		c.writeServiceError(ctx, err, "CreateTest")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateTest godoc
// @Summary (Admin) Replace a test's question graph
// @Description Updates test metadata and replaces all of its questions, options and media with the submitted set. Owner only.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Param request body dto.TestCreateDTO true "Replacement test definition"
// @Success 200 {object} dto.TestCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid test definition"
// @Failure 403 {object} dto.ErrorResponse "Not the owner of this test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{id} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	testID, ok := pathTestID(ctx)
	if !ok {
		return
	}

	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTestService.UpdateTest(ctx.Request.Context(), identity.UserID, testID, req)
	if err != nil {
		c.writeServiceError(ctx, err, "UpdateTest")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test
// @Description Deletes a test and everything hanging off it: questions, options, media, attempts, answers and feedback. Owner only.
// @Tags Admin - Tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner of this test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	testID, ok := pathTestID(ctx)
	if !ok {
		return
	}

	if err := c.adminTestService.DeleteTest(ctx.Request.Context(), identity.UserID, testID); err != nil {
		c.writeServiceError(ctx, err, "DeleteTest")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Test deleted successfully"})
}

// GetTestResults godoc
// @Summary (Admin) List attempt results for one test
// @Description Returns every scored attempt of the test with the attempting user. Owner only.
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {array} dto.TestResultDTO
// @Failure 403 {object} dto.ErrorResponse "Not the owner of this test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{id}/results [get]
func (c *AdminTestController) GetTestResults(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	testID, ok := pathTestID(ctx)
	if !ok {
		return
	}

	results, err := c.adminTestService.GetTestResults(ctx.Request.Context(), identity.UserID, testID)
	if err != nil {
		c.writeServiceError(ctx, err, "GetTestResults")
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetTestFeedback godoc
// @Summary (Admin) List feedback for one test
// @Description Returns all feedback notes left on the test's attempts. Owner only.
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {array} dto.FeedbackDTO
// @Failure 403 {object} dto.ErrorResponse "Not the owner of this test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{id}/feedback [get]
func (c *AdminTestController) GetTestFeedback(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	testID, ok := pathTestID(ctx)
	if !ok {
		return
	}

	feedback, err := c.adminTestService.GetTestFeedback(ctx.Request.Context(), identity.UserID, testID)
	if err != nil {
		c.writeServiceError(ctx, err, "GetTestFeedback")
		return
	}
	ctx.JSON(http.StatusOK, feedback)
}

// GetAllResults godoc
// @Summary (Admin) List attempt results across all tests
// @Description Returns every scored attempt with the attempting user and test name.
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestResultDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/results [get]
func (c *AdminTestController) GetAllResults(ctx *gin.Context) {
	results, err := c.adminTestService.GetAllResults(ctx.Request.Context())
	if err != nil {
		c.writeServiceError(ctx, err, "GetAllResults")
		return
	}
	ctx.JSON(http.StatusOK, results)
}

func (c *AdminTestController) writeServiceError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, apperr.ErrTestNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: apperr.ErrTestNotFound.Error()})
	case errors.Is(err, apperr.ErrInvalidTestDefinition):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: apperr.ErrNotOwner.Error()})
	default:
		log.Error().Err(err).Str("op", op).Msg("Admin test controller: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Request failed"})
	}
}

func requireIdentity(ctx *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		// Authenticate should have aborted already; guard anyway.
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing authentication"})
		return middleware.Identity{}, false
	}
	return identity, true
}

func pathTestID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID format"})
		return 0, false
	}
	return uint(val), true
}
