package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hndoan/Lorises/internal/controller"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/middleware"
	"github.com/hndoan/Lorises/internal/service"
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

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func callerID(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	}
	return userID, ok
}

// GetAllTemplates godoc
// @Summary (User) List all available test templates
// @Tags User - Tests
// @Produce json
// @Success 200 {array} dto.TemplateSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates [get]
func (c *UserTestController) GetAllTemplates(ctx *gin.Context) {
	templates, err := c.userTestService.GetAllTemplates()
	if err != nil {
		log.Error().Err(err).Msg("User GetAllTemplates: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, templates)
}

// GetTemplateDetails godoc
// @Summary (User) Get details of a specific template
// @Description Full template details with questions; correct answers are never included.
// @Tags User - Tests
// @Produce json
// @Param template_id path int true "Template ID"
// @Success 200 {object} dto.TemplateResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /templates/{template_id} [get]
func (c *UserTestController) GetTemplateDetails(ctx *gin.Context) {
	templateID, ok := parseIDParam(ctx, "template_id")
	if !ok {
		return
	}
	resp, err := c.userTestService.GetTemplateDetails(templateID)
	if err != nil {
		log.Warn().Err(err).Uint("templateID", templateID).Msg("User GetTemplateDetails: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartTest godoc
// @Summary (User) Start a new attempt at a template
// @Tags User - Tests
// @Produce json
// @Param template_id path int true "Template ID"
// @Success 201 {object} dto.InstanceDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /templates/{template_id}/instances [post]
func (c *UserTestController) StartTest(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(ctx, "template_id")
	if !ok {
		return
	}
	resp, err := c.userTestService.StartTest(userID, templateID)
	if err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("User StartTest: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAnswers godoc
// @Summary (User) Submit all answers for a test instance
// @Description Persists the answers, auto-grades objective questions, and moves the instance under review. Submitting twice is rejected.
// @Tags User - Tests
// @Accept json
// @Produce json
// @Param instance_id path int true "Test instance ID"
// @Param submission body dto.SubmissionRequestDTO true "Answers keyed by question id"
// @Success 200 {object} dto.InstanceDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or unknown question id"
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Failure 409 {object} dto.ErrorResponse "Instance already submitted"
// @Router /instances/{instance_id}/submit [post]
func (c *UserTestController) SubmitAnswers(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	instanceID, ok := parseIDParam(ctx, "instance_id")
	if !ok {
		return
	}

	var req dto.SubmissionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitAnswers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.SubmitAnswers(userID, instanceID, req)
	if err != nil {
		log.Warn().Err(err).Uint("instanceID", instanceID).Msg("User SubmitAnswers: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetMyInstances godoc
// @Summary (User) List the caller's test instances
// @Tags User - Tests
// @Produce json
// @Success 200 {array} dto.InstanceSummaryDTO
// @Router /instances [get]
func (c *UserTestController) GetMyInstances(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	resp, err := c.userTestService.GetMyInstances(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("User GetMyInstances: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetInstanceDetails godoc
// @Summary (User) Get one of the caller's test instances
// @Description Grades and final scores appear only once the instance is reviewed.
// @Tags User - Tests
// @Produce json
// @Param instance_id path int true "Test instance ID"
// @Success 200 {object} dto.InstanceDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Router /instances/{instance_id} [get]
func (c *UserTestController) GetInstanceDetails(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	instanceID, ok := parseIDParam(ctx, "instance_id")
	if !ok {
		return
	}
	resp, err := c.userTestService.GetInstanceDetails(userID, instanceID)
	if err != nil {
		log.Warn().Err(err).Uint("instanceID", instanceID).Msg("User GetInstanceDetails: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CancelInstance godoc
// @Summary (User) Cancel a non-terminal test instance
// @Tags User - Tests
// @Param instance_id path int true "Test instance ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Instance already reviewed or cancelled"
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Router /instances/{instance_id}/cancel [post]
func (c *UserTestController) CancelInstance(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	instanceID, ok := parseIDParam(ctx, "instance_id")
	if !ok {
		return
	}
	if err := c.userTestService.CancelTest(userID, instanceID); err != nil {
		log.Warn().Err(err).Uint("instanceID", instanceID).Msg("User CancelInstance: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
