package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hndoan/Lorises/internal/controller"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTemplateController struct {
	adminTemplateService service.AdminTemplateService
}

func NewAdminTemplateController(adminTemplateService service.AdminTemplateService) *AdminTemplateController {
	return &AdminTemplateController{adminTemplateService: adminTemplateService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// CreateTemplate godoc
// @Summary (Admin) Create a new test template
// @Description Admin creates a template with its full question set.
// @Tags Admin - Templates
// @Accept json
// @Produce json
// @Param template_data body dto.TemplateCreateDTO true "Template creation data including questions"
// @Success 201 {object} dto.TemplateResponseDTO "Template created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/templates [post]
func (c *AdminTemplateController) CreateTemplate(ctx *gin.Context) {
	var req dto.TemplateCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTemplate: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTemplateService.CreateTemplate(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin CreateTemplate: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateTemplate godoc
// @Summary (Admin) Update template metadata
// @Tags Admin - Templates
// @Accept json
// @Produce json
// @Param template_id path int true "Template ID"
// @Param template_data body dto.TemplateUpdateDTO true "Metadata to update"
// @Success 200 {object} dto.TemplateResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /admin/templates/{template_id} [put]
func (c *AdminTemplateController) UpdateTemplate(ctx *gin.Context) {
	templateID, ok := parseIDParam(ctx, "template_id")
	if !ok {
		return
	}
	var req dto.TemplateUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTemplateService.UpdateTemplate(templateID, req)
	if err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("Admin UpdateTemplate: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTemplate godoc
// @Summary (Admin) Delete a template and its questions
// @Tags Admin - Templates
// @Param template_id path int true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /admin/templates/{template_id} [delete]
func (c *AdminTemplateController) DeleteTemplate(ctx *gin.Context) {
	templateID, ok := parseIDParam(ctx, "template_id")
	if !ok {
		return
	}
	if err := c.adminTemplateService.DeleteTemplate(templateID); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("Admin DeleteTemplate: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to an existing template
// @Tags Admin - Templates
// @Accept json
// @Produce json
// @Param template_id path int true "Template ID"
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate order"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /admin/templates/{template_id}/questions [post]
func (c *AdminTemplateController) AddQuestion(ctx *gin.Context) {
	templateID, ok := parseIDParam(ctx, "template_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin AddQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTemplateService.AddQuestion(templateID, req)
	if err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("Admin AddQuestion: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
