package reviewer

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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// ListPending godoc
// @Summary (Reviewer) List instances waiting for review
// @Tags Reviewer
// @Produce json
// @Success 200 {array} dto.InstanceSummaryDTO
// @Failure 403 {object} dto.ErrorResponse "Reviewer access required"
// @Router /review/pending [get]
func (c *ReviewController) ListPending(ctx *gin.Context) {
	resp, err := c.reviewService.ListPendingInstances()
	if err != nil {
		log.Error().Err(err).Msg("Reviewer ListPending: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetReviewBundle godoc
// @Summary (Reviewer) Get everything needed to grade one instance
// @Description Returns the template, questions, and the learner's answers.
// @Tags Reviewer
// @Produce json
// @Param instance_id path int true "Test instance ID"
// @Success 200 {object} dto.ReviewBundleDTO
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Router /review/{instance_id} [get]
func (c *ReviewController) GetReviewBundle(ctx *gin.Context) {
	instanceID, ok := parseIDParam(ctx, "instance_id")
	if !ok {
		return
	}
	resp, err := c.reviewService.GetReviewBundle(instanceID)
	if err != nil {
		log.Warn().Err(err).Uint("instanceID", instanceID).Msg("Reviewer GetReviewBundle: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitReview godoc
// @Summary (Reviewer) Score the manual questions of an instance
// @Description Upserts the reviewer's scores, aggregates them with the auto-scores, and finalizes the instance.
// @Tags Reviewer
// @Accept json
// @Produce json
// @Param instance_id path int true "Test instance ID"
// @Param review body dto.ReviewRequestDTO true "Per-question scores and feedback"
// @Success 200 {object} dto.ReviewResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid scores or instance not under review"
// @Failure 404 {object} dto.ErrorResponse "Instance not found"
// @Router /review/{instance_id} [post]
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	reviewerID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	instanceID, ok := parseIDParam(ctx, "instance_id")
	if !ok {
		return
	}

	var req dto.ReviewRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Reviewer SubmitReview: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.reviewService.SubmitReview(reviewerID, instanceID, req)
	if err != nil {
		log.Warn().Err(err).Uint("instanceID", instanceID).Msg("Reviewer SubmitReview: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
