package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/services"
	"github.com/placenet/portal/internal/middleware"
)

// ReviewController handles review endpoints
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// SubmitComplete accepts a full review with its rounds and persists them
// atomically (alumni only).
func (c *ReviewController) SubmitComplete(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _, _ := middleware.Identity(ctx)

	var req dto.CompleteReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	resp, err := c.reviewService.SubmitComplete(ctx.Request.Context(), companyID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review":  resp.Review,
		"rounds":  resp.Rounds,
	})
}

// ListByCompany returns a company's reviews, newest first.
func (c *ReviewController) ListByCompany(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reviews, err := c.reviewService.ListByCompany(ctx.Request.Context(), companyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// ListRounds returns a review's rounds in insertion order.
func (c *ReviewController) ListRounds(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rounds, err := c.reviewService.ListRounds(ctx.Request.Context(), reviewID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "rounds": rounds})
}

// AddRound appends one round to the caller's own review (alumni only).
func (c *ReviewController) AddRound(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _, _ := middleware.Identity(ctx)

	var req dto.AddRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	round, err := c.reviewService.AddRound(ctx.Request.Context(), reviewID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RoundResponse{Success: true, Round: round})
}
