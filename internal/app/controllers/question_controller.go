package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/services"
	"github.com/placenet/portal/internal/middleware"
)

// QuestionController handles the Q&A endpoints
type QuestionController struct {
	questionService *services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService *services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// Create posts a new question (student only).
func (c *QuestionController) Create(ctx *gin.Context) {
	userID, _, _ := middleware.Identity(ctx)

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Question content is required")))
		return
	}

	question, err := c.questionService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "question": question})
}

// List returns questions, optionally filtered by company.
func (c *QuestionController) List(ctx *gin.Context) {
	var companyID *int64
	if raw := ctx.Query("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid company_id parameter")))
			return
		}
		companyID = &id
	}

	questions, err := c.questionService.List(ctx.Request.Context(), companyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}

// Update edits a question's content (owner or admin).
func (c *QuestionController) Update(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	userID, role, _ := middleware.Identity(ctx)

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Question content is required")))
		return
	}

	question, err := c.questionService.Update(ctx.Request.Context(), questionID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}

// Delete removes a question (owner or admin).
func (c *QuestionController) Delete(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	userID, role, _ := middleware.Identity(ctx)

	if err := c.questionService.Delete(ctx.Request.Context(), questionID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Question deleted successfully"))
}

// ListAnswers returns a question's answers, oldest first.
func (c *QuestionController) ListAnswers(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	answers, err := c.questionService.ListAnswers(ctx.Request.Context(), questionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "answers": answers})
}

// CreateAnswer posts an answer to a question (alumni only).
func (c *QuestionController) CreateAnswer(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	userID, _, _ := middleware.Identity(ctx)

	var req dto.CreateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Answer content is required")))
		return
	}

	answer, err := c.questionService.CreateAnswer(ctx.Request.Context(), questionID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "answer": answer})
}
