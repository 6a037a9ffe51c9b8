package dto

// CreateQuestionRequest is the student question payload.
type CreateQuestionRequest struct {
	Content   string `json:"content" binding:"required"`
	CompanyID *int64 `json:"company_id"`
}

// UpdateQuestionRequest edits a question's content.
type UpdateQuestionRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateAnswerRequest is the alumni answer payload.
type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}
