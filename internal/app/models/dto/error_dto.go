package dto

import "time"

// ErrorCode represents standardized machine-readable error codes.
type ErrorCode string

const (
	// Authentication errors
	ErrorCodeNoToken            ErrorCode = "NO_TOKEN"
	ErrorCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrorCodeTokenNotActive     ErrorCode = "TOKEN_NOT_ACTIVE"
	ErrorCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrorCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrorCodeForbidden ErrorCode = "FORBIDDEN"

	// Request errors
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeConflict         ErrorCode = "CONFLICT"

	// Server errors
	ErrorCodeInternalServer  ErrorCode = "INTERNAL_ERROR"
	ErrorCodeExternalProcess ErrorCode = "EXTERNAL_PROCESS_ERROR"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"INVALID_CREDENTIALS"`
	Message string      `json:"message" example:"Invalid email or password"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
