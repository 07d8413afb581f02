package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the body of failed responses
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidOrder  = "INVALID_ORDER"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// AppError is the application-level error carried from services up to handlers
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates an error with an explicit code
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

func NewValidationError(message, details string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Details: details}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message}
}

func NewInvalidOrderError(details string) *AppError {
	return &AppError{Code: ErrCodeInvalidOrder, Message: "order payload does not match existing items", Details: details}
}

func NewInternalError(message string) *AppError {
	return &AppError{Code: ErrCodeInternalError, Message: message}
}

// ErrorResponse is the JSON envelope for failures
type ErrorResponse struct {
	Error AppError `json:"error"`
}

// SuccessResponse wraps successful payloads that need a message
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SendError writes an error envelope with the given HTTP status
func SendError(c *gin.Context, status int, appErr *AppError) {
	c.JSON(status, ErrorResponse{Error: *appErr})
}

// SendSuccess writes a success envelope
func SendSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Message: message, Data: data})
}

// StatusForCode maps an application error code to an HTTP status
func StatusForCode(code string) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeInvalidOrder:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
