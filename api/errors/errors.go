package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/followjobs/followjobs/internal/utils"
)

const (
	ValidationErrorTitle = "Validation Error"
	ValidationMessage    = "Invalid data provided"
	InternalErrorMessage = "An internal error occurred. Please try again later."
)

// ErrorResponse is the body of every non 2xx JSON response.
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// FieldErrors collects one message per request field.
type FieldErrors struct {
	Errors map[string]string
}

func NewFieldErrors() *FieldErrors {
	return &FieldErrors{
		Errors: make(map[string]string),
	}
}

// Add keeps the first message reported for a field.
func (e *FieldErrors) Add(field, message string) {
	if _, exists := e.Errors[field]; exists {
		return
	}
	e.Errors[field] = message
}

func (e *FieldErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *FieldErrors) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return strings.Join(parts, " | ")
}

func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: utils.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
}

func RespondValidation(c *gin.Context, fieldErrors *FieldErrors) {
	response := NewErrorResponse(http.StatusBadRequest, ValidationMessage)
	response.Error = ValidationErrorTitle
	response.Errors = fieldErrors.Errors
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func RespondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, message))
}

func RespondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(http.StatusUnauthorized, message))
}

func RespondNotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, NewErrorResponse(http.StatusNotFound, message))
}

func RespondConflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, NewErrorResponse(http.StatusConflict, message))
}

// RespondInternalError never exposes the underlying error to the caller.
func RespondInternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, InternalErrorMessage))
}
