package errors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/followjobs/followjobs/internal/enum"
)

var fieldLabels = map[string]string{
	"company":         "Company name",
	"position":        "Position",
	"employmentType":  "Employment type",
	"portal":          "Portal",
	"status":          "Status",
	"jobUrl":          "URL",
	"gmailMessageId":  "Gmail message id",
	"applicationDate": "Application date",
}

// FieldErrorsFrom converts validator failures into per field messages.
// It returns nil for errors that did not come from struct validation.
func FieldErrorsFrom(err error) *FieldErrors {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := NewFieldErrors()
	for _, fieldError := range validationErrors {
		fieldErrors.Add(fieldError.Field(), fieldMessage(fieldError))
	}
	return fieldErrors
}

func fieldMessage(fieldError validator.FieldError) string {
	label, ok := fieldLabels[fieldError.Field()]
	if !ok {
		label = fieldError.Field()
	}

	switch fieldError.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fieldError.Param())
	case "applicationstatus":
		statuses := make([]string, 0, len(enum.ApplicationStatuses()))
		for _, status := range enum.ApplicationStatuses() {
			statuses = append(statuses, status.String())
		}
		return fmt.Sprintf("%s must be one of %s", label, strings.Join(statuses, ", "))
	}
	return label + " is invalid"
}
