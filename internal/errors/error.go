package errors

import "github.com/pkg/errors"

var (
	// request errors
	ErrInvalidID             = errors.New("invalid application id")
	ErrInvalidDays           = errors.New("days must be a positive number")
	ErrInvalidDateRange      = errors.New("from must not be after to")
	ErrSearchCriteriaMissing = errors.New("company or position is required")

	// domain errors
	ErrApplicationNotFound = errors.New("job application not found")
)
