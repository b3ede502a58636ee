package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/daytime"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Timekeeping domain errors
	case errors.Is(err, timekeeping.ErrSummaryNotFound):
		NotFound(w, "Day summary not found")
	case errors.Is(err, timekeeping.ErrCutoffSummaryNotFound):
		NotFound(w, "Cutoff summary not found")
	case errors.Is(err, timekeeping.ErrEmployeeIDRequired):
		BadRequest(w, "Employee ID is required", nil)
	case errors.Is(err, timekeeping.ErrInvalidDateFormat):
		BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, timekeeping.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, daytime.ErrInvalidTimeValue):
		BadRequest(w, "Time values must be in HH:MM format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
