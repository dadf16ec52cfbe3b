package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/auth"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/dashboard"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrMissingToken):
		Unauthorized(w, "Authorization token required")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, user.ErrUserIDRequired):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Clock
	case errors.Is(err, clock.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, clock.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, clock.ErrClockNotFound):
		NotFound(w, "Clock record not found")

	// Planning
	case errors.Is(err, planning.ErrPlanningNotFound):
		NotFound(w, "Planning not found")
	case errors.Is(err, planning.ErrPlanningConflict):
		Conflict(w, "An absence is already planned for this period")
	case errors.Is(err, planning.ErrPlanningAlreadyReviewed):
		Conflict(w, "Planning already reviewed")
	case errors.Is(err, planning.ErrPlanningNotOwned):
		Forbidden(w, "Planning belongs to another user")

	// Dashboard
	case errors.Is(err, dashboard.ErrInvalidWeek):
		BadRequest(w, err.Error(), map[string]string{"week": err.Error()})

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
