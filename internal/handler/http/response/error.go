package response

import (
	"errors"
	"net/http"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/auth"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/holiday"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/leave"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, employee.ErrNotAManager):
		BadRequest(w, "Referenced employee does not hold the manager role", nil)
	case errors.Is(err, employee.ErrAdminRequired):
		Forbidden(w, "Admin privileges required")
	case errors.Is(err, employee.ErrApprovalRoleNeeded):
		Forbidden(w, "Approval privileges required")
	case errors.Is(err, employee.ErrOutsideManagedSet):
		Forbidden(w, "Employee is outside your managed set")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOpenSessionExists):
		Conflict(w, "An open session already exists for today")
	case errors.Is(err, attendance.ErrNoOpenSession):
		NotFound(w, "No open session found for today")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, attendance.ErrSessionAlreadyDecided):
		Conflict(w, "Session already approved or rejected")
	case errors.Is(err, attendance.ErrInvalidDecision):
		BadRequest(w, "Decision must be approved or rejected", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrRequestAlreadyDecided):
		Conflict(w, "Leave request already approved or rejected")
	case errors.Is(err, leave.ErrInvalidDecision):
		BadRequest(w, "Decision must be approved or rejected", nil)
	case errors.Is(err, leave.ErrInvalidCategory):
		BadRequest(w, "Unknown leave category", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on that date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
