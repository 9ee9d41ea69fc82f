package response

import (
	"errors"
	"net/http"

	"github.com/sabigold/presence-backend-go/internal/domain/attendance"
	"github.com/sabigold/presence-backend-go/internal/domain/auth"
	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/domain/notification"
	"github.com/sabigold/presence-backend-go/internal/domain/verification"
	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
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
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee id already exists")
	case errors.Is(err, employee.ErrPinTaken):
		Conflict(w, "Pin is already in use")
	case errors.Is(err, employee.ErrPinIncorrect):
		BadRequest(w, "Current pin is incorrect", nil)
	case errors.Is(err, employee.ErrCredentialTaken):
		Conflict(w, "Credential is already bound to another employee")
	case errors.Is(err, employee.ErrNoPendingChallenge):
		BadRequest(w, "No enrollment in progress", nil)

	// Verification outcomes
	case errors.Is(err, verification.ErrNoMatch):
		NotFound(w, "No matching employee")
	case errors.Is(err, verification.ErrAmbiguousMatch):
		Conflict(w, "More than one employee matched")
	case errors.Is(err, verification.ErrUserCancelled):
		BadRequest(w, "Authentication was cancelled", nil)
	case errors.Is(err, verification.ErrNoEnrollment):
		NotFound(w, "No credentials are enrolled")
	case errors.Is(err, verification.ErrDeviceUnavailable):
		BadRequest(w, "Authenticator is unavailable", nil)
	case errors.Is(err, verification.ErrCredentialBound):
		Conflict(w, "Authenticator already holds a credential for a different identity")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance log not found")
	case errors.Is(err, attendance.ErrNotLoggedIn):
		BadRequest(w, "Employee is not logged in", nil)
	case errors.Is(err, attendance.ErrToggleConflict):
		Conflict(w, "Attendance update conflicted, try again")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotDeleted):
		BadRequest(w, "Leave record is not in the recycle bin", nil)
	case errors.Is(err, leave.ErrMissingOriginal):
		BadRequest(w, "Extension does not reference an existing leave", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
