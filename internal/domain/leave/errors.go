package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound    = errors.New("leave record not found")
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrAlreadyProcessed = errors.New("leave request has already been approved or denied")
	ErrNotDeleted       = errors.New("leave record is not in the recycle bin")
	ErrMissingOriginal  = errors.New("extension request does not reference an original leave")
)
