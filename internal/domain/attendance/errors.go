package attendance

import "errors"

// Attendance domain errors
var (
	ErrLogNotFound = errors.New("attendance log not found")

	// ErrToggleConflict signals that the atomic toggle batch was rejected
	// by the store; the caller may retry, no partial state was written.
	ErrToggleConflict = errors.New("attendance toggle conflicted with a concurrent update")

	// ErrNotLoggedIn rejects shift-status queries for employees who are
	// currently off duty.
	ErrNotLoggedIn = errors.New("employee is not logged in")
)
