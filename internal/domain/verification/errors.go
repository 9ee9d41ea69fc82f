package verification

import "errors"

// Verification outcome taxonomy. ErrNoMatch is a valid outcome, not a
// fault; the resolution flow recovers by offering the next method.
var (
	ErrNoMatch        = errors.New("no employee matched the presented evidence")
	ErrAmbiguousMatch = errors.New("evidence matched more than one employee")

	// Platform authenticator failure modes.
	ErrUserCancelled     = errors.New("authentication was cancelled or timed out")
	ErrNoEnrollment      = errors.New("no platform credentials are enrolled")
	ErrDeviceUnavailable = errors.New("platform authenticator is unavailable")

	// ErrCredentialBound maps the authenticator's InvalidState: the
	// device is already bound to a different identity.
	ErrCredentialBound = errors.New("authenticator already holds a credential for a different identity")
)
