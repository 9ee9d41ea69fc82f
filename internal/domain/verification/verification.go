package verification

import (
	"context"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
)

// Method is a way an employee can identify themselves at the terminal.
type Method string

const (
	MethodFace       Method = "face"
	MethodCredential Method = "credential"
	MethodPin        Method = "pin"
)

// Purpose is why the terminal is asking for identity. Attendance
// dispatches to the duty-status toggle; leave self-service only
// resolves the employee.
type Purpose string

const (
	PurposeAttendance       Purpose = "attendance"
	PurposeLeaveSelfService Purpose = "leave-self-service"
)

func ValidPurpose(p string) bool {
	switch Purpose(p) {
	case PurposeAttendance, PurposeLeaveSelfService:
		return true
	}
	return false
}

// Match is a successful verification. Confidence is only meaningful for
// the face method, where it is (1 - distance) * 100.
type Match struct {
	Employee   employee.Employee
	Method     Method
	Confidence float64
}

// Authenticator is the platform credential collaborator: device-bound
// public-key hardware that can create credentials and produce
// assertions. Calls may block on user action until ctx is cancelled.
type Authenticator interface {
	// Enroll asks the device to create a credential bound to the subject.
	// Returns the hex-encoded credential id and public key.
	Enroll(ctx context.Context, challenge []byte, subjectID, subjectName string) (credentialID, publicKey string, err error)

	// Assert asks the device for an assertion restricted to the given
	// allow-list of hex-encoded credential ids. Returns the id of the
	// credential that signed.
	Assert(ctx context.Context, challenge []byte, allowedCredentialIDs []string) (credentialID string, err error)

	// Supported reports whether a user-verifying platform authenticator
	// is attached. Gates the server-side assertion path; terminals that
	// run the ceremony themselves never hit it.
	Supported(ctx context.Context) bool
}
