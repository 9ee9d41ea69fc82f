package employee

import (
	"time"
)

type Employee struct {
	ID         string
	EmployeeID string // human-facing badge number, unique
	FirstName  string
	Surname    string
	Position   string
	Department *string
	AvatarURL  *string

	Status        DutyStatus
	LastLoginTime *time.Time

	// Credential material. All optional; an employee may be enrolled in
	// any subset of the three verification methods.
	Pin            *string
	FaceDescriptor []float64
	CredentialID   *string // hex-encoded platform credential id, unique
	PublicKey      *string // hex-encoded public key returned at enrollment

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DutyStatus string

const (
	StatusLoggedIn  DutyStatus = "Logged In"
	StatusLoggedOut DutyStatus = "Logged Out"
)

// FullName returns the denormalized display name stored on attendance
// logs and leave requests.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.Surname
}

func (e Employee) HasFaceEnrolled() bool {
	return len(e.FaceDescriptor) > 0
}

func (e Employee) HasCredentialEnrolled() bool {
	return e.CredentialID != nil && *e.CredentialID != ""
}

func (e Employee) HasPin() bool {
	return e.Pin != nil && *e.Pin != ""
}
