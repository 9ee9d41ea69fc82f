package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access for employees. Write methods
// participate in an ambient transaction when one is carried on the
// context (see repository/postgresql.WithTransaction).
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByIDForUpdate reads the employee row and locks it until the
	// ambient transaction ends. The attendance toggle decides its
	// direction from this read.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)

	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string) error

	// GetByPin returns every employee holding the given pin. The caller
	// decides what more than one match means; the repository does not
	// guess.
	GetByPin(ctx context.Context, pin string) ([]Employee, error)

	// ListFaceEnrolled returns employees with a stored face descriptor.
	ListFaceEnrolled(ctx context.Context) ([]Employee, error)

	// ListCredentialEnrolled returns employees with a stored platform
	// credential id.
	ListCredentialEnrolled(ctx context.Context) ([]Employee, error)

	// ListLoggedInBefore returns employees whose status is Logged In and
	// whose last login is strictly before the cutoff. Used by the daily
	// reconciliation job.
	ListLoggedInBefore(ctx context.Context, cutoff time.Time) ([]Employee, error)

	// UpdateStatus flips duty status; lastLoginTime is written only when
	// non-nil (transitions to Logged In).
	UpdateStatus(ctx context.Context, id string, status DutyStatus, lastLoginTime *time.Time) error

	// UpdateStatusFrom flips duty status only while the row still holds
	// the expected current status, reporting whether the write landed.
	// lastLoginTime follows the UpdateStatus rule.
	UpdateStatusFrom(ctx context.Context, id string, from, to DutyStatus, lastLoginTime *time.Time) (bool, error)
}
