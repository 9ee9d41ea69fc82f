package leave

import (
	"context"
	"time"
)

// LeaveRepository stores approved absence intervals, including
// soft-deleted ones.
type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)

	// ListActive returns non-deleted leaves matching the filter, newest
	// start date first.
	ListActive(ctx context.Context, filter Filter) ([]Leave, error)

	// ListByEmployee returns all non-deleted leaves for one employee,
	// newest start date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)

	// ListDeleted returns the recycle bin, most recently deleted first.
	ListDeleted(ctx context.Context) ([]Leave, error)

	// SetDeleted flips the soft-delete flag on the given ids and stamps
	// updatedAt. All rows change in one statement.
	SetDeleted(ctx context.Context, ids []string, deleted bool, at time.Time) error

	// UpdateEndDate moves a leave's end date (extension approval).
	UpdateEndDate(ctx context.Context, id string, endDate, at time.Time) error

	// HardDelete permanently removes the given ids, skipping any row
	// that is no longer soft-deleted. Returns the number removed.
	HardDelete(ctx context.Context, ids []string) (int, error)
}

// RequestRepository stores pending/decided leave requests.
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListPending(ctx context.Context) ([]Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, at time.Time) error
}
