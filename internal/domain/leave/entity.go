package leave

import (
	"time"
)

// Leave is an approved absence interval. Start and end are inclusive
// day bounds; time-of-day is ignored by all duration math.
type Leave struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Type       Type
	Deleted    bool
	UpdatedAt  time.Time
	CreatedAt  time.Time
}

type Type string

const (
	TypeSick     Type = "Sick"
	TypeVacation Type = "Vacation"
	TypeUnpaid   Type = "Unpaid"
)

func ValidType(t string) bool {
	switch Type(t) {
	case TypeSick, TypeVacation, TypeUnpaid:
		return true
	}
	return false
}

// DurationDays is the inclusive day count of the interval. A single-day
// leave has duration 1.
func (l Leave) DurationDays() int {
	return inclusiveDays(l.StartDate, l.EndDate)
}

// Covers reports whether day falls inside the interval at day
// granularity, end-inclusive.
func (l Leave) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s) && !d.After(e)
}

func inclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Request is a pending ask from an employee awaiting a decision.
type Request struct {
	ID              string
	EmployeeID      string
	EmployeeName    string // snapshot at submission time
	StartDate       time.Time
	EndDate         time.Time
	Type            Type
	Status          RequestStatus
	Reason          *string
	IsExtension     bool
	OriginalLeaveID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDenied   RequestStatus = "denied"
)
