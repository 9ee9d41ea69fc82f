package notification

import (
	"time"
)

// Notification is a system-authored alert for the admin dashboard.
type Notification struct {
	ID           string
	EmployeeID   string // "SYSTEM" for site-wide alerts
	EmployeeName string
	Type         Type
	Message      string
	Read         bool
	Timestamp    time.Time
}

type Type string

const (
	TypeMissedLogout     Type = "missed-logout"
	TypeDailyReportReady Type = "daily-report-ready"
	TypeEarlyClockOut    Type = "early-clock-out"
)

// SystemEmployeeID marks notifications not tied to a single employee.
const SystemEmployeeID = "SYSTEM"
