package attendance

import (
	"time"
)

// Log is an append-only attendance event. Name and position are
// denormalized point-in-time snapshots, never re-derived from the live
// employee record.
type Log struct {
	ID               string
	EmployeeID       string
	Timestamp        time.Time
	Type             LogType
	EmployeeName     string
	EmployeePosition string
	Notes            *string
	CreatedAt        time.Time
}

type LogType string

const (
	TypeIn  LogType = "in"
	TypeOut LogType = "out"
)

// NotesAutoClockOut annotates synthetic logout records written by the
// daily reconciliation job.
const NotesAutoClockOut = "auto clock-out"

// Pair is a completed in/out shift.
type Pair struct {
	In  time.Time
	Out time.Time
}

// Duration returns the worked time of the pair.
func (p Pair) Duration() time.Duration {
	return p.Out.Sub(p.In)
}
