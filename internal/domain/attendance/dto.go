package attendance

import "time"

// ToggleResult is what the kiosk renders on its confirmation screen.
type ToggleResult struct {
	Log           Log        `json:"log"`
	NewStatus     string     `json:"new_status"`
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
}

// ShiftStatus is the live shift-progress view for a logged-in employee.
type ShiftStatus struct {
	LoginTime     time.Time `json:"login_time"`
	ShiftStart    time.Time `json:"shift_start"`
	ShiftEnd      time.Time `json:"shift_end"`
	Progress      float64   `json:"progress"`
	OvertimeHours float64   `json:"overtime_hours"`
	InOvertime    bool      `json:"in_overtime"`
}

// HistoryEntry is a paired shift for the profile/history views.
type HistoryEntry struct {
	In            time.Time `json:"in"`
	Out           time.Time `json:"out"`
	Hours         float64   `json:"hours"`
	OvertimeHours float64   `json:"overtime_hours"`
}

// History presents pairs most recent first plus the open login, if any.
type History struct {
	Entries   []HistoryEntry `json:"entries"`
	OpenSince *time.Time     `json:"open_since,omitempty"`
}
