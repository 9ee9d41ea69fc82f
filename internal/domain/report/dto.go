package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

// Range is an inclusive calendar-day report window.
type Range struct {
	From time.Time
	To   time.Time
}

// ParseRange validates "YYYY-MM-DD" bounds and widens To to the end of
// its day so timestamp comparisons are inclusive.
func ParseRange(from, to string) (Range, error) {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(from)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(to)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}
	if len(errs) > 0 {
		return Range{}, errs
	}

	return Range{
		From: start,
		To:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999e6, end.Location()),
	}, nil
}

type PayrollRow struct {
	EmployeeName  string          `json:"employee_name"`
	DaysWorked    int             `json:"days_worked"`
	OvertimeHours float64         `json:"overtime_hours"`
	BasePay       decimal.Decimal `json:"base_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	GrossPay      decimal.Decimal `json:"gross_pay"`
}

type LateArrivalRow struct {
	EmployeeName string    `json:"employee_name"`
	Department   string    `json:"department"`
	Date         string    `json:"date"`
	ArrivalTime  time.Time `json:"arrival_time"`
	ShiftStart   string    `json:"shift_start"`
	LateByMins   int       `json:"late_by_mins"`
}

type OnLeaveRow struct {
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
}

type AbsenceRow struct {
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Date         string `json:"date"`
}
