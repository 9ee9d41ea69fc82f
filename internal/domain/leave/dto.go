package leave

import (
	"time"

	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

// Filter narrows the active-leave listing (admin view).
type Filter struct {
	EmployeeID *string
	Type       *Type
	// Overlap window: a leave matches when its interval intersects
	// [From, To]. Either bound may be nil.
	From *time.Time
	To   *time.Time
}

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

func (r CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start date must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date must not be before start date"})
	}
	if !ValidType(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be Sick, Vacation or Unpaid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitRequestRequest struct {
	EmployeeID      string  `json:"employee_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Type            string  `json:"type"`
	Reason          *string `json:"reason,omitempty"`
	IsExtension     bool    `json:"is_extension"`
	OriginalLeaveID *string `json:"original_leave_id,omitempty"`
}

func (r SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start date must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date must not be before start date"})
	}
	if !ValidType(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be Sick, Vacation or Unpaid"})
	}
	if r.IsExtension {
		if r.OriginalLeaveID == nil || validator.IsEmpty(*r.OriginalLeaveID) {
			errs = append(errs, validator.ValidationError{Field: "original_leave_id", Message: "extension requests must reference the leave being extended"})
		}
		if r.Reason == nil || validator.IsEmpty(*r.Reason) {
			errs = append(errs, validator.ValidationError{Field: "reason", Message: "a reason is required for extension requests"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequestRequest struct {
	// EndDate optionally overrides the proposed end date before the
	// approval is committed.
	EndDate *string `json:"end_date,omitempty"`
}

// Allowance is the annual vacation accounting for one employee.
type Allowance struct {
	Year          int   `json:"year"`
	AnnualDays    int   `json:"annual_days"`
	DaysTaken     int   `json:"days_taken"`
	DaysRemaining int   `json:"days_remaining"` // may be negative; UIs floor at zero
	MonthlyDays   []int `json:"monthly_days"`   // 12 buckets, vacation days per month
}
