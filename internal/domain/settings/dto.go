package settings

import (
	"github.com/shopspring/decimal"

	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	ShiftStart      string          `json:"shift_start"`
	ShiftEnd        string          `json:"shift_end"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	OvertimeRate    decimal.Decimal `json:"overtime_rate"`
	AnnualLeaveDays int             `json:"annual_leave_days"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidClockTime(r.ShiftStart) {
		errs = append(errs, validator.ValidationError{Field: "shift_start", Message: "shift start must be HH:mm"})
	}
	if !validator.IsValidClockTime(r.ShiftEnd) {
		errs = append(errs, validator.ValidationError{Field: "shift_end", Message: "shift end must be HH:mm"})
	}
	if r.DailyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "daily rate must not be negative"})
	}
	if r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "overtime rate must not be negative"})
	}
	if r.AnnualLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "annual_leave_days", Message: "annual leave days must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
