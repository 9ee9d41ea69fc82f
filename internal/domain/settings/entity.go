package settings

import (
	"github.com/shopspring/decimal"
)

// Settings is the singleton site configuration. ShiftEnd may be
// numerically before ShiftStart, meaning the shift crosses midnight.
type Settings struct {
	ShiftStart      string // "HH:mm"
	ShiftEnd        string // "HH:mm"
	DailyRate       decimal.Decimal
	OvertimeRate    decimal.Decimal
	AnnualLeaveDays int
}

// Defaults seeds a fresh installation.
func Defaults() Settings {
	return Settings{
		ShiftStart:      "08:00",
		ShiftEnd:        "17:00",
		DailyRate:       decimal.NewFromInt(25),
		OvertimeRate:    decimal.NewFromInt(5),
		AnnualLeaveDays: 21,
	}
}
