package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", d(2026, 3, 9), d(2026, 3, 9), 1},
		{"two days", d(2026, 3, 9), d(2026, 3, 10), 2},
		{"full week", d(2026, 3, 9), d(2026, 3, 15), 7},
		{"across month boundary", d(2026, 1, 30), d(2026, 2, 2), 4},
		{"across year boundary", d(2025, 12, 30), d(2026, 1, 2), 4},
		{"time of day ignored", d(2026, 3, 9).Add(23 * time.Hour), d(2026, 3, 10), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Leave{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, l.DurationDays())
		})
	}
}

func TestCovers(t *testing.T) {
	l := Leave{StartDate: d(2026, 3, 9), EndDate: d(2026, 3, 13)}

	assert.True(t, l.Covers(d(2026, 3, 9)), "start day")
	assert.True(t, l.Covers(d(2026, 3, 11)), "middle day")
	assert.True(t, l.Covers(d(2026, 3, 13)), "end day is inclusive")
	assert.True(t, l.Covers(d(2026, 3, 13).Add(18*time.Hour)), "time of day ignored")
	assert.False(t, l.Covers(d(2026, 3, 8)))
	assert.False(t, l.Covers(d(2026, 3, 14)))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType("Sick"))
	assert.True(t, ValidType("Vacation"))
	assert.True(t, ValidType("Unpaid"))
	assert.False(t, ValidType("vacation"))
	assert.False(t, ValidType(""))
	assert.False(t, ValidType("Holiday"))
}

func TestSubmitRequestValidate(t *testing.T) {
	valid := SubmitRequestRequest{
		EmployeeID: "emp-1",
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-13",
		Type:       "Vacation",
	}
	assert.NoError(t, valid.Validate())

	t.Run("end before start", func(t *testing.T) {
		r := valid
		r.EndDate = "2026-03-08"
		assert.Error(t, r.Validate())
	})

	t.Run("extension requires original and reason", func(t *testing.T) {
		r := valid
		r.IsExtension = true
		assert.Error(t, r.Validate())

		orig := "leave-1"
		reason := "still unwell"
		r.OriginalLeaveID = &orig
		r.Reason = &reason
		assert.NoError(t, r.Validate())
	})
}
