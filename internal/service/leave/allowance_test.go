package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/domain/settings"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestAllowanceService(t *testing.T, annualDays int) (*AllowanceService, *fakeLeaveRepo) {
	t.Helper()
	repo := newFakeLeaveRepo()
	cfg := &fakeSettingsRepo{current: settings.Settings{AnnualLeaveDays: annualDays}}
	return NewAllowanceService(repo, newFakeEmployeeRepo("emp-1"), cfg), repo
}

func TestAllowance(t *testing.T) {
	ctx := context.Background()

	t.Run("only vacation leaves starting in the year count", func(t *testing.T) {
		svc, repo := newTestAllowanceService(t, 21)

		mustCreate(t, repo, leave.Leave{
			EmployeeID: "emp-1", Type: leave.TypeVacation,
			StartDate: date(2026, 1, 30), EndDate: date(2026, 2, 2),
		})
		mustCreate(t, repo, leave.Leave{
			EmployeeID: "emp-1", Type: leave.TypeSick,
			StartDate: date(2026, 3, 9), EndDate: date(2026, 3, 13),
		})
		mustCreate(t, repo, leave.Leave{
			EmployeeID: "emp-1", Type: leave.TypeVacation,
			StartDate: date(2025, 7, 1), EndDate: date(2025, 7, 5),
		})
		mustCreate(t, repo, leave.Leave{
			EmployeeID: "emp-1", Type: leave.TypeVacation, Deleted: true,
			StartDate: date(2026, 6, 1), EndDate: date(2026, 6, 5),
		})

		got, err := svc.Allowance(ctx, "emp-1", 2026)
		require.NoError(t, err)
		assert.Equal(t, 21, got.AnnualDays)
		assert.Equal(t, 4, got.DaysTaken)
		assert.Equal(t, 17, got.DaysRemaining)
		assert.Equal(t, 2, got.MonthlyDays[0], "Jan 30 and 31")
		assert.Equal(t, 2, got.MonthlyDays[1], "Feb 1 and 2")
		assert.Zero(t, got.MonthlyDays[2], "sick leave never fills a bucket")
	})

	t.Run("a leave spilling into next year buckets only this year's days", func(t *testing.T) {
		svc, repo := newTestAllowanceService(t, 21)

		mustCreate(t, repo, leave.Leave{
			EmployeeID: "emp-1", Type: leave.TypeVacation,
			StartDate: date(2026, 12, 30), EndDate: date(2027, 1, 2),
		})

		got, err := svc.Allowance(ctx, "emp-1", 2026)
		require.NoError(t, err)
		assert.Equal(t, 4, got.DaysTaken, "taken days span the whole interval")
		assert.Equal(t, 2, got.MonthlyDays[11], "only Dec 30 and 31 land in a bucket")
	})

	t.Run("remaining may go negative", func(t *testing.T) {
		svc, repo := newTestAllowanceService(t, 3)

		mustCreate(t, repo, leave.Leave{
			EmployeeID: "emp-1", Type: leave.TypeVacation,
			StartDate: date(2026, 3, 9), EndDate: date(2026, 3, 13),
		})

		got, err := svc.Allowance(ctx, "emp-1", 2026)
		require.NoError(t, err)
		assert.Equal(t, 5, got.DaysTaken)
		assert.Equal(t, -2, got.DaysRemaining)
	})

	t.Run("unknown employee fails", func(t *testing.T) {
		svc, _ := newTestAllowanceService(t, 21)
		_, err := svc.Allowance(ctx, "ghost", 2026)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func mustCreate(t *testing.T, repo *fakeLeaveRepo, l leave.Leave) {
	t.Helper()
	_, err := repo.Create(context.Background(), l)
	require.NoError(t, err)
}
