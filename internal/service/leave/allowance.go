package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/domain/settings"
)

// AllowanceService computes the annual vacation accounting. Only
// Vacation-typed, non-deleted leaves whose start date falls in the
// requested year count against the allowance; Sick and Unpaid leaves
// never do.
type AllowanceService struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	settingsRepo settings.Repository
}

func NewAllowanceService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.Repository,
) *AllowanceService {
	return &AllowanceService{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		settingsRepo: settingsRepo,
	}
}

// Allowance returns the vacation accounting for one employee and year.
// DaysRemaining may go negative when an admin grants past the
// allowance; presentation layers floor it at zero.
func (s *AllowanceService) Allowance(ctx context.Context, employeeID string, year int) (leave.Allowance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.Allowance{}, err
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return leave.Allowance{}, fmt.Errorf("failed to load settings: %w", err)
	}

	leaves, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.Allowance{}, err
	}

	allowance := leave.Allowance{
		Year:        year,
		AnnualDays:  cfg.AnnualLeaveDays,
		MonthlyDays: make([]int, 12),
	}

	for _, l := range leaves {
		if l.Type != leave.TypeVacation || l.StartDate.Year() != year {
			continue
		}
		allowance.DaysTaken += l.DurationDays()
		bucketByMonth(allowance.MonthlyDays, l, year)
	}

	allowance.DaysRemaining = allowance.AnnualDays - allowance.DaysTaken
	return allowance, nil
}

// bucketByMonth spreads the leave's covered days over the monthly
// histogram. A leave spilling into the next year contributes only the
// days inside the requested year.
func bucketByMonth(buckets []int, l leave.Leave, year int) {
	day := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(end) {
		if day.Year() == year {
			buckets[int(day.Month())-1]++
		}
		day = day.AddDate(0, 0, 1)
	}
}
