package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sabigold/presence-backend-go/internal/domain/attendance"
	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/domain/report"
	"github.com/sabigold/presence-backend-go/internal/domain/settings"
)

// Service derives the printable admin reports from the attendance and
// leave stores. Reports are pure reads; nothing here mutates state.
type Service struct {
	employeeRepo employee.EmployeeRepository
	logRepo      attendance.LogRepository
	leaveRepo    leave.LeaveRepository
	settingsRepo settings.Repository
	now          func() time.Time
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	logRepo attendance.LogRepository,
	leaveRepo leave.LeaveRepository,
	settingsRepo settings.Repository,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		logRepo:      logRepo,
		leaveRepo:    leaveRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// Payroll totals completed shifts per employee over the range. Base pay
// is days worked times the daily rate; overtime pay is hours past the
// shift end times the overtime rate.
func (s *Service) Payroll(ctx context.Context, rng report.Range) ([]report.PayrollRow, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	logs, err := s.logRepo.ListBetween(ctx, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance logs: %w", err)
	}

	byEmployee := groupByEmployee(logs)

	rows := make([]report.PayrollRow, 0, len(byEmployee))
	for _, group := range byEmployee {
		pairs, _ := attendance.PairLogs(group.logs)
		if len(pairs) == 0 {
			continue
		}

		daysWorked := make(map[string]struct{})
		var overtimeHours float64
		for _, p := range pairs {
			daysWorked[p.In.Format("2006-01-02")] = struct{}{}
			if window, err := attendance.NewShiftWindow(cfg.ShiftStart, cfg.ShiftEnd, p.In); err == nil {
				overtimeHours += window.Overtime(p.Out)
			}
		}

		basePay := cfg.DailyRate.Mul(decimal.NewFromInt(int64(len(daysWorked))))
		overtimePay := cfg.OvertimeRate.Mul(decimal.NewFromFloat(overtimeHours))

		rows = append(rows, report.PayrollRow{
			EmployeeName:  group.name,
			DaysWorked:    len(daysWorked),
			OvertimeHours: overtimeHours,
			BasePay:       basePay,
			OvertimePay:   overtimePay,
			GrossPay:      basePay.Add(overtimePay),
		})
	}
	return rows, nil
}

// LateArrivals lists each first login of a day that lands after the
// configured shift start.
func (s *Service) LateArrivals(ctx context.Context, rng report.Range) ([]report.LateArrivalRow, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	logs, err := s.logRepo.ListBetween(ctx, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance logs: %w", err)
	}

	departments, err := s.departmentIndex(ctx)
	if err != nil {
		return nil, err
	}

	// First "in" per employee per day; logs arrive ascending.
	firstIn := make(map[string]attendance.Log)
	var order []string
	for _, l := range logs {
		if l.Type != attendance.TypeIn {
			continue
		}
		key := l.EmployeeID + "|" + l.Timestamp.Format("2006-01-02")
		if _, seen := firstIn[key]; !seen {
			firstIn[key] = l
			order = append(order, key)
		}
	}

	var rows []report.LateArrivalRow
	for _, key := range order {
		l := firstIn[key]
		window, err := attendance.NewShiftWindow(cfg.ShiftStart, cfg.ShiftEnd, l.Timestamp)
		if err != nil {
			return nil, err
		}
		if !l.Timestamp.After(window.Start) {
			continue
		}
		rows = append(rows, report.LateArrivalRow{
			EmployeeName: l.EmployeeName,
			Department:   departments[l.EmployeeID],
			Date:         l.Timestamp.Format("2006-01-02"),
			ArrivalTime:  l.Timestamp,
			ShiftStart:   cfg.ShiftStart,
			LateByMins:   int(l.Timestamp.Sub(window.Start).Minutes()),
		})
	}
	return rows, nil
}

// OnLeave lists leaves whose interval overlaps the range.
func (s *Service) OnLeave(ctx context.Context, rng report.Range) ([]report.OnLeaveRow, error) {
	from, to := rng.From, rng.To
	leaves, err := s.leaveRepo.ListActive(ctx, leave.Filter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to load leaves: %w", err)
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	rows := make([]report.OnLeaveRow, 0, len(leaves))
	for _, l := range leaves {
		row := report.OnLeaveRow{
			LeaveType:    string(l.Type),
			StartDate:    l.StartDate.Format("2006-01-02"),
			EndDate:      l.EndDate.Format("2006-01-02"),
			DurationDays: l.DurationDays(),
		}
		if emp, ok := byID[l.EmployeeID]; ok {
			row.EmployeeName = emp.FullName()
			if emp.Department != nil {
				row.Department = *emp.Department
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Absences lists employee-weekdays in the range with no attendance log
// and no covering leave. Weekends, future days and days before the
// employee joined are not counted as absences.
func (s *Service) Absences(ctx context.Context, rng report.Range) ([]report.AbsenceRow, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	logs, err := s.logRepo.ListBetween(ctx, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance logs: %w", err)
	}
	present := make(map[string]struct{})
	for _, l := range logs {
		present[l.EmployeeID+"|"+l.Timestamp.Format("2006-01-02")] = struct{}{}
	}

	today := attendance.StartOfDay(s.now())

	var rows []report.AbsenceRow
	for _, emp := range employees {
		leaves, err := s.leaveRepo.ListByEmployee(ctx, emp.ID)
		if err != nil {
			return nil, err
		}

		for day := attendance.StartOfDay(rng.From); !day.After(rng.To); day = day.AddDate(0, 0, 1) {
			if !day.Before(today) {
				break
			}
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			if day.Before(attendance.StartOfDay(emp.CreatedAt)) {
				continue
			}
			if _, ok := present[emp.ID+"|"+day.Format("2006-01-02")]; ok {
				continue
			}
			if onLeave(leaves, day) {
				continue
			}
			row := report.AbsenceRow{
				EmployeeName: emp.FullName(),
				Date:         day.Format("2006-01-02"),
			}
			if emp.Department != nil {
				row.Department = *emp.Department
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func onLeave(leaves []leave.Leave, day time.Time) bool {
	for _, l := range leaves {
		if l.Covers(day) {
			return true
		}
	}
	return false
}

func (s *Service) departmentIndex(ctx context.Context) (map[string]string, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	idx := make(map[string]string, len(employees))
	for _, e := range employees {
		if e.Department != nil {
			idx[e.ID] = *e.Department
		}
	}
	return idx, nil
}

type employeeLogs struct {
	name string
	logs []attendance.Log
}

func groupByEmployee(logs []attendance.Log) map[string]*employeeLogs {
	groups := make(map[string]*employeeLogs)
	for _, l := range logs {
		g, ok := groups[l.EmployeeID]
		if !ok {
			g = &employeeLogs{name: l.EmployeeName}
			groups[l.EmployeeID] = g
		}
		g.logs = append(g.logs, l)
	}
	return groups
}
