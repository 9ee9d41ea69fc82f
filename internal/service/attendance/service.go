package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/attendance"
	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/notification"
	"github.com/sabigold/presence-backend-go/internal/domain/settings"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
	"github.com/sabigold/presence-backend-go/internal/pkg/sse"
)

type Service struct {
	employeeRepo    employee.EmployeeRepository
	logRepo         attendance.LogRepository
	settingsRepo    settings.Repository
	notificationSvc notification.Service
	tx              database.Transactor
	hub             *sse.Hub
	now             func() time.Time
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	logRepo attendance.LogRepository,
	settingsRepo settings.Repository,
	notificationSvc notification.Service,
	tx database.Transactor,
	hub *sse.Hub,
) *Service {
	return &Service{
		employeeRepo:    employeeRepo,
		logRepo:         logRepo,
		settingsRepo:    settingsRepo,
		notificationSvc: notificationSvc,
		tx:              tx,
		hub:             hub,
		now:             time.Now,
	}
}

// Toggle flips the employee's duty status and appends the matching
// attendance log in one transaction. The direction comes from the
// employee row as re-read under a row lock inside the transaction, not
// from anything the terminal claims, so a double-fired toggle nets out
// to in then out rather than two identical records.
func (s *Service) Toggle(ctx context.Context, employeeID string) (attendance.ToggleResult, error) {
	now := s.now()

	var result attendance.ToggleResult
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}

		if emp.Status == employee.StatusLoggedIn {
			return s.clockOut(txCtx, emp, now, &result)
		}
		return s.clockIn(txCtx, emp, now, &result)
	})
	if err != nil {
		return attendance.ToggleResult{}, err
	}

	s.hub.Publish(sse.Event{Topic: sse.TopicAttendance, Data: result.Log})

	slog.Info("Attendance toggled",
		"employee_id", employeeID,
		"type", result.Log.Type,
		"new_status", result.NewStatus,
	)
	return result, nil
}

func (s *Service) clockIn(ctx context.Context, emp employee.Employee, now time.Time, result *attendance.ToggleResult) error {
	// Conditional on the status the row lock observed. A miss means
	// another session flipped the row first; the whole toggle rolls back.
	ok, err := s.employeeRepo.UpdateStatusFrom(ctx, emp.ID, emp.Status, employee.StatusLoggedIn, &now)
	if err != nil {
		return err
	}
	if !ok {
		return attendance.ErrToggleConflict
	}

	log, err := s.logRepo.Create(ctx, attendance.Log{
		EmployeeID:       emp.ID,
		Timestamp:        now,
		Type:             attendance.TypeIn,
		EmployeeName:     emp.FullName(),
		EmployeePosition: emp.Position,
	})
	if err != nil {
		return fmt.Errorf("failed to append login log: %w", err)
	}

	*result = attendance.ToggleResult{
		Log:           log,
		NewStatus:     string(employee.StatusLoggedIn),
		LastLoginTime: &now,
	}
	return nil
}

func (s *Service) clockOut(ctx context.Context, emp employee.Employee, now time.Time, result *attendance.ToggleResult) error {
	// lastLoginTime survives the logout; only a login overwrites it.
	ok, err := s.employeeRepo.UpdateStatusFrom(ctx, emp.ID, employee.StatusLoggedIn, employee.StatusLoggedOut, nil)
	if err != nil {
		return err
	}
	if !ok {
		return attendance.ErrToggleConflict
	}

	log, err := s.logRepo.Create(ctx, attendance.Log{
		EmployeeID:       emp.ID,
		Timestamp:        now,
		Type:             attendance.TypeOut,
		EmployeeName:     emp.FullName(),
		EmployeePosition: emp.Position,
	})
	if err != nil {
		return fmt.Errorf("failed to append logout log: %w", err)
	}

	if err := s.notifyEarlyClockOut(ctx, emp, now); err != nil {
		return err
	}

	*result = attendance.ToggleResult{
		Log:           log,
		NewStatus:     string(employee.StatusLoggedOut),
		LastLoginTime: emp.LastLoginTime,
	}
	return nil
}

// notifyEarlyClockOut raises an alert when an employee leaves before
// the configured shift end on the day they logged in.
func (s *Service) notifyEarlyClockOut(ctx context.Context, emp employee.Employee, out time.Time) error {
	if emp.LastLoginTime == nil {
		return nil
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	window, err := attendance.NewShiftWindow(cfg.ShiftStart, cfg.ShiftEnd, emp.LastLoginTime.In(out.Location()))
	if err != nil {
		return err
	}
	if !out.Before(window.End) {
		return nil
	}

	return s.notificationSvc.Notify(ctx, notification.Notification{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Type:         notification.TypeEarlyClockOut,
		Message:      fmt.Sprintf("clocked out before the end of shift at %s.", out.Format("15:04")),
	})
}

// ShiftStatus reports live shift progress for a logged-in employee. The
// shift window is anchored on the calendar day of the login, so an
// overnight shift's end lands on the following day.
func (s *Service) ShiftStatus(ctx context.Context, employeeID string) (attendance.ShiftStatus, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.ShiftStatus{}, err
	}
	if emp.Status != employee.StatusLoggedIn || emp.LastLoginTime == nil {
		return attendance.ShiftStatus{}, attendance.ErrNotLoggedIn
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return attendance.ShiftStatus{}, fmt.Errorf("failed to load settings: %w", err)
	}

	now := s.now()
	login := emp.LastLoginTime.In(now.Location())
	window, err := attendance.NewShiftWindow(cfg.ShiftStart, cfg.ShiftEnd, login)
	if err != nil {
		return attendance.ShiftStatus{}, err
	}

	overtime := window.Overtime(now)
	return attendance.ShiftStatus{
		LoginTime:     login,
		ShiftStart:    window.Start,
		ShiftEnd:      window.End,
		Progress:      window.Progress(login, now),
		OvertimeHours: overtime,
		InOvertime:    overtime > 0,
	}, nil
}

// History pairs the employee's logs into completed shifts, most recent
// first, and surfaces a still-open login separately.
func (s *Service) History(ctx context.Context, employeeID string) (attendance.History, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.History{}, err
	}

	logs, err := s.logRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.History{}, fmt.Errorf("failed to load attendance logs: %w", err)
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return attendance.History{}, fmt.Errorf("failed to load settings: %w", err)
	}

	pairs, open := attendance.PairLogs(logs)

	history := attendance.History{Entries: make([]attendance.HistoryEntry, 0, len(pairs))}
	for _, p := range pairs {
		entry := attendance.HistoryEntry{
			In:    p.In,
			Out:   p.Out,
			Hours: p.Duration().Hours(),
		}
		// Overtime is measured against the shift window of the login day.
		if window, err := attendance.NewShiftWindow(cfg.ShiftStart, cfg.ShiftEnd, p.In); err == nil {
			entry.OvertimeHours = window.Overtime(p.Out)
		}
		history.Entries = append(history.Entries, entry)
	}
	if open != nil {
		t := open.Timestamp
		history.OpenSince = &t
	}
	return history, nil
}

// Recent returns the newest attendance logs across all employees for
// the dashboard live feed.
func (s *Service) Recent(ctx context.Context, limit int) ([]attendance.Log, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.logRepo.ListRecent(ctx, limit)
}
