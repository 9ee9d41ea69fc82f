package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/attendance"
	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/notification"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
)

// ReconcileJob force-closes employees who never clocked out on a prior
// day. It runs at most once per calendar day, gated by the DayGuard.
type ReconcileJob struct {
	employeeRepo    employee.EmployeeRepository
	logRepo         attendance.LogRepository
	notificationSvc notification.Service
	tx              database.Transactor
	guard           *DayGuard
	loc             *time.Location
	now             func() time.Time
}

func NewReconcileJob(
	employeeRepo employee.EmployeeRepository,
	logRepo attendance.LogRepository,
	notificationSvc notification.Service,
	tx database.Transactor,
	guard *DayGuard,
	loc *time.Location,
) *ReconcileJob {
	return &ReconcileJob{
		employeeRepo:    employeeRepo,
		logRepo:         logRepo,
		notificationSvc: notificationSvc,
		tx:              tx,
		guard:           guard,
		loc:             loc,
		now:             time.Now,
	}
}

func (j *ReconcileJob) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("daily_reconciliation", 1*time.Hour, j.Run)
}

// Run repairs missed logouts for the current day. The per-employee
// status flip, synthetic logout log and missed-logout notification all
// commit in one transaction across every affected employee; a failure
// leaves the day guard unset so the next invocation retries everything.
func (j *ReconcileJob) Run(ctx context.Context) error {
	today := j.now().In(j.loc)

	done, err := j.guard.Completed(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to check reconciliation guard: %w", err)
	}
	if done {
		return nil
	}

	slog.Info("Running daily reconciliation", "day", today.Format("2006-01-02"))

	reconcileErr := j.closeMissedLogouts(ctx, today)

	// The daily-report notification goes out regardless of whether the
	// missed-logout repair succeeded.
	if err := j.notificationSvc.Notify(ctx, notification.Notification{
		EmployeeID:   notification.SystemEmployeeID,
		EmployeeName: "System",
		Type:         notification.TypeDailyReportReady,
		Message:      "Yesterday's attendance report is ready to print.",
	}); err != nil {
		slog.Error("Failed to emit daily-report notification", "error", err)
	}

	if reconcileErr != nil {
		return fmt.Errorf("reconciliation failed, will retry: %w", reconcileErr)
	}

	if err := j.guard.MarkCompleted(ctx, today); err != nil {
		return err
	}

	return nil
}

func (j *ReconcileJob) closeMissedLogouts(ctx context.Context, today time.Time) error {
	startOfToday := attendance.StartOfDay(today)

	return j.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		stale, err := j.employeeRepo.ListLoggedInBefore(txCtx, startOfToday)
		if err != nil {
			return fmt.Errorf("failed to query stale logged-in employees: %w", err)
		}
		if len(stale) == 0 {
			return nil
		}

		for _, emp := range stale {
			if err := j.employeeRepo.UpdateStatus(txCtx, emp.ID, employee.StatusLoggedOut, nil); err != nil {
				return fmt.Errorf("failed to log out employee %s: %w", emp.ID, err)
			}

			// Synthetic logout at the end of the day the employee logged
			// in, not at reconciliation time.
			notes := attendance.NotesAutoClockOut
			_, err := j.logRepo.Create(txCtx, attendance.Log{
				EmployeeID:       emp.ID,
				Timestamp:        attendance.EndOfDay(emp.LastLoginTime.In(j.loc)),
				Type:             attendance.TypeOut,
				EmployeeName:     emp.FullName(),
				EmployeePosition: emp.Position,
				Notes:            &notes,
			})
			if err != nil {
				return fmt.Errorf("failed to append synthetic logout for employee %s: %w", emp.ID, err)
			}

			if err := j.notificationSvc.Notify(txCtx, notification.Notification{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Type:         notification.TypeMissedLogout,
				Message:      "was automatically clocked out for yesterday due to a missed logout.",
			}); err != nil {
				return fmt.Errorf("failed to emit missed-logout notification for employee %s: %w", emp.ID, err)
			}
		}

		slog.Info("Auto clock-out applied", "count", len(stale))
		return nil
	})
}
