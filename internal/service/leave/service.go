package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
	"github.com/sabigold/presence-backend-go/internal/pkg/sse"
	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

type Service struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	tx           database.Transactor
	hub          *sse.Hub
	now          func() time.Time
}

func NewService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	tx database.Transactor,
	hub *sse.Hub,
) *Service {
	return &Service{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		hub:          hub,
		now:          time.Now,
	}
}

// Create records an absence interval directly, the admin path that
// bypasses the request/approval flow.
func (s *Service) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Leave{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Type:       leave.Type(req.Type),
	})
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: sse.TopicLeaveRequests, Data: created})
	return created, nil
}

func (s *Service) ListActive(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	return s.leaveRepo.ListActive(ctx, filter)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	return s.leaveRepo.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListDeleted(ctx context.Context) ([]leave.Leave, error) {
	return s.leaveRepo.ListDeleted(ctx)
}

// SoftDelete moves the given leaves into the recycle bin in one batch.
func (s *Service) SoftDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.leaveRepo.SetDeleted(ctx, ids, true, s.now()); err != nil {
		return fmt.Errorf("failed to soft-delete leaves: %w", err)
	}
	s.hub.Publish(sse.Event{Topic: sse.TopicLeaveRequests, Data: map[string]any{"deleted": ids}})
	slog.Info("Leaves moved to recycle bin", "count", len(ids))
	return nil
}

// Restore brings recycle-bin entries back in one batch.
func (s *Service) Restore(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.leaveRepo.SetDeleted(ctx, ids, false, s.now()); err != nil {
		return fmt.Errorf("failed to restore leaves: %w", err)
	}
	s.hub.Publish(sse.Event{Topic: sse.TopicLeaveRequests, Data: map[string]any{"restored": ids}})
	return nil
}

// Purge permanently removes the given recycle-bin entries. A leave that
// is not soft-deleted is refused; purge never touches live records.
func (s *Service) Purge(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, id := range ids {
			l, err := s.leaveRepo.GetByID(txCtx, id)
			if err != nil {
				return err
			}
			if !l.Deleted {
				return leave.ErrNotDeleted
			}
		}
		n, err := s.leaveRepo.HardDelete(txCtx, ids)
		if err != nil {
			return fmt.Errorf("failed to purge leaves: %w", err)
		}
		slog.Info("Leaves purged", "count", n)
		return nil
	})
}

// PurgeAll empties the recycle bin. The deleted set is re-fetched
// inside the transaction, so an entry restored concurrently is not
// swept away by a stale snapshot.
func (s *Service) PurgeAll(ctx context.Context) (int, error) {
	var purged int
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.leaveRepo.ListDeleted(txCtx)
		if err != nil {
			return err
		}
		if len(deleted) == 0 {
			return nil
		}
		ids := make([]string, 0, len(deleted))
		for _, l := range deleted {
			ids = append(ids, l.ID)
		}
		purged, err = s.leaveRepo.HardDelete(txCtx, ids)
		if err != nil {
			return fmt.Errorf("failed to empty recycle bin: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		slog.Info("Recycle bin emptied", "count", purged)
	}
	return purged, nil
}

// CurrentLeave returns the non-deleted leave covering the given day for
// an employee, if any. The kiosk self-service flow uses it to show what
// an extension request would extend.
func (s *Service) CurrentLeave(ctx context.Context, employeeID string, day time.Time) (leave.Leave, bool, error) {
	leaves, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.Leave{}, false, err
	}
	for _, l := range leaves {
		if l.Covers(day) {
			return l, true, nil
		}
	}
	return leave.Leave{}, false, nil
}
