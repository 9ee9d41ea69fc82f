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

// RequestService runs the submit/approve/deny lifecycle for leave
// requests. Decisions are final: the status update is conditional on
// the request still being pending, so two admins racing on the same
// request cannot both win.
type RequestService struct {
	requestRepo  leave.RequestRepository
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	tx           database.Transactor
	hub          *sse.Hub
	now          func() time.Time
}

func NewRequestService(
	requestRepo leave.RequestRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	tx database.Transactor,
	hub *sse.Hub,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		hub:          hub,
		now:          time.Now,
	}
}

// Submit files a new pending request. The employee's display name is
// snapshotted onto the request at submission time. Extension requests
// must reference an existing, non-deleted leave.
func (s *RequestService) Submit(ctx context.Context, req leave.SubmitRequestRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.Request{}, err
	}

	if req.IsExtension {
		original, err := s.leaveRepo.GetByID(ctx, *req.OriginalLeaveID)
		if err != nil {
			return leave.Request{}, err
		}
		if original.Deleted {
			return leave.Request{}, leave.ErrMissingOriginal
		}
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.requestRepo.Create(ctx, leave.Request{
		EmployeeID:      req.EmployeeID,
		EmployeeName:    emp.FullName(),
		StartDate:       start,
		EndDate:         end,
		Type:            leave.Type(req.Type),
		Status:          leave.RequestStatusPending,
		Reason:          req.Reason,
		IsExtension:     req.IsExtension,
		OriginalLeaveID: req.OriginalLeaveID,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to submit leave request: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: sse.TopicLeaveRequests, Data: created})

	slog.Info("Leave request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"is_extension", created.IsExtension,
	)
	return created, nil
}

// Approve commits the decision and the resulting leave mutation in one
// transaction. An extension approval moves the original leave's end
// date in place; an ordinary approval creates a new leave record. The
// admin may override the requested end date before committing.
func (s *RequestService) Approve(ctx context.Context, requestID string, body leave.ApproveRequestRequest) (leave.Leave, error) {
	var endOverride *time.Time
	if body.EndDate != nil {
		parsed, ok := validator.IsValidDate(*body.EndDate)
		if !ok {
			return leave.Leave{}, validator.ValidationErrors{{Field: "end_date", Message: "end date must be YYYY-MM-DD"}}
		}
		endOverride = &parsed
	}

	var result leave.Leave
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		req, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		end := req.EndDate
		if endOverride != nil {
			end = *endOverride
		}
		if end.Before(req.StartDate) {
			return validator.ValidationErrors{{Field: "end_date", Message: "end date must not be before start date"}}
		}

		if err := s.requestRepo.UpdateStatus(txCtx, requestID, leave.RequestStatusApproved, s.now()); err != nil {
			return err
		}

		if req.IsExtension {
			if req.OriginalLeaveID == nil {
				return leave.ErrMissingOriginal
			}
			if err := s.leaveRepo.UpdateEndDate(txCtx, *req.OriginalLeaveID, end, s.now()); err != nil {
				return err
			}
			result, err = s.leaveRepo.GetByID(txCtx, *req.OriginalLeaveID)
			return err
		}

		result, err = s.leaveRepo.Create(txCtx, leave.Leave{
			EmployeeID: req.EmployeeID,
			StartDate:  req.StartDate,
			EndDate:    end,
			Type:       req.Type,
		})
		return err
	})
	if err != nil {
		return leave.Leave{}, err
	}

	s.hub.Publish(sse.Event{Topic: sse.TopicLeaveRequests, Data: result})

	slog.Info("Leave request approved", "request_id", requestID, "leave_id", result.ID)
	return result, nil
}

// Deny marks a pending request denied. No leave record changes.
func (s *RequestService) Deny(ctx context.Context, requestID string) error {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return err
	}
	if err := s.requestRepo.UpdateStatus(ctx, requestID, leave.RequestStatusDenied, s.now()); err != nil {
		return err
	}

	s.hub.Publish(sse.Event{Topic: sse.TopicLeaveRequests, Data: map[string]any{"denied": requestID}})

	slog.Info("Leave request denied", "request_id", requestID)
	return nil
}

func (s *RequestService) ListPending(ctx context.Context) ([]leave.Request, error) {
	return s.requestRepo.ListPending(ctx)
}

func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return s.requestRepo.ListByEmployee(ctx, employeeID)
}

// ListPendingByEmployee returns the employee's undecided requests, the
// set the kiosk self-service view shows.
func (s *RequestService) ListPendingByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	all, err := s.requestRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	pending := make([]leave.Request, 0, len(all))
	for _, r := range all {
		if r.Status == leave.RequestStatusPending {
			pending = append(pending, r)
		}
	}
	return pending, nil
}
