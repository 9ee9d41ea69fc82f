package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const requestColumns = `
	id, employee_id, employee_name, start_date, end_date, type, status,
	reason, is_extension, original_leave_id, created_at, updated_at
`

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	query := `
		INSERT INTO leave_requests (
			id, employee_id, employee_name, start_date, end_date, type, status,
			reason, is_extension, original_leave_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		req.ID,
		req.EmployeeID,
		req.EmployeeName,
		req.StartDate,
		req.EndDate,
		string(req.Type),
		string(req.Status),
		req.Reason,
		req.IsExtension,
		req.OriginalLeaveID,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepository) ListPending(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE status = $1 ORDER BY start_date ASC`

	rows, err := q.Query(ctx, query, string(leave.RequestStatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE employee_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by employee: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	// Decisions are final: only a pending request can change status, so
	// two racing decisions cannot both take effect.
	tag, err := q.Exec(ctx,
		`UPDATE leave_requests SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		id, string(status), at, string(leave.RequestStatusPending),
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}
	return nil
}

func scanRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	var reqType, status string
	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.EmployeeName,
		&req.StartDate,
		&req.EndDate,
		&reqType,
		&status,
		&req.Reason,
		&req.IsExtension,
		&req.OriginalLeaveID,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	req.Type = leave.Type(reqType)
	req.Status = leave.RequestStatus(status)
	return req, nil
}

func scanRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
