package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, employee_id, start_date, end_date, type, deleted, updated_at, created_at
`

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
		INSERT INTO leaves (id, employee_id, start_date, end_date, type, deleted, updated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		l.ID,
		l.EmployeeID,
		l.StartDate,
		l.EndDate,
		string(l.Type),
		l.Deleted,
		l.UpdatedAt,
		l.CreatedAt,
	)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return l, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE id = $1`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

func (r *leaveRepository) ListActive(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"deleted = false"}
	args := []interface{}{}
	arg := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", arg))
		args = append(args, *filter.EmployeeID)
		arg++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", arg))
		args = append(args, string(*filter.Type))
		arg++
	}
	// Interval overlap: leave.end >= from AND leave.start <= to
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("end_date >= $%d", arg))
		args = append(args, *filter.From)
		arg++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", arg))
		args = append(args, *filter.To)
		arg++
	}

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	return scanLeaves(rows)
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE employee_id = $1 AND deleted = false ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves by employee: %w", err)
	}
	defer rows.Close()

	return scanLeaves(rows)
}

func (r *leaveRepository) ListDeleted(ctx context.Context) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE deleted = true ORDER BY updated_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted leaves: %w", err)
	}
	defer rows.Close()

	return scanLeaves(rows)
}

func (r *leaveRepository) SetDeleted(ctx context.Context, ids []string, deleted bool, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leaves SET deleted = $2, updated_at = $3 WHERE id = ANY($1)`

	_, err := q.Exec(ctx, query, ids, deleted, at)
	if err != nil {
		return fmt.Errorf("failed to set leave deleted flag: %w", err)
	}
	return nil
}

func (r *leaveRepository) UpdateEndDate(ctx context.Context, id string, endDate, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leaves SET end_date = $2, updated_at = $3 WHERE id = $1`,
		id, endDate, at,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave end date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

func (r *leaveRepository) HardDelete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	// A row restored since it was listed is no longer deleted and stays.
	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = ANY($1) AND deleted = true`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to hard-delete leaves: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	var leaveType string
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.StartDate,
		&l.EndDate,
		&leaveType,
		&l.Deleted,
		&l.UpdatedAt,
		&l.CreatedAt,
	)
	if err != nil {
		return leave.Leave{}, err
	}
	l.Type = leave.Type(leaveType)
	return l, nil
}

func scanLeaves(rows pgx.Rows) ([]leave.Leave, error) {
	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}
