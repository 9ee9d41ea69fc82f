package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sabigold/presence-backend-go/internal/domain/attendance"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
)

type attendanceLogRepository struct {
	db *database.DB
}

func NewAttendanceLogRepository(db *database.DB) attendance.LogRepository {
	return &attendanceLogRepository{db: db}
}

const logColumns = `
	id, employee_id, timestamp, type, employee_name, employee_position, notes, created_at
`

func (r *attendanceLogRepository) Create(ctx context.Context, log attendance.Log) (attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO attendance_logs (id, employee_id, timestamp, type, employee_name, employee_position, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		log.ID,
		log.EmployeeID,
		log.Timestamp,
		string(log.Type),
		log.EmployeeName,
		log.EmployeePosition,
		log.Notes,
		log.CreatedAt,
	)
	if err != nil {
		return attendance.Log{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	return log, nil
}

func (r *attendanceLogRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logColumns + ` FROM attendance_logs WHERE employee_id = $1 ORDER BY timestamp ASC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func (r *attendanceLogRepository) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logColumns + ` FROM attendance_logs WHERE timestamp >= $1 AND timestamp <= $2 ORDER BY timestamp ASC`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs in range: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func (r *attendanceLogRepository) ListRecent(ctx context.Context, limit int) ([]attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logColumns + ` FROM attendance_logs ORDER BY timestamp DESC LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func scanLogs(rows pgx.Rows) ([]attendance.Log, error) {
	var logs []attendance.Log
	for rows.Next() {
		var log attendance.Log
		var logType string
		err := rows.Scan(
			&log.ID,
			&log.EmployeeID,
			&log.Timestamp,
			&logType,
			&log.EmployeeName,
			&log.EmployeePosition,
			&log.Notes,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		log.Type = attendance.LogType(logType)
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
