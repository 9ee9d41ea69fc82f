package attendance

import (
	"context"
	"time"
)

// LogRepository is the append-only attendance event store. Logs are
// never updated or deleted by normal operation.
type LogRepository interface {
	Create(ctx context.Context, log Log) (Log, error)

	// ListByEmployee returns an employee's logs, ascending by timestamp.
	ListByEmployee(ctx context.Context, employeeID string) ([]Log, error)

	// ListBetween returns all logs with from <= timestamp <= to,
	// ascending by timestamp.
	ListBetween(ctx context.Context, from, to time.Time) ([]Log, error)

	// ListRecent returns the latest logs across all employees, most
	// recent first. Feeds the live view.
	ListRecent(ctx context.Context, limit int) ([]Log, error)
}
