package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_id, first_name, surname, position, department, avatar_url,
	status, last_login_time, pin, face_descriptor, credential_id, public_key,
	created_at, updated_at
`

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	query := `
		INSERT INTO employees (
			id, employee_id, first_name, surname, position, department, avatar_url,
			status, last_login_time, pin, face_descriptor, credential_id, public_key,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := q.Exec(ctx, query,
		emp.ID,
		emp.EmployeeID,
		emp.FirstName,
		emp.Surname,
		emp.Position,
		emp.Department,
		emp.AvatarURL,
		string(emp.Status),
		emp.LastLoginTime,
		emp.Pin,
		emp.FaceDescriptor,
		emp.CredentialID,
		emp.PublicKey,
		emp.CreatedAt,
		emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, mapEmployeeConstraint(err)
	}

	return emp, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 FOR UPDATE`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to lock employee: %w", err)
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY first_name, surname`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			first_name = $2,
			surname = $3,
			position = $4,
			department = $5,
			avatar_url = $6,
			pin = $7,
			face_descriptor = $8,
			credential_id = $9,
			public_key = $10,
			updated_at = $11
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID,
		emp.FirstName,
		emp.Surname,
		emp.Position,
		emp.Department,
		emp.AvatarURL,
		emp.Pin,
		emp.FaceDescriptor,
		emp.CredentialID,
		emp.PublicKey,
		time.Now(),
	)
	if err != nil {
		return mapEmployeeConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) GetByPin(ctx context.Context, pin string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE pin = $1`

	rows, err := q.Query(ctx, query, pin)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by pin: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r *employeeRepository) ListFaceEnrolled(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE face_descriptor IS NOT NULL`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list face-enrolled employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r *employeeRepository) ListCredentialEnrolled(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE credential_id IS NOT NULL`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credential-enrolled employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r *employeeRepository) ListLoggedInBefore(ctx context.Context, cutoff time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE status = $1 AND last_login_time IS NOT NULL AND last_login_time < $2
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, string(employee.StatusLoggedIn), cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale logged-in employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r *employeeRepository) UpdateStatus(ctx context.Context, id string, status employee.DutyStatus, lastLoginTime *time.Time) error {
	q := GetQuerier(ctx, r.db)

	var (
		tag pgconn.CommandTag
		err error
	)
	if lastLoginTime != nil {
		tag, err = q.Exec(ctx,
			`UPDATE employees SET status = $2, last_login_time = $3, updated_at = $4 WHERE id = $1`,
			id, string(status), *lastLoginTime, time.Now(),
		)
	} else {
		tag, err = q.Exec(ctx,
			`UPDATE employees SET status = $2, updated_at = $3 WHERE id = $1`,
			id, string(status), time.Now(),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) UpdateStatusFrom(ctx context.Context, id string, from, to employee.DutyStatus, lastLoginTime *time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var (
		tag pgconn.CommandTag
		err error
	)
	if lastLoginTime != nil {
		tag, err = q.Exec(ctx,
			`UPDATE employees SET status = $3, last_login_time = $4, updated_at = $5 WHERE id = $1 AND status = $2`,
			id, string(from), string(to), *lastLoginTime, time.Now(),
		)
	} else {
		tag, err = q.Exec(ctx,
			`UPDATE employees SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
			id, string(from), string(to), time.Now(),
		)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update employee status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var status string
	err := row.Scan(
		&emp.ID,
		&emp.EmployeeID,
		&emp.FirstName,
		&emp.Surname,
		&emp.Position,
		&emp.Department,
		&emp.AvatarURL,
		&status,
		&emp.LastLoginTime,
		&emp.Pin,
		&emp.FaceDescriptor,
		&emp.CredentialID,
		&emp.PublicKey,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Status = employee.DutyStatus(status)
	return emp, nil
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// mapEmployeeConstraint converts unique-violation errors from the
// partial unique indexes on employee_id, pin and credential_id into
// domain errors. These indexes are the conditional-write backstop for
// the read-then-write uniqueness checks in the service layer.
func mapEmployeeConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "employees_employee_id_key":
			return employee.ErrEmployeeIDExists
		case "employees_pin_key":
			return employee.ErrPinTaken
		case "employees_credential_id_key":
			return employee.ErrCredentialTaken
		}
	}
	return fmt.Errorf("failed to write employee: %w", err)
}
