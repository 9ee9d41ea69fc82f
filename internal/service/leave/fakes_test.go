package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/domain/settings"
)

// fakeTransactor runs the batch directly; atomicity is the store's
// concern, not what these tests exercise.
type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	leaves map[string]leave.Leave
	seq    int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[string]leave.Leave)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	f.seq++
	if l.ID == "" {
		l.ID = fmt.Sprintf("leave-%d", f.seq)
	}
	f.leaves[l.ID] = l
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (f *fakeLeaveRepo) ListActive(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.Deleted {
			continue
		}
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Type != nil && l.Type != *filter.Type {
			continue
		}
		if filter.From != nil && l.EndDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.StartDate.After(*filter.To) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if !l.Deleted && l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListDeleted(ctx context.Context) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.Deleted {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) SetDeleted(ctx context.Context, ids []string, deleted bool, at time.Time) error {
	for _, id := range ids {
		if l, ok := f.leaves[id]; ok {
			l.Deleted = deleted
			l.UpdatedAt = at
			f.leaves[id] = l
		}
	}
	return nil
}

func (f *fakeLeaveRepo) UpdateEndDate(ctx context.Context, id string, endDate, at time.Time) error {
	l, ok := f.leaves[id]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	l.EndDate = endDate
	l.UpdatedAt = at
	f.leaves[id] = l
	return nil
}

// HardDelete mirrors the store's guard: only rows still soft-deleted
// go.
func (f *fakeLeaveRepo) HardDelete(ctx context.Context, ids []string) (int, error) {
	var n int
	for _, id := range ids {
		if l, ok := f.leaves[id]; ok && l.Deleted {
			delete(f.leaves, id)
			n++
		}
	}
	return n, nil
}

type fakeRequestRepo struct {
	requests map[string]leave.Request
	seq      int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, r leave.Request) (leave.Request, error) {
	f.seq++
	if r.ID == "" {
		r.ID = fmt.Sprintf("req-%d", f.seq)
	}
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) ListPending(ctx context.Context) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.Status == leave.RequestStatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateStatus is conditional on the request still being pending, same
// as the store-backed implementation.
func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, at time.Time) error {
	r, ok := f.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if r.Status != leave.RequestStatusPending {
		return leave.ErrAlreadyProcessed
	}
	r.Status = status
	r.UpdatedAt = at
	f.requests[id] = r
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, id := range ids {
		f.employees[id] = employee.Employee{ID: id, FirstName: "Test", Surname: id, Position: "Guard"}
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) GetByPin(ctx context.Context, pin string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListFaceEnrolled(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListCredentialEnrolled(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListLoggedInBefore(ctx context.Context, cutoff time.Time) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) UpdateStatus(ctx context.Context, id string, status employee.DutyStatus, lastLoginTime *time.Time) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateStatusFrom(ctx context.Context, id string, from, to employee.DutyStatus, lastLoginTime *time.Time) (bool, error) {
	return true, nil
}

type fakeSettingsRepo struct {
	current settings.Settings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	return f.current, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s settings.Settings) error {
	f.current = s
	return nil
}
