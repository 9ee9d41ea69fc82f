package employee

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
)

type fakeRepo struct {
	employees map[string]employee.Employee
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeID == emp.EmployeeID {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
	}
	f.seq++
	emp.ID = fmt.Sprintf("emp-%d", f.seq)
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, emp employee.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeRepo) GetByPin(ctx context.Context, pin string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Pin != nil && *e.Pin == pin {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListFaceEnrolled(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.HasFaceEnrolled() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCredentialEnrolled(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.HasCredentialEnrolled() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLoggedInBefore(ctx context.Context, cutoff time.Time) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status employee.DutyStatus, lastLoginTime *time.Time) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Status = status
	if lastLoginTime != nil {
		emp.LastLoginTime = lastLoginTime
	}
	f.employees[id] = emp
	return nil
}

func (f *fakeRepo) UpdateStatusFrom(ctx context.Context, id string, from, to employee.DutyStatus, lastLoginTime *time.Time) (bool, error) {
	emp, ok := f.employees[id]
	if !ok || emp.Status != from {
		return false, nil
	}
	emp.Status = to
	if lastLoginTime != nil {
		emp.LastLoginTime = lastLoginTime
	}
	f.employees[id] = emp
	return true, nil
}

func strPtr(s string) *string { return &s }

func createRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeID: "G-001",
		FirstName:  "Dana",
		Surname:    "Reyes",
		Position:   "Security Guard",
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("new employees start logged out", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		created, err := svc.Create(ctx, createRequest())
		require.NoError(t, err)
		assert.Equal(t, employee.StatusLoggedOut, created.Status)
		assert.Nil(t, created.LastLoginTime)
	})

	t.Run("a pin already held by someone else is refused", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		first := createRequest()
		first.Pin = strPtr("1234")
		_, err := svc.Create(ctx, first)
		require.NoError(t, err)

		second := createRequest()
		second.EmployeeID = "G-002"
		second.Pin = strPtr("1234")
		_, err = svc.Create(ctx, second)
		assert.ErrorIs(t, err, employee.ErrPinTaken)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		req := createRequest()
		req.Surname = ""
		_, err := svc.Create(ctx, req)
		assert.Error(t, err)
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.EnrollFace(ctx, created.ID, employee.EnrollFaceRequest{Descriptor: []float64{0.1, 0.2}}))

	updated, err := svc.Update(ctx, created.ID, employee.UpdateEmployeeRequest{
		Position:   strPtr("Shift Lead"),
		Department: strPtr("Night"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Shift Lead", updated.Position)
	assert.Equal(t, "Dana", updated.FirstName)
	assert.Len(t, updated.FaceDescriptor, 2, "profile updates never touch credential material")
}

func TestPinFlows(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, string) {
		t.Helper()
		svc := NewService(newFakeRepo())
		created, err := svc.Create(ctx, createRequest())
		require.NoError(t, err)
		return svc, created.ID
	}

	t.Run("set then change", func(t *testing.T) {
		svc, id := setup(t)
		require.NoError(t, svc.SetPin(ctx, id, "1234"))
		require.NoError(t, svc.ChangePin(ctx, id, employee.ChangePinRequest{CurrentPin: "1234", NewPin: "5678"}))

		emp, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, emp.Pin)
		assert.Equal(t, "5678", *emp.Pin)
	})

	t.Run("change with the wrong current pin is refused", func(t *testing.T) {
		svc, id := setup(t)
		require.NoError(t, svc.SetPin(ctx, id, "1234"))

		err := svc.ChangePin(ctx, id, employee.ChangePinRequest{CurrentPin: "0000", NewPin: "5678"})
		assert.ErrorIs(t, err, employee.ErrPinIncorrect)
	})

	t.Run("malformed pins never reach the store", func(t *testing.T) {
		svc, id := setup(t)
		assert.Error(t, svc.SetPin(ctx, id, "12345"))
		assert.Error(t, svc.SetPin(ctx, id, "12a4"))
	})

	t.Run("an employee may keep their own pin on change", func(t *testing.T) {
		svc, id := setup(t)
		require.NoError(t, svc.SetPin(ctx, id, "1234"))
		assert.NoError(t, svc.ChangePin(ctx, id, employee.ChangePinRequest{CurrentPin: "1234", NewPin: "1234"}))
	})
}

func TestCredentialEnrollment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, string) {
		t.Helper()
		svc := NewService(newFakeRepo())
		created, err := svc.Create(ctx, createRequest())
		require.NoError(t, err)
		return svc, created.ID
	}

	t.Run("begin issues a fresh hex challenge", func(t *testing.T) {
		svc, id := setup(t)
		challenge, err := svc.BeginCredentialEnrollment(ctx, id)
		require.NoError(t, err)

		raw, err := hex.DecodeString(challenge)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	})

	t.Run("complete binds the credential", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.BeginCredentialEnrollment(ctx, id)
		require.NoError(t, err)

		err = svc.CompleteCredentialEnrollment(ctx, id, employee.CompleteCredentialEnrollmentRequest{
			CredentialID: "deadbeef",
			PublicKey:    "cafe",
		})
		require.NoError(t, err)

		emp, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, emp.HasCredentialEnrolled())
	})

	t.Run("complete without a pending challenge is refused", func(t *testing.T) {
		svc, id := setup(t)
		err := svc.CompleteCredentialEnrollment(ctx, id, employee.CompleteCredentialEnrollmentRequest{
			CredentialID: "deadbeef",
			PublicKey:    "cafe",
		})
		assert.ErrorIs(t, err, employee.ErrNoPendingChallenge)
	})

	t.Run("the challenge is consumed either way", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.BeginCredentialEnrollment(ctx, id)
		require.NoError(t, err)

		err = svc.CompleteCredentialEnrollment(ctx, id, employee.CompleteCredentialEnrollmentRequest{
			CredentialID: "deadbeef",
			PublicKey:    "cafe",
		})
		require.NoError(t, err)

		err = svc.CompleteCredentialEnrollment(ctx, id, employee.CompleteCredentialEnrollmentRequest{
			CredentialID: "deadbeef",
			PublicKey:    "cafe",
		})
		assert.ErrorIs(t, err, employee.ErrNoPendingChallenge)
	})

	t.Run("a credential bound to someone else is refused", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		first, err := svc.Create(ctx, createRequest())
		require.NoError(t, err)
		other := createRequest()
		other.EmployeeID = "G-002"
		second, err := svc.Create(ctx, other)
		require.NoError(t, err)

		_, err = svc.BeginCredentialEnrollment(ctx, first.ID)
		require.NoError(t, err)
		require.NoError(t, svc.CompleteCredentialEnrollment(ctx, first.ID, employee.CompleteCredentialEnrollmentRequest{
			CredentialID: "deadbeef",
			PublicKey:    "cafe",
		}))

		_, err = svc.BeginCredentialEnrollment(ctx, second.ID)
		require.NoError(t, err)
		err = svc.CompleteCredentialEnrollment(ctx, second.ID, employee.CompleteCredentialEnrollmentRequest{
			CredentialID: "deadbeef",
			PublicKey:    "0123",
		})
		assert.ErrorIs(t, err, employee.ErrCredentialTaken)
	})
}

func TestChallengeStore(t *testing.T) {
	t.Run("expired challenges count as absent", func(t *testing.T) {
		store := newChallengeStore(-1 * time.Second)
		store.put("emp-1", []byte{1, 2, 3})
		_, ok := store.take("emp-1")
		assert.False(t, ok)
	})

	t.Run("a new enrollment replaces the outstanding challenge", func(t *testing.T) {
		store := newChallengeStore(time.Minute)
		store.put("emp-1", []byte{1})
		store.put("emp-1", []byte{2})
		got, ok := store.take("emp-1")
		require.True(t, ok)
		assert.Equal(t, []byte{2}, got)
	})
}
