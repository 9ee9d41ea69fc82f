package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/pkg/sse"
)

func newTestService(t *testing.T) (*Service, *fakeLeaveRepo) {
	t.Helper()
	repo := newFakeLeaveRepo()
	svc := NewService(repo, newFakeEmployeeRepo("emp-1", "emp-2"), fakeTransactor{}, sse.NewHub())
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreateLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a leave for an existing employee", func(t *testing.T) {
		svc, repo := newTestService(t)
		created, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: "emp-1",
			StartDate:  "2026-03-09",
			EndDate:    "2026-03-13",
			Type:       "Vacation",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, leave.TypeVacation, created.Type)
		assert.Equal(t, 5, created.DurationDays())
		assert.Len(t, repo.leaves, 1)
	})

	t.Run("unknown employee is rejected", func(t *testing.T) {
		svc, repo := newTestService(t)
		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: "ghost",
			StartDate:  "2026-03-09",
			EndDate:    "2026-03-13",
			Type:       "Sick",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.Empty(t, repo.leaves)
	})

	t.Run("invalid payload is rejected before any write", func(t *testing.T) {
		svc, repo := newTestService(t)
		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: "emp-1",
			StartDate:  "2026-03-13",
			EndDate:    "2026-03-09",
			Type:       "Holiday",
		})
		assert.Error(t, err)
		assert.Empty(t, repo.leaves)
	})
}

func TestSoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	l, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-1", Type: leave.TypeSick})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, []string{l.ID}))
	assert.True(t, repo.leaves[l.ID].Deleted)

	bin, err := svc.ListDeleted(ctx)
	require.NoError(t, err)
	assert.Len(t, bin, 1)

	active, err := svc.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, active, "soft-deleted leaves are hidden from listings")

	require.NoError(t, svc.Restore(ctx, []string{l.ID}))
	assert.False(t, repo.leaves[l.ID].Deleted)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses a leave that is not in the recycle bin", func(t *testing.T) {
		svc, repo := newTestService(t)
		l, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-1"})
		require.NoError(t, err)

		err = svc.Purge(ctx, []string{l.ID})
		assert.ErrorIs(t, err, leave.ErrNotDeleted)
		assert.Contains(t, repo.leaves, l.ID, "live record survives a refused purge")
	})

	t.Run("permanently removes deleted leaves", func(t *testing.T) {
		svc, repo := newTestService(t)
		l, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-1", Deleted: true})
		require.NoError(t, err)

		require.NoError(t, svc.Purge(ctx, []string{l.ID}))
		assert.NotContains(t, repo.leaves, l.ID)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.Purge(ctx, []string{"ghost"}), leave.ErrLeaveNotFound)
	})
}

func TestPurgeAll(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	_, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-1", Deleted: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, leave.Leave{EmployeeID: "emp-2", Deleted: true})
	require.NoError(t, err)
	kept, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-1"})
	require.NoError(t, err)

	purged, err := svc.PurgeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)
	assert.Len(t, repo.leaves, 1)
	assert.Contains(t, repo.leaves, kept.ID)

	purged, err = svc.PurgeAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged, "empty bin purges nothing")
}

// restoreDuringListRepo flips one recycle-bin entry back to live right
// after the bin is listed, the shape of a restore landing between the
// snapshot and the delete.
type restoreDuringListRepo struct {
	*fakeLeaveRepo
	restoreID string
}

func (r *restoreDuringListRepo) ListDeleted(ctx context.Context) ([]leave.Leave, error) {
	out, err := r.fakeLeaveRepo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	if l, ok := r.leaves[r.restoreID]; ok {
		l.Deleted = false
		r.leaves[r.restoreID] = l
	}
	return out, nil
}

func TestPurgeAllSkipsRestoredEntries(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeaveRepo()

	doomed, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-1", Deleted: true})
	require.NoError(t, err)
	saved, err := repo.Create(ctx, leave.Leave{EmployeeID: "emp-2", Deleted: true})
	require.NoError(t, err)

	svc := NewService(
		&restoreDuringListRepo{fakeLeaveRepo: repo, restoreID: saved.ID},
		newFakeEmployeeRepo("emp-1", "emp-2"),
		fakeTransactor{},
		sse.NewHub(),
	)

	purged, err := svc.PurgeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged, "only the still-deleted entry counts")
	assert.NotContains(t, repo.leaves, doomed.ID)
	assert.Contains(t, repo.leaves, saved.ID, "a restore that lands mid-purge wins")
}

func TestCurrentLeave(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	l, err := repo.Create(ctx, leave.Leave{
		EmployeeID: "emp-1",
		StartDate:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeSick,
	})
	require.NoError(t, err)

	got, ok, err := svc.CurrentLeave(ctx, "emp-1", time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, l.ID, got.ID)

	_, ok, err = svc.CurrentLeave(ctx, "emp-1", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.SoftDelete(ctx, []string{l.ID}))
	_, ok, err = svc.CurrentLeave(ctx, "emp-1", time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok, "recycle-bin entries never cover a day")
}
