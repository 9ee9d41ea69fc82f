package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func TestNewShiftWindow(t *testing.T) {
	t.Run("same day shift", func(t *testing.T) {
		w, err := NewShiftWindow("08:00", "17:00", day(12, 0))
		require.NoError(t, err)
		assert.Equal(t, day(8, 0), w.Start)
		assert.Equal(t, day(17, 0), w.End)
	})

	t.Run("overnight shift rolls end to next day", func(t *testing.T) {
		w, err := NewShiftWindow("22:00", "06:00", day(23, 0))
		require.NoError(t, err)
		assert.Equal(t, day(22, 0), w.Start)
		assert.Equal(t, day(6, 0).AddDate(0, 0, 1), w.End)
	})

	t.Run("end equal to start also rolls over", func(t *testing.T) {
		w, err := NewShiftWindow("08:00", "08:00", day(12, 0))
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, w.End.Sub(w.Start))
	})

	t.Run("malformed boundaries rejected", func(t *testing.T) {
		for _, bad := range []string{"8am", "25:00", "08:61", "", "08"} {
			_, err := NewShiftWindow(bad, "17:00", day(0, 0))
			assert.Error(t, err, bad)
		}
	})
}

func TestShiftWindowProgress(t *testing.T) {
	w, err := NewShiftWindow("08:00", "17:00", day(0, 0))
	require.NoError(t, err)

	login := day(8, 0)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"at login", day(8, 0), 0},
		{"halfway", day(12, 30), 0.5},
		{"at shift end", day(17, 0), 1},
		{"past shift end clamps to one", day(20, 0), 1},
		{"before login clamps to zero", day(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, w.Progress(login, tt.now), 1e-9)
		})
	}
}

func TestShiftWindowOvertime(t *testing.T) {
	w, err := NewShiftWindow("08:00", "17:00", day(0, 0))
	require.NoError(t, err)

	assert.Zero(t, w.Overtime(day(16, 0)))
	assert.Zero(t, w.Overtime(day(17, 0)))
	assert.InDelta(t, 2.5, w.Overtime(day(19, 30)), 1e-9)
}

func TestPairLogs(t *testing.T) {
	in := func(ts time.Time) Log { return Log{Type: TypeIn, Timestamp: ts} }
	out := func(ts time.Time) Log { return Log{Type: TypeOut, Timestamp: ts} }

	t.Run("adjacent in out pairs, most recent first", func(t *testing.T) {
		logs := []Log{
			in(day(8, 0)), out(day(17, 0)),
			in(day(8, 0).AddDate(0, 0, 1)), out(day(17, 0).AddDate(0, 0, 1)),
		}
		pairs, open := PairLogs(logs)
		require.Len(t, pairs, 2)
		assert.Nil(t, open)
		assert.Equal(t, day(8, 0).AddDate(0, 0, 1), pairs[0].In)
		assert.Equal(t, day(8, 0), pairs[1].In)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		logs := []Log{out(day(17, 0)), in(day(8, 0))}
		pairs, open := PairLogs(logs)
		require.Len(t, pairs, 1)
		assert.Nil(t, open)
		assert.Equal(t, 9*time.Hour, pairs[0].Duration())
	})

	t.Run("dangling in stays open", func(t *testing.T) {
		logs := []Log{in(day(8, 0)), out(day(17, 0)), in(day(8, 0).AddDate(0, 0, 1))}
		pairs, open := PairLogs(logs)
		require.Len(t, pairs, 1)
		require.NotNil(t, open)
		assert.Equal(t, day(8, 0).AddDate(0, 0, 1), open.Timestamp)
	})

	t.Run("in never pairs with non-adjacent out", func(t *testing.T) {
		// in, in, out: the first in is orphaned; only the second pairs.
		logs := []Log{
			in(day(8, 0)),
			in(day(9, 0)),
			out(day(17, 0)),
		}
		pairs, open := PairLogs(logs)
		require.Len(t, pairs, 1)
		assert.Equal(t, day(9, 0), pairs[0].In)
		require.NotNil(t, open)
		assert.Equal(t, day(8, 0), open.Timestamp)
	})

	t.Run("leading out is skipped", func(t *testing.T) {
		logs := []Log{out(day(7, 0)), in(day(8, 0)), out(day(17, 0))}
		pairs, open := PairLogs(logs)
		require.Len(t, pairs, 1)
		assert.Nil(t, open)
	})

	t.Run("empty input", func(t *testing.T) {
		pairs, open := PairLogs(nil)
		assert.Empty(t, pairs)
		assert.Nil(t, open)
	})
}

func TestDayBounds(t *testing.T) {
	ts := day(13, 45)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2026, 3, 9, 23, 59, 59, 999e6, time.UTC), EndOfDay(ts))
}
