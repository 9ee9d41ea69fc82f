package attendance

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ShiftWindow is the configured shift projected onto a concrete
// calendar day.
type ShiftWindow struct {
	Start time.Time
	End   time.Time
}

// NewShiftWindow anchors the "HH:mm" shift boundaries on the calendar
// day of ref, in ref's location. A shift whose end is numerically at or
// before its start crosses midnight, so the end rolls to the next day.
func NewShiftWindow(shiftStart, shiftEnd string, ref time.Time) (ShiftWindow, error) {
	start, err := atClockTime(shiftStart, ref)
	if err != nil {
		return ShiftWindow{}, fmt.Errorf("invalid shift start: %w", err)
	}
	end, err := atClockTime(shiftEnd, ref)
	if err != nil {
		return ShiftWindow{}, fmt.Errorf("invalid shift end: %w", err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return ShiftWindow{Start: start, End: end}, nil
}

// Progress reports how far through the shift an employee who logged in
// at login is at now, clamped to [0, 1]. The denominator is the
// configured shift length, not a fixed figure.
func (w ShiftWindow) Progress(login, now time.Time) float64 {
	total := w.End.Sub(w.Start)
	if total <= 0 {
		return 0
	}
	p := float64(now.Sub(login)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Overtime returns the hours worked past the shift end for a clock-out
// at out. Zero when the employee left at or before the shift end.
func (w ShiftWindow) Overtime(out time.Time) float64 {
	if !out.After(w.End) {
		return 0
	}
	return out.Sub(w.End).Hours()
}

// atClockTime places an "HH:mm" wall-clock time on ref's calendar day.
func atClockTime(clock string, ref time.Time) (time.Time, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("malformed clock time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("malformed clock time %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("malformed clock time %q", clock)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location()), nil
}

// PairLogs scans an employee's logs in ascending time order and pairs
// each "in" with an immediately following "out". An "in" with no
// adjacent "out" stays open and is never matched to a later,
// non-adjacent "out". Pairs come back most recent first, with the
// dangling login (if any) returned separately.
func PairLogs(logs []Log) (pairs []Pair, open *Log) {
	sorted := make([]Log, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	for i := 0; i < len(sorted); i++ {
		if sorted[i].Type != TypeIn {
			continue
		}
		if i+1 < len(sorted) && sorted[i+1].Type == TypeOut {
			pairs = append(pairs, Pair{In: sorted[i].Timestamp, Out: sorted[i+1].Timestamp})
			i++ // out consumed
			continue
		}
		if open == nil {
			l := sorted[i]
			open = &l
		}
	}

	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return pairs, open
}

// EndOfDay returns 23:59:59.999 on t's calendar day, the timestamp the
// reconciliation job stamps on synthetic logouts.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999e6, t.Location())
}

// StartOfDay returns midnight on t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
