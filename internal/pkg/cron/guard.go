package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DayGuard is the once-per-calendar-day idempotency marker for the
// reconciliation job. It lives in Redis, outside the document store, so
// the at-most-once-per-day guarantee survives process restarts. The
// marker is written only after a run completes; a failed run leaves it
// unset and the next invocation retries the whole job.
type DayGuard struct {
	client    redis.Cmdable
	keyPrefix string
}

func NewDayGuard(client redis.Cmdable, keyPrefix string) *DayGuard {
	return &DayGuard{client: client, keyPrefix: keyPrefix}
}

func (g *DayGuard) key(day time.Time) string {
	return fmt.Sprintf("%s:%s", g.keyPrefix, day.Format("2006-01-02"))
}

// Completed reports whether the job already completed on the given
// calendar day.
func (g *DayGuard) Completed(ctx context.Context, day time.Time) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(day)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read day guard: %w", err)
	}
	return n > 0, nil
}

// MarkCompleted records a successful run via SET NX, a compare-and-set
// write: when two processes finish the same day's run concurrently,
// only the first write lands and the result is the same either way.
// Keys expire after two days; only today's value ever matters.
func (g *DayGuard) MarkCompleted(ctx context.Context, day time.Time) error {
	err := g.client.SetNX(ctx, g.key(day), time.Now().Format(time.RFC3339), 48*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to write day guard: %w", err)
	}
	return nil
}
