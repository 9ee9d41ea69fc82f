package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/notification"
	"github.com/sabigold/presence-backend-go/internal/pkg/sse"
)

type service struct {
	repo notification.Repository
	hub  *sse.Hub
	now  func() time.Time
}

func NewService(repo notification.Repository, hub *sse.Hub) notification.Service {
	return &service{repo: repo, hub: hub, now: time.Now}
}

// Notify persists the alert and broadcasts it to dashboard subscribers.
// Persistence is the source of truth; the broadcast is best effort.
func (s *service) Notify(ctx context.Context, n notification.Notification) error {
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: sse.TopicNotifications, Data: created})
	return nil
}

func (s *service) ListUnread(ctx context.Context) ([]notification.Notification, error) {
	return s.repo.ListUnread(ctx)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}
