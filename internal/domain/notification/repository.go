package notification

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListUnread(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Service is what other components use to raise alerts.
type Service interface {
	Notify(ctx context.Context, n Notification) error
	ListUnread(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
