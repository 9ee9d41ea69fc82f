package settings

import (
	"context"
)

// Repository persists the singleton settings row. Get returns defaults
// when nothing has been saved yet.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}
