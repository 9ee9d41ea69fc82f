package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sabigold/presence-backend-go/internal/domain/settings"
)

type Service struct {
	repo settings.Repository
}

func NewService(repo settings.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (settings.Settings, error) {
	return s.repo.Get(ctx)
}

// Update replaces the singleton settings row. Changes apply to shift
// windows computed after the write; historical pairings are untouched.
func (s *Service) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.Settings, error) {
	if err := req.Validate(); err != nil {
		return settings.Settings{}, err
	}

	updated := settings.Settings{
		ShiftStart:      req.ShiftStart,
		ShiftEnd:        req.ShiftEnd,
		DailyRate:       req.DailyRate,
		OvertimeRate:    req.OvertimeRate,
		AnnualLeaveDays: req.AnnualLeaveDays,
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	slog.Info("Settings updated", "shift_start", updated.ShiftStart, "shift_end", updated.ShiftEnd)
	return updated, nil
}
