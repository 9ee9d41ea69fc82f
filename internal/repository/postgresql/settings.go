package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sabigold/presence-backend-go/internal/domain/settings"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
)

// settingsRowID keys the singleton configuration row.
const settingsRowID = "main"

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT shift_start, shift_end, daily_rate, overtime_rate, annual_leave_days
		FROM app_settings
		WHERE id = $1
	`

	var s settings.Settings
	var dailyRate, overtimeRate string
	err := q.QueryRow(ctx, query, settingsRowID).Scan(
		&s.ShiftStart,
		&s.ShiftEnd,
		&dailyRate,
		&overtimeRate,
		&s.AnnualLeaveDays,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Defaults(), nil
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if s.DailyRate, err = decimal.NewFromString(dailyRate); err != nil {
		return settings.Settings{}, fmt.Errorf("malformed daily rate in store: %w", err)
	}
	if s.OvertimeRate, err = decimal.NewFromString(overtimeRate); err != nil {
		return settings.Settings{}, fmt.Errorf("malformed overtime rate in store: %w", err)
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s settings.Settings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO app_settings (id, shift_start, shift_end, daily_rate, overtime_rate, annual_leave_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			shift_start = EXCLUDED.shift_start,
			shift_end = EXCLUDED.shift_end,
			daily_rate = EXCLUDED.daily_rate,
			overtime_rate = EXCLUDED.overtime_rate,
			annual_leave_days = EXCLUDED.annual_leave_days,
			updated_at = EXCLUDED.updated_at
	`

	_, err := q.Exec(ctx, query,
		settingsRowID,
		s.ShiftStart,
		s.ShiftEnd,
		s.DailyRate.String(),
		s.OvertimeRate.String(),
		s.AnnualLeaveDays,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
