package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// SettingsRepository provides access to the singleton project_setting row.
type SettingsRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// WithTx returns a new SettingsRepository scoped to the provided transaction.
func (r *SettingsRepository) WithTx(tx *sql.Tx) *SettingsRepository {
	return &SettingsRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SettingsRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetSettings returns the stored project settings.
func (r *SettingsRepository) GetSettings(ctx context.Context) (model.ProjectSettings, error) {
	query := `
		SELECT horizon_years, discount_rate, default_data_loaded, updated_at
		FROM project_setting
		WHERE id = 1
	`

	var (
		s         model.ProjectSettings
		loaded    int
		updatedAt string
	)
	err := r.getQuerier().QueryRowContext(ctx, query).Scan(
		&s.HorizonYears,
		&s.DiscountRatePct,
		&loaded,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProjectSettings{}, apperrors.ErrSettingsNotFound
		}
		return model.ProjectSettings{}, fmt.Errorf("failed to query project settings: %w", err)
	}

	s.DefaultDataLoaded = loaded != 0
	s.UpdatedAt, err = ParseTime(updatedAt)
	if err != nil {
		return model.ProjectSettings{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return s, nil
}

// UpdateSettings overwrites the stored project settings and stamps UpdatedAt.
func (r *SettingsRepository) UpdateSettings(ctx context.Context, s *model.ProjectSettings) error {
	s.UpdatedAt = time.Now().UTC()

	loaded := 0
	if s.DefaultDataLoaded {
		loaded = 1
	}

	query := `
		UPDATE project_setting
		SET horizon_years = ?, discount_rate = ?, default_data_loaded = ?, updated_at = ?
		WHERE id = 1
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		s.HorizonYears,
		s.DiscountRatePct,
		loaded,
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to update project settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrSettingsNotFound
	}

	return nil
}
