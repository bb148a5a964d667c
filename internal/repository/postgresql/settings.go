package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/settings"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements settings.SettingsRepository. The table holds a single row
// keyed by a constant id.
func (r *settingsRepository) Get(ctx context.Context) (settings.AppSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_name, primary_color, updated_at
		FROM app_settings
		WHERE id = 1
	`

	var s settings.AppSettings
	err := q.QueryRow(ctx, query).Scan(&s.CompanyName, &s.PrimaryColor, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.AppSettings{}, settings.ErrSettingsNotFound
		}
		return settings.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.AppSettings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO app_settings (id, company_name, primary_color)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET company_name = EXCLUDED.company_name,
			primary_color = EXCLUDED.primary_color,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, s.CompanyName, s.PrimaryColor); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
