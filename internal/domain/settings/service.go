package settings

import (
	"context"
)

// SettingsService defines business logic for application branding settings
type SettingsService interface {
	// Get returns the stored settings, or the defaults when nothing was saved
	Get(ctx context.Context) (SettingsResponse, error)

	// Update overwrites the settings (admin only)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
