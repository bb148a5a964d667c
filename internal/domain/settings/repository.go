package settings

import (
	"context"
	"errors"
)

var ErrSettingsNotFound = errors.New("app settings not found")

// SettingsRepository persists the singleton settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (AppSettings, error)
	Upsert(ctx context.Context, s AppSettings) error
}
