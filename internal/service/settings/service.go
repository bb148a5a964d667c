package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepo,
	}
}

func actorRoleFromContext(ctx context.Context) (employee.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", fmt.Errorf("role not found in token")
	}

	return employee.Role(roleStr), nil
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	stored, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			stored = settings.Defaults()
		} else {
			return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
		}
	}

	return settings.SettingsResponse{
		CompanyName:  stored.CompanyName,
		PrimaryColor: stored.PrimaryColor,
	}, nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	role, err := actorRoleFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	if !employee.HasPermission(role, employee.PermissionSettingsManage) {
		return settings.SettingsResponse{}, employee.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	updated := settings.AppSettings{
		CompanyName:  req.CompanyName,
		PrimaryColor: req.PrimaryColor,
	}
	if err := s.SettingsRepository.Upsert(ctx, updated); err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings.SettingsResponse{
		CompanyName:  updated.CompanyName,
		PrimaryColor: updated.PrimaryColor,
	}, nil
}
