package settings

import (
	"regexp"

	"github.com/vtc-hr/attendance-backend-go/internal/pkg/validator"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type UpdateSettingsRequest struct {
	CompanyName  string `json:"company_name"`
	PrimaryColor string `json:"primary_color"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}

	if !hexColorRegex.MatchString(r.PrimaryColor) {
		errs = append(errs, validator.ValidationError{
			Field:   "primary_color",
			Message: "primary_color must be a hex color like #3B82F6",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	CompanyName  string `json:"company_name"`
	PrimaryColor string `json:"primary_color"`
}
