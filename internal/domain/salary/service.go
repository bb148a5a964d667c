package salary

import (
	"context"

	"github.com/vtc-hr/attendance-backend-go/internal/pkg/validator"
)

// SlipRequest asks for one employee's slip for one month.
type SlipRequest struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"` // YYYY-MM
}

func (r *SlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidMonth(r.Period); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SalaryService defines business logic for salary slip generation
type SalaryService interface {
	// GenerateSlip computes the slip for the requested employee and month
	// from that month's approved sessions (admin/hr)
	GenerateSlip(ctx context.Context, req SlipRequest) (Slip, error)
}
