package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/domain/salary"
)

type SalaryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	sessionRepo  attendance.SessionRepository
}

func NewSalaryService(
	employeeRepo employee.EmployeeRepository,
	sessionRepo attendance.SessionRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		employeeRepo: employeeRepo,
		sessionRepo:  sessionRepo,
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

// GenerateSlip implements salary.SalaryService. Only approved sessions of the
// requested month feed the computation.
func (s *SalaryServiceImpl) GenerateSlip(ctx context.Context, req salary.SlipRequest) (salary.Slip, error) {
	role, err := actorRoleFromContext(ctx)
	if err != nil {
		return salary.Slip{}, err
	}
	if !employee.HasPermission(role, employee.PermissionSalaryGenerate) {
		return salary.Slip{}, employee.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return salary.Slip{}, err
	}

	from, _ := time.Parse("2006-01", req.Period)
	to := from.AddDate(0, 1, 0)

	var sessions []attendance.Session

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := s.employeeRepo.GetByID(gCtx, req.EmployeeID)
		return err
	})

	g.Go(func() error {
		var err error
		sessions, err = s.sessionRepo.ListApprovedInRange(gCtx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to load attendance sessions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return salary.Slip{}, err
	}

	return salary.Compute(req.EmployeeID, req.Period, sessions), nil
}
