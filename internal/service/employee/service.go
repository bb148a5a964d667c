package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
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

// Enroll implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Enroll(ctx context.Context, req employee.EnrollRequest) (employee.EmployeeResponse, error) {
	role, err := actorRoleFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !employee.HasPermission(role, employee.PermissionEmployeeManage) {
		return employee.EmployeeResponse{}, employee.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByEmail(ctx, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, *req.ManagerID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         employee.Role(req.Role),
		ManagerID:    req.ManagerID,
		PasswordHash: string(hash),
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return toEmployeeResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	role, err := actorRoleFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !employee.HasPermission(role, employee.PermissionEmployeeViewAll) {
		return nil, employee.ErrAdminRequired
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}
	return responses, nil
}

// AssignManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignManager(ctx context.Context, req employee.AssignManagerRequest) error {
	role, err := actorRoleFromContext(ctx)
	if err != nil {
		return err
	}
	if !employee.HasPermission(role, employee.PermissionEmployeeManage) {
		return employee.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return err
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, *req.ManagerID); err != nil {
			return err
		}
	}

	if err := s.EmployeeRepository.UpdateManager(ctx, req.EmployeeID, req.ManagerID); err != nil {
		return fmt.Errorf("failed to assign manager: %w", err)
	}
	return nil
}

// BulkAssignManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) BulkAssignManager(ctx context.Context, req employee.BulkAssignManagerRequest) error {
	role, err := actorRoleFromContext(ctx)
	if err != nil {
		return err
	}
	if !employee.HasPermission(role, employee.PermissionEmployeeManage) {
		return employee.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return err
	}

	if err := s.EmployeeRepository.BulkUpdateManager(ctx, req.EmployeeIDs, req.ManagerID); err != nil {
		return fmt.Errorf("failed to assign manager: %w", err)
	}
	return nil
}

// checkManager verifies the referenced manager exists and actually holds the
// manager role.
func (s *EmployeeServiceImpl) checkManager(ctx context.Context, managerID string) error {
	manager, err := s.EmployeeRepository.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrManagerNotFound
		}
		return err
	}
	if manager.Role != employee.RoleManager {
		return employee.ErrNotAManager
	}
	return nil
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:          emp.ID,
		FullName:    emp.FullName,
		Email:       emp.Email,
		Role:        string(emp.Role),
		ManagerID:   emp.ManagerID,
		ManagerName: emp.ManagerName,
		CreatedAt:   emp.CreatedAt.Format(time.RFC3339),
	}
}
