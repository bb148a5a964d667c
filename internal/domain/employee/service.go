package employee

import (
	"context"
)

// EmployeeService defines business logic for employee administration
type EmployeeService interface {
	// Enroll registers a new employee (admin only)
	Enroll(ctx context.Context, req EnrollRequest) (EmployeeResponse, error)

	// List retrieves all employees (admin/manager/hr)
	List(ctx context.Context) ([]EmployeeResponse, error)

	// AssignManager reassigns the manager of a single employee (admin only)
	AssignManager(ctx context.Context, req AssignManagerRequest) error

	// BulkAssignManager reassigns the manager of several employees (admin only)
	BulkAssignManager(ctx context.Context, req BulkAssignManagerRequest) error
}
