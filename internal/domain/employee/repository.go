package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	// Create inserts a new employee record
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves an employee by email, used for login
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// List retrieves all employees, newest first
	List(ctx context.Context) ([]Employee, error)

	// UpdateManager reassigns the manager of a single employee
	UpdateManager(ctx context.Context, employeeID string, managerID *string) error

	// BulkUpdateManager reassigns the manager of several employees at once
	BulkUpdateManager(ctx context.Context, employeeIDs []string, managerID string) error

	// ListManagedIDs returns the IDs of every employee directly or
	// indirectly managed by the given manager
	ListManagedIDs(ctx context.Context, managerID string) ([]string, error)
}
