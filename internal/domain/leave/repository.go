package leave

import (
	"context"
)

// BalanceRepository - interface for the leave_balances table
type BalanceRepository interface {
	// Get retrieves the employee's ledger row, or ErrBalanceNotFound
	Get(ctx context.Context, employeeID string) (Balance, error)

	// Create inserts a new ledger row (lazy initialization)
	Create(ctx context.Context, balance Balance) (Balance, error)

	// Update persists the counters of an existing row
	Update(ctx context.Context, balance Balance) error
}

// RequestRepository - interface for the leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// Update persists approval mutations
	Update(ctx context.Context, request Request) error

	// ListByEmployee retrieves an employee's own requests, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// List retrieves requests with an optional status filter. When
	// employeeIDs is non-nil the result is restricted to those employees.
	List(ctx context.Context, status *RequestStatus, employeeIDs []string) ([]Request, error)
}
