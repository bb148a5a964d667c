package leave

import (
	"context"
	"time"
)

// BalanceService is the leave balance ledger. It is the single writer of
// balance counters; all mutations go through Credit and Debit.
type BalanceService interface {
	// Get returns the employee's counters, lazily initialized to the default
	// allotment if the row does not exist yet
	Get(ctx context.Context, employeeID string) (Balance, error)

	// Credit adds amount (> 0) to the named counter
	Credit(ctx context.Context, employeeID string, category Category, amount int) (Balance, error)

	// Debit subtracts amount (> 0) from the named counter, failing with
	// ErrInsufficientBalance instead of going below zero
	Debit(ctx context.Context, employeeID string, category Category, amount int) (Balance, error)

	// AccrueCompensatory credits one compensatory day when date is a company
	// holiday. firstSessionOfDay guards against double accrual for the same
	// work day.
	AccrueCompensatory(ctx context.Context, employeeID string, date time.Time, firstSessionOfDay bool) error
}

// RequestService is the leave request workflow.
type RequestService interface {
	// Submit creates a pending request after the admission check
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// Decide approves or rejects a request (manager over managed set, admin
	// over all). Repeating the same decision is a no-op; flipping an already
	// decided request is a conflict. No balance mutation happens on either
	// transition.
	Decide(ctx context.Context, req DecideRequest) (RequestResponse, error)

	// GetMyBalance returns the authenticated employee's counters
	GetMyBalance(ctx context.Context) (BalanceResponse, error)

	// GetMyRequests returns the authenticated employee's own requests
	GetMyRequests(ctx context.Context) ([]RequestResponse, error)

	// List retrieves requests visible to the caller: admin/hr see all,
	// managers see their managed set
	List(ctx context.Context, status *RequestStatus) ([]RequestResponse, error)
}
