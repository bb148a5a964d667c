package attendance

import (
	"context"
)

// SessionService defines business logic for attendance operations
type SessionService interface {
	// SignIn opens a new pending session for the authenticated employee and
	// triggers compensatory accrual for the sign-in date (best effort)
	SignIn(ctx context.Context, req SignInRequest) (SessionResponse, error)

	// SignOut closes the authenticated employee's open session for today
	SignOut(ctx context.Context, req SignOutRequest) (SessionResponse, error)

	// Decide approves or rejects a session (manager over managed set, admin
	// over all). Repeating the same decision is a no-op; flipping an already
	// decided session is a conflict.
	Decide(ctx context.Context, req DecideSessionRequest) (SessionResponse, error)

	// CreateOnBehalf records a pre-approved sign-in or closes today's open
	// approved session for another employee (manager/admin)
	CreateOnBehalf(ctx context.Context, req OnBehalfRequest) (SessionResponse, error)

	// List retrieves sessions visible to the caller: admin/hr see all,
	// managers see their managed set
	List(ctx context.Context, filter SessionFilter) (ListSessionsResponse, error)

	// GetMySessions retrieves the authenticated employee's own sessions
	GetMySessions(ctx context.Context, filter MySessionFilter) (ListSessionsResponse, error)
}
