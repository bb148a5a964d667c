package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access methods for attendance sessions.
type SessionRepository interface {
	// Create inserts a new session. The store enforces at most one open
	// session per employee per day; a violation surfaces as
	// ErrOpenSessionExists.
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (Session, error)

	// GetOpenSession retrieves the employee's open session for the given
	// work day, or ErrNoOpenSession
	GetOpenSession(ctx context.Context, employeeID string, date time.Time) (Session, error)

	// GetOpenApprovedSession retrieves the most recent open approved session
	// for the given work day, used by on-behalf sign-out
	GetOpenApprovedSession(ctx context.Context, employeeID string, date time.Time) (Session, error)

	// HasSessionOn reports whether any session exists for the employee on the
	// given work day, open or closed
	HasSessionOn(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// Update persists sign-out or approval mutations
	Update(ctx context.Context, session Session) error

	// List retrieves sessions with filters and pagination. When employeeIDs
	// is non-nil the result is restricted to those employees.
	List(ctx context.Context, filter SessionFilter, employeeIDs []string) ([]Session, int64, error)

	// ListByEmployee retrieves an employee's own sessions, newest first
	ListByEmployee(ctx context.Context, employeeID string, filter MySessionFilter) ([]Session, int64, error)

	// ListApprovedInRange retrieves approved sessions whose work day falls in
	// [from, to), used by the salary computation
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Session, error)
}
