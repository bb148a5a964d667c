package attendance

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusPending  SessionStatus = "pending"
	SessionStatusApproved SessionStatus = "approved"
	SessionStatusRejected SessionStatus = "rejected"
)

// Session is one day's sign-in/out record for an employee.
type Session struct {
	ID         string
	EmployeeID string

	// Date is the work day the session belongs to, not a timestamp.
	Date time.Time

	SignInAt        time.Time
	SignInLatitude  float64
	SignInLongitude float64
	SignInPhotoURL  string

	SignOutAt        *time.Time
	SignOutLatitude  *float64
	SignOutLongitude *float64

	Status     SessionStatus
	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// IsOpen reports whether the session has no sign-out yet.
func (s *Session) IsOpen() bool {
	return s.SignOutAt == nil
}

// Decided reports whether an approver already settled the session.
func (s *Session) Decided() bool {
	return s.Status == SessionStatusApproved || s.Status == SessionStatusRejected
}

// WorkedHours returns the hours between sign-in and sign-out, or 0 when the
// session was never signed out.
func (s *Session) WorkedHours() float64 {
	if s.SignOutAt == nil {
		return 0
	}
	return s.SignOutAt.Sub(s.SignInAt).Hours()
}
