package attendance

import "errors"

// Attendance domain errors
var (
	// Sign-in / sign-out errors
	ErrOpenSessionExists = errors.New("an open attendance session already exists for today")
	ErrNoOpenSession     = errors.New("no open attendance session found for today")

	// Approval errors
	ErrSessionNotFound       = errors.New("attendance session not found")
	ErrSessionAlreadyDecided = errors.New("attendance session has already been approved or rejected")
	ErrInvalidDecision       = errors.New("decision must be approved or rejected")
)
