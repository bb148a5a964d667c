package leave

import "errors"

var (
	ErrRequestNotFound       = errors.New("leave request not found")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrRequestAlreadyDecided = errors.New("leave request has already been approved or rejected")
	ErrInvalidDecision       = errors.New("decision must be approved or rejected")
	ErrInvalidCategory       = errors.New("unknown leave category")
	ErrInvalidAmount         = errors.New("ledger amount must be positive")
	ErrBalanceNotFound       = errors.New("leave balance not found")
)
