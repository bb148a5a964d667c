package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrManagerNotFound    = errors.New("manager not found")
	ErrNotAManager        = errors.New("referenced employee does not have the manager role")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrApprovalRoleNeeded = errors.New("manager or admin role required")
	ErrOutsideManagedSet  = errors.New("employee is not managed by this manager")
)
