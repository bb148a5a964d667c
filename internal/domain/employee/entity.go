package employee

import (
	"time"
)

type Employee struct {
	ID           string
	FullName     string
	Email        string
	Role         Role
	ManagerID    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	ManagerName *string
}

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RoleTempVendor Role = "temp_vendor"
)

// ValidRoles lists every role accepted at enrollment.
var ValidRoles = []Role{RoleEmployee, RoleManager, RoleAdmin, RoleHR, RoleTempVendor}

func IsValidRole(r string) bool {
	for _, role := range ValidRoles {
		if string(role) == r {
			return true
		}
	}
	return false
}
