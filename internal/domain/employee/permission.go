package employee

type Permission string

const (
	// Attendance
	PermissionAttendanceSign     Permission = "attendance.sign"
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"
	PermissionAttendanceApprove  Permission = "attendance.approve"
	PermissionAttendanceOnBehalf Permission = "attendance.on_behalf"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Employee administration
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Holidays and settings
	PermissionHolidayManage  Permission = "holiday.manage"
	PermissionSettingsManage Permission = "settings.manage"

	// Salary
	PermissionSalaryGenerate Permission = "salary.generate"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceSign,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAttendanceOnBehalf,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionHolidayManage,
		PermissionSettingsManage,
		PermissionSalaryGenerate,
	},
	RoleManager: {
		// Manager approves for the employees they manage; the managed-set
		// check happens in the services, not here.
		PermissionAttendanceSign,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAttendanceOnBehalf,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionEmployeeViewAll,
	},
	RoleHR: {
		PermissionAttendanceSign,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionEmployeeViewAll,
		PermissionSalaryGenerate,
	},
	RoleEmployee: {
		PermissionAttendanceSign,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
	},
	RoleTempVendor: {
		PermissionAttendanceSign,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// CanApprove reports whether the role may decide attendance sessions and
// leave requests at all. Managers are additionally scoped to their managed set.
func CanApprove(role Role) bool {
	return role == RoleAdmin || role == RoleManager
}
