package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RolePrincipal  UserRole = "PRINCIPAL"
	RoleTeacher    UserRole = "TEACHER"
	RoleStudent    UserRole = "STUDENT"
	RoleParent     UserRole = "PARENT"
)

// IsAdminFamily reports whether the role carries unrestricted schedule
// visibility. Principal is read-only elsewhere but sees everything.
func (r UserRole) IsAdminFamily() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RolePrincipal:
		return true
	default:
		return false
	}
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
