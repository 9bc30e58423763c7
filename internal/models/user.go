package models

import "strings"

const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User as listed on the role management screen.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    string `json:"roles"`
}

// NormalizeRole strips the Spring-style ROLE_ prefix that registration uses.
func NormalizeRole(role string) string {
	return strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(role)), "ROLE_")
}

// IsKnownRole reports whether role is one an admin may assign.
func IsKnownRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
