package models

import (
	"errors"
	"regexp"
	"strings"
)

// UserRole is the numeric role code issued by the backend
type UserRole int

const (
	RoleUser    UserRole = 2001
	RoleManager UserRole = 3276
	RoleAdmin   UserRole = 1995
)

// User represents a storefront account as returned by the backend
type User struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// IsValid reports whether the role is one of the known codes
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// String returns the human-readable role name
func (r UserRole) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// CanAccessDashboard reports whether the role may open any dashboard screen
func (r UserRole) CanAccessDashboard() bool {
	return r == RoleManager || r == RoleAdmin
}

// CanManageUsers reports whether the role may create or edit user accounts.
// Managers can view the users table but not modify it.
func (r UserRole) CanManageUsers() bool {
	return r == RoleAdmin
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user data
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if !emailRegex.MatchString(u.Email) {
		return errors.New("invalid email format")
	}
	if !u.Role.IsValid() {
		return errors.New("invalid user role")
	}
	return nil
}
