package models

import (
	"strings"
	"time"

	"github.com/gotravel/gotravel-backend/internal/errs"
)

// Role represents a user's access level
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// User represents a customer or back-office account. TotalBookings and
// TotalSpent are denormalized projections incremented exactly once per
// verified booking payment.
type User struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Email         string     `json:"email" db:"email"`
	Phone         *string    `json:"phone,omitempty" db:"phone"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	Role          Role       `json:"role" db:"role"`
	IsVerified    bool       `json:"is_verified" db:"is_verified"`
	IsBlocked     bool       `json:"is_blocked" db:"is_blocked"`
	City          *string    `json:"city,omitempty" db:"city"`
	TotalBookings int        `json:"total_bookings" db:"total_bookings"`
	TotalSpent    float64    `json:"total_spent" db:"total_spent"`
	LastLogin     *time.Time `json:"last_login,omitempty" db:"last_login"`
	LastDevice    *string    `json:"last_device,omitempty" db:"last_device"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user has back-office access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// RegisterRequest represents a signup submission
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password" binding:"required"`
}

// Validate validates the signup fields.
func (r *RegisterRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return errs.Validation("invalid email address")
	}
	if len(r.Password) < 8 {
		return errs.Validation("password must be at least 8 characters")
	}
	return nil
}

// LoginRequest represents a login submission
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile edit
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	City  *string `json:"city,omitempty"`
}

// UserFilter narrows admin user lists.
type UserFilter struct {
	Role   Role
	Search string
	Page   int
	Limit  int
}
