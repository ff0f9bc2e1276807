package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=2"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserInput struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=2"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=student department admin"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ResetPasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleDepartment UserRole = "department"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleDepartment, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole checks an exact capability. The portal roles are disjoint:
// an admin does not see student views and vice versa.
func (u *User) HasRole(requiredRole UserRole) bool {
	return u.Role == requiredRole
}
