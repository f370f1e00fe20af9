// Package users provides the user catalog backing authentication.
package users

import (
	"context"
	"strings"
	"time"

	"stockmaster/internal/core/apperror"
	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/core/id"
)

type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("valid email is required").
			WithDetail("field", "email")
	}
	if u.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	switch u.Role {
	case usercontext.RoleAdmin, usercontext.RoleManager, usercontext.RoleStaff:
	default:
		return apperror.NewValidation("unknown role").
			WithDetail("field", "role").
			WithDetail("role", u.Role)
	}
	return nil
}
