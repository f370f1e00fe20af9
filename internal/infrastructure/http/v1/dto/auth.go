package dto

import (
	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/domain/users"
)

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a new user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// ToUser converts the request to a domain user. Password travels separately.
func (r *RegisterRequest) ToUser() *users.User {
	role := r.Role
	if role == "" {
		role = usercontext.RoleStaff
	}
	return &users.User{
		Email: r.Email,
		Name:  r.Name,
		Role:  role,
	}
}
