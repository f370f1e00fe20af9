// Package category provides the product category catalog.
package category

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
)

// Category groups products for browsing and reporting. Products may be
// left uncategorized.
type Category struct {
	ID          id.ID  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a category with generated ID.
func New(name string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        id.New(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks entity invariants.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp.
func (c *Category) Touch() {
	c.UpdatedAt = time.Now().UTC()
}
