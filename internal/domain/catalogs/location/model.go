// Package location provides the location catalog.
//
// A location belongs to exactly one warehouse. Its type decides whether it
// participates in real stock accounting: INTERNAL, PRODUCTION and SCRAP
// locations carry ledger rows, while SUPPLIER and CUSTOMER are virtual
// boundary locations that never hold persisted stock.
package location

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
)

// Type classifies a location.
type Type string

const (
	TypeSupplier   Type = "SUPPLIER"
	TypeInternal   Type = "INTERNAL"
	TypeCustomer   Type = "CUSTOMER"
	TypeProduction Type = "PRODUCTION"
	TypeScrap      Type = "SCRAP"
)

// Valid reports whether t is a known location type.
func (t Type) Valid() bool {
	switch t {
	case TypeSupplier, TypeInternal, TypeCustomer, TypeProduction, TypeScrap:
		return true
	}
	return false
}

// Tracked reports whether locations of this type hold real ledger rows.
func (t Type) Tracked() bool {
	switch t {
	case TypeInternal, TypeProduction, TypeScrap:
		return true
	}
	return false
}

// Location is a storage position inside a warehouse.
type Location struct {
	ID          id.ID  `db:"id" json:"id"`
	WarehouseID id.ID  `db:"warehouse_id" json:"warehouseId"`
	Code        string `db:"code" json:"code"`
	Name        string `db:"name" json:"name"`
	Type        Type   `db:"type" json:"type"`

	IsActive bool `db:"is_active" json:"isActive"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a location with generated ID.
func New(warehouseID id.ID, code, name string, typ Type) *Location {
	now := time.Now().UTC()
	return &Location{
		ID:          id.New(),
		WarehouseID: warehouseID,
		Code:        code,
		Name:        name,
		Type:        typ,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks entity invariants.
func (l *Location) Validate(ctx context.Context) error {
	if id.IsNil(l.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}
	if l.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	if l.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !l.Type.Valid() {
		return apperror.NewValidation("unknown location type").
			WithDetail("field", "type").
			WithDetail("value", string(l.Type))
	}
	return nil
}

// Touch updates the UpdatedAt timestamp.
func (l *Location) Touch() {
	l.UpdatedAt = time.Now().UTC()
}
