package dto

import (
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/category"
	"stockmaster/internal/domain/catalogs/location"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/catalogs/warehouse"
)

// --- Products ---

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	SKU           string         `json:"sku" binding:"required"`
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description,omitempty"`
	UnitOfMeasure string         `json:"unitOfMeasure,omitempty"`
	CategoryID    *id.ID         `json:"categoryId,omitempty"`
	ReorderPoint  types.Quantity `json:"reorderPoint,omitempty"`
	OptimalStock  types.Quantity `json:"optimalStock,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.SKU, r.Name)
	p.Description = r.Description
	p.UnitOfMeasure = r.UnitOfMeasure
	p.CategoryID = r.CategoryID
	p.ReorderPoint = r.ReorderPoint
	p.OptimalStock = r.OptimalStock
	return p
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name          *string         `json:"name,omitempty"`
	Description   *string         `json:"description,omitempty"`
	UnitOfMeasure *string         `json:"unitOfMeasure,omitempty"`
	CategoryID    *id.ID          `json:"categoryId,omitempty"`
	ReorderPoint  *types.Quantity `json:"reorderPoint,omitempty"`
	OptimalStock  *types.Quantity `json:"optimalStock,omitempty"`
	IsActive      *bool           `json:"isActive,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.UnitOfMeasure != nil {
		p.UnitOfMeasure = *r.UnitOfMeasure
	}
	if r.CategoryID != nil {
		p.CategoryID = r.CategoryID
	}
	if r.ReorderPoint != nil {
		p.ReorderPoint = *r.ReorderPoint
	}
	if r.OptimalStock != nil {
		p.OptimalStock = *r.OptimalStock
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// --- Categories ---

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	c := category.New(r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
}

// --- Warehouses ---

// CreateWarehouseRequest represents a request to create a warehouse.
type CreateWarehouseRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	w := warehouse.New(r.Code, r.Name)
	w.Address = r.Address
	return w
}

// UpdateWarehouseRequest represents a partial warehouse update.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateWarehouseRequest) ApplyTo(w *warehouse.Warehouse) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Address != nil {
		w.Address = *r.Address
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
}

// --- Locations ---

// CreateLocationRequest represents a request to create a location.
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouseId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

// ToEntity converts request to domain entity.
func (r *CreateLocationRequest) ToEntity() (*location.Location, error) {
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, err
	}
	return location.New(warehouseID, r.Code, r.Name, location.Type(r.Type)), nil
}

// UpdateLocationRequest represents a partial location update.
type UpdateLocationRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateLocationRequest) ApplyTo(l *location.Location) {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Type != nil {
		l.Type = location.Type(*r.Type)
	}
	if r.IsActive != nil {
		l.IsActive = *r.IsActive
	}
}
