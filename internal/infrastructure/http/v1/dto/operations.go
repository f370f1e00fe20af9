package dto

import (
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/operations/adjustment"
	"stockmaster/internal/domain/operations/delivery"
	"stockmaster/internal/domain/operations/receipt"
	"stockmaster/internal/domain/operations/transfer"
)

// OperationLineRequest is one ordered product in a receipt, delivery or
// transfer request.
type OperationLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
}

// CountLineRequest is one counted product in an adjustment request.
type CountLineRequest struct {
	ProductID  string         `json:"productId" binding:"required"`
	CountedQty types.Quantity `json:"countedQty"`
}

func parseLineProduct(raw string, lineNo int) (id.ID, error) {
	productID, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid product id").
			WithDetail("lineNo", lineNo).
			WithDetail("productId", raw)
	}
	return productID, nil
}

// --- Receipts ---

// CreateReceiptRequest represents a request to create a goods receipt.
type CreateReceiptRequest struct {
	Reference     string                 `json:"reference,omitempty"`
	SupplierName  string                 `json:"supplierName" binding:"required"`
	DestinationID string                 `json:"destinationLocationId" binding:"required"`
	ScheduledDate *time.Time             `json:"scheduledDate,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []OperationLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateReceiptRequest) ToEntity(userID id.ID) (*receipt.Receipt, error) {
	destinationID, err := id.Parse(r.DestinationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid destination location id")
	}

	doc := receipt.New(userID, r.SupplierName, destinationID)
	doc.Reference = r.Reference
	doc.Notes = r.Notes
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}

	for i, line := range r.Lines {
		productID, err := parseLineProduct(line.ProductID, i+1)
		if err != nil {
			return nil, err
		}
		doc.AddLine(productID, line.Quantity)
	}

	return doc, nil
}

// UpdateReceiptRequest represents a draft receipt update.
type UpdateReceiptRequest struct {
	SupplierName  *string                `json:"supplierName,omitempty"`
	ScheduledDate *time.Time             `json:"scheduledDate,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Lines         []OperationLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateReceiptRequest) ApplyTo(doc *receipt.Receipt) error {
	if r.SupplierName != nil {
		doc.SupplierName = *r.SupplierName
	}
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}
	if r.Notes != nil {
		doc.Notes = *r.Notes
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for i, line := range r.Lines {
			productID, err := parseLineProduct(line.ProductID, i+1)
			if err != nil {
				return err
			}
			doc.AddLine(productID, line.Quantity)
		}
	}
	return nil
}

// --- Deliveries ---

// CreateDeliveryRequest represents a request to create a delivery.
type CreateDeliveryRequest struct {
	Reference     string                 `json:"reference,omitempty"`
	CustomerName  string                 `json:"customerName" binding:"required"`
	SourceID      string                 `json:"sourceLocationId" binding:"required"`
	ScheduledDate *time.Time             `json:"scheduledDate,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []OperationLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateDeliveryRequest) ToEntity(userID id.ID) (*delivery.Delivery, error) {
	sourceID, err := id.Parse(r.SourceID)
	if err != nil {
		return nil, apperror.NewValidation("invalid source location id")
	}

	doc := delivery.New(userID, r.CustomerName, sourceID)
	doc.Reference = r.Reference
	doc.Notes = r.Notes
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}

	for i, line := range r.Lines {
		productID, err := parseLineProduct(line.ProductID, i+1)
		if err != nil {
			return nil, err
		}
		doc.AddLine(productID, line.Quantity)
	}

	return doc, nil
}

// UpdateDeliveryRequest represents a draft delivery update.
type UpdateDeliveryRequest struct {
	CustomerName  *string                `json:"customerName,omitempty"`
	ScheduledDate *time.Time             `json:"scheduledDate,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Lines         []OperationLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateDeliveryRequest) ApplyTo(doc *delivery.Delivery) error {
	if r.CustomerName != nil {
		doc.CustomerName = *r.CustomerName
	}
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}
	if r.Notes != nil {
		doc.Notes = *r.Notes
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for i, line := range r.Lines {
			productID, err := parseLineProduct(line.ProductID, i+1)
			if err != nil {
				return err
			}
			doc.AddLine(productID, line.Quantity)
		}
	}
	return nil
}

// --- Transfers ---

// CreateTransferRequest represents a request to create an internal transfer.
type CreateTransferRequest struct {
	Reference     string                 `json:"reference,omitempty"`
	FromID        string                 `json:"fromLocationId" binding:"required"`
	ToID          string                 `json:"toLocationId" binding:"required"`
	ScheduledDate *time.Time             `json:"scheduledDate,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []OperationLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateTransferRequest) ToEntity(userID id.ID) (*transfer.Transfer, error) {
	fromID, err := id.Parse(r.FromID)
	if err != nil {
		return nil, apperror.NewValidation("invalid source location id")
	}
	toID, err := id.Parse(r.ToID)
	if err != nil {
		return nil, apperror.NewValidation("invalid destination location id")
	}

	doc := transfer.New(userID, fromID, toID)
	doc.Reference = r.Reference
	doc.Notes = r.Notes
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}

	for i, line := range r.Lines {
		productID, err := parseLineProduct(line.ProductID, i+1)
		if err != nil {
			return nil, err
		}
		doc.AddLine(productID, line.Quantity)
	}

	return doc, nil
}

// UpdateTransferRequest represents a draft transfer update.
type UpdateTransferRequest struct {
	ScheduledDate *time.Time             `json:"scheduledDate,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Lines         []OperationLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateTransferRequest) ApplyTo(doc *transfer.Transfer) error {
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}
	if r.Notes != nil {
		doc.Notes = *r.Notes
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for i, line := range r.Lines {
			productID, err := parseLineProduct(line.ProductID, i+1)
			if err != nil {
				return err
			}
			doc.AddLine(productID, line.Quantity)
		}
	}
	return nil
}

// --- Adjustments ---

// CreateAdjustmentRequest represents a request to create a stock adjustment.
type CreateAdjustmentRequest struct {
	Reference     string             `json:"reference,omitempty"`
	LocationID    string             `json:"locationId" binding:"required"`
	ScheduledDate *time.Time         `json:"scheduledDate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Lines         []CountLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity. System quantities are filled
// from the ledger when the count is validated, not here.
func (r *CreateAdjustmentRequest) ToEntity(userID id.ID) (*adjustment.Adjustment, error) {
	locationID, err := id.Parse(r.LocationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid location id")
	}

	doc := adjustment.New(userID, locationID)
	doc.Reference = r.Reference
	doc.Notes = r.Notes
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}

	for i, line := range r.Lines {
		productID, err := parseLineProduct(line.ProductID, i+1)
		if err != nil {
			return nil, err
		}
		doc.AddLine(productID, 0, line.CountedQty)
	}

	return doc, nil
}

// UpdateAdjustmentRequest represents a draft adjustment update.
type UpdateAdjustmentRequest struct {
	ScheduledDate *time.Time         `json:"scheduledDate,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	Lines         []CountLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateAdjustmentRequest) ApplyTo(doc *adjustment.Adjustment) error {
	if r.ScheduledDate != nil {
		doc.ScheduledDate = r.ScheduledDate
	}
	if r.Notes != nil {
		doc.Notes = *r.Notes
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for i, line := range r.Lines {
			productID, err := parseLineProduct(line.ProductID, i+1)
			if err != nil {
				return err
			}
			doc.AddLine(productID, 0, line.CountedQty)
		}
	}
	return nil
}
