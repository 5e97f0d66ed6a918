package offer

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

var ErrNegativeAmount = errors.New("quantity and unit price cannot be negative")

// Offer lifecycle statuses as persisted.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// LineItem is one row of an offer draft. ProductID is nil for custom items
// entered ad hoc. Subtotal is derived and recomputed after every mutation of
// Quantity, UnitPrice or DiscountPercent; it is never left stale.
// DiscountAmount, Total and DisplayOrder are carried for persistence
// compatibility and are not computed here.
type LineItem struct {
	ID                 uuid.UUID
	ProductID          *uuid.UUID
	Name               string
	Description        string
	Unit               string
	Quantity           float64
	UnitPrice          float64
	DiscountPercent    float64
	Subtotal           float64
	DiscountAmount     float64
	Total              float64
	DisplayOrder       int32
	EquipmentIDs       []uuid.UUID
	SubcontractorID    *uuid.UUID
	NeedsSubcontractor bool
}

// LineItemPatch carries partial updates; nil fields are left untouched.
type LineItemPatch struct {
	Name               *string
	Description        *string
	Unit               *string
	Quantity           *float64
	UnitPrice          *float64
	DiscountPercent    *float64
	DiscountAmount     *float64
	Total              *float64
	DisplayOrder       *int32
	EquipmentIDs       []uuid.UUID
	SubcontractorID    *uuid.UUID
	NeedsSubcontractor *bool
}

// CustomItemDraft is the scratch object for an item not yet in the catalog.
// It holds raw user input until CommitCustomItem turns it into a LineItem.
type CustomItemDraft struct {
	Name               string
	Description        string
	Unit               string
	Quantity           float64
	UnitPrice          float64
	DiscountPercent    float64
	EquipmentIDs       []uuid.UUID
	SubcontractorID    *uuid.UUID
	NeedsSubcontractor bool
}

// CustomItemPatch carries partial updates to the scratch object.
type CustomItemPatch struct {
	Name               *string
	Description        *string
	Unit               *string
	Quantity           *float64
	UnitPrice          *float64
	DiscountPercent    *float64
	EquipmentIDs       []uuid.UUID
	SubcontractorID    *uuid.UUID
	NeedsSubcontractor *bool
}

// Policy controls optional input validation. Both switches default to off,
// which reproduces the historical behavior of trusting upstream input:
// out-of-range discounts and negative amounts are computed as-is.
type Policy struct {
	ClampDiscountPercent  bool
	RejectNegativeAmounts bool
}

func (p Policy) apply(quantity, unitPrice, discountPercent float64) (float64, float64, float64, error) {
	if p.RejectNegativeAmounts && (quantity < 0 || unitPrice < 0) {
		return 0, 0, 0, ErrNegativeAmount
	}
	if p.ClampDiscountPercent {
		discountPercent = math.Min(math.Max(discountPercent, 0), 100)
	}
	return quantity, unitPrice, discountPercent, nil
}

// normQuantity substitutes 1 for non-finite quantities.
func normQuantity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	return v
}

// normAmount substitutes 0 for non-finite prices and discounts.
func normAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeSubtotal derives a line subtotal from its inputs:
// quantity * unit_price * (1 - discount/100), with non-finite inputs
// substituted first. No clamping happens here.
func ComputeSubtotal(quantity, unitPrice, discountPercent float64) float64 {
	q := normQuantity(quantity)
	p := normAmount(unitPrice)
	d := normAmount(discountPercent)
	return q * p * (1 - d/100)
}
