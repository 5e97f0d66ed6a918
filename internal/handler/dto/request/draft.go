package request

import (
	"eventcrm/internal/domain/offer"

	"github.com/google/uuid"
)

type AddProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// UpdateDraftItemRequest is a partial update; absent fields keep their
// current values. Numbers arrive as floats and are normalized by the domain,
// so no range validation happens here.
type UpdateDraftItemRequest struct {
	Name               *string     `json:"name,omitempty"`
	Description        *string     `json:"description,omitempty"`
	Unit               *string     `json:"unit,omitempty"`
	Quantity           *float64    `json:"quantity,omitempty"`
	UnitPrice          *float64    `json:"unit_price,omitempty"`
	DiscountPercent    *float64    `json:"discount_percent,omitempty"`
	DisplayOrder       *int32      `json:"display_order,omitempty"`
	EquipmentIDs       []uuid.UUID `json:"equipment_ids,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractor_id,omitempty"`
	NeedsSubcontractor *bool       `json:"needs_subcontractor,omitempty"`
}

func (r UpdateDraftItemRequest) ToPatch() offer.LineItemPatch {
	return offer.LineItemPatch{
		Name:               r.Name,
		Description:        r.Description,
		Unit:               r.Unit,
		Quantity:           r.Quantity,
		UnitPrice:          r.UnitPrice,
		DiscountPercent:    r.DiscountPercent,
		DisplayOrder:       r.DisplayOrder,
		EquipmentIDs:       r.EquipmentIDs,
		SubcontractorID:    r.SubcontractorID,
		NeedsSubcontractor: r.NeedsSubcontractor,
	}
}

type CustomItemRequest struct {
	Name               *string     `json:"name,omitempty"`
	Description        *string     `json:"description,omitempty"`
	Unit               *string     `json:"unit,omitempty"`
	Quantity           *float64    `json:"quantity,omitempty"`
	UnitPrice          *float64    `json:"unit_price,omitempty"`
	DiscountPercent    *float64    `json:"discount_percent,omitempty"`
	EquipmentIDs       []uuid.UUID `json:"equipment_ids,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractor_id,omitempty"`
	NeedsSubcontractor *bool       `json:"needs_subcontractor,omitempty"`
}

func (r CustomItemRequest) ToPatch() offer.CustomItemPatch {
	return offer.CustomItemPatch{
		Name:               r.Name,
		Description:        r.Description,
		Unit:               r.Unit,
		Quantity:           r.Quantity,
		UnitPrice:          r.UnitPrice,
		DiscountPercent:    r.DiscountPercent,
		EquipmentIDs:       r.EquipmentIDs,
		SubcontractorID:    r.SubcontractorID,
		NeedsSubcontractor: r.NeedsSubcontractor,
	}
}

type SaveDraftRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}
