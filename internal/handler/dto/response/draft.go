package response

import (
	"time"

	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DraftItemResponse struct {
	ID                 uuid.UUID   `json:"id"`
	ProductID          *uuid.UUID  `json:"productId,omitempty"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Unit               string      `json:"unit"`
	Quantity           float64     `json:"quantity"`
	UnitPrice          float64     `json:"unitPrice"`
	DiscountPercent    float64     `json:"discountPercent"`
	Subtotal           float64     `json:"subtotal"`
	DisplayOrder       int32       `json:"displayOrder"`
	EquipmentIDs       []uuid.UUID `json:"equipmentIds,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractorId,omitempty"`
	NeedsSubcontractor bool        `json:"needsSubcontractor"`
}

type CustomItemResponse struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Unit               string      `json:"unit"`
	Quantity           float64     `json:"quantity"`
	UnitPrice          float64     `json:"unitPrice"`
	DiscountPercent    float64     `json:"discountPercent"`
	EquipmentIDs       []uuid.UUID `json:"equipmentIds,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractorId,omitempty"`
	NeedsSubcontractor bool        `json:"needsSubcontractor"`
}

type DraftResponse struct {
	ID         uuid.UUID           `json:"id"`
	Items      []DraftItemResponse `json:"items"`
	CustomItem CustomItemResponse  `json:"customItem"`
	Total      float64             `json:"total"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

func FromDraftView(view *queries.DraftView) *DraftResponse {
	resp := DraftResponse{
		ID:        view.ID,
		Items:     make([]DraftItemResponse, 0, len(view.Items)),
		Total:     view.Total,
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
	_ = copier.Copy(&resp.CustomItem, &view.CustomItem)
	for i := range view.Items {
		var item DraftItemResponse
		_ = copier.Copy(&item, &view.Items[i])
		resp.Items = append(resp.Items, item)
	}
	return &resp
}
