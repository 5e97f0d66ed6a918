package response

import (
	"time"

	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OfferItemResponse struct {
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

type OfferResponse struct {
	ID        uuid.UUID           `json:"id"`
	OwnerID   uuid.UUID           `json:"ownerId"`
	Title     string              `json:"title"`
	Status    string              `json:"status"`
	Total     float64             `json:"total"`
	Items     []OfferItemResponse `json:"items,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type SaveDraftResponse struct {
	OfferID uuid.UUID `json:"offerId"`
}

type SendOfferResponse struct {
	MessageID string `json:"messageId"`
	Recipient string `json:"recipient"`
}

func FromOfferView(view *queries.OfferView) *OfferResponse {
	resp := OfferResponse{
		ID:        view.ID,
		OwnerID:   view.OwnerID,
		Title:     view.Title,
		Status:    view.Status,
		Total:     view.Total,
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
	for i := range view.Items {
		var item OfferItemResponse
		_ = copier.Copy(&item, &view.Items[i])
		resp.Items = append(resp.Items, item)
	}
	return &resp
}

func FromOfferViews(views []queries.OfferView) []OfferResponse {
	resps := make([]OfferResponse, 0, len(views))
	for i := range views {
		resps = append(resps, *FromOfferView(&views[i]))
	}
	return resps
}
