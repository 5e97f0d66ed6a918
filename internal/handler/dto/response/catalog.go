package response

import (
	"time"

	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	BasePrice   float64   `json:"basePrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromProductView(view *queries.ProductView) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromProductViews(views []queries.ProductView) []ProductResponse {
	resps := make([]ProductResponse, 0, len(views))
	for i := range views {
		resps = append(resps, *FromProductView(&views[i]))
	}
	return resps
}
