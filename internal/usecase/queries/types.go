package queries

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// ProductView represents read-optimized catalog product data
type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	BasePrice   float64   `json:"base_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DraftItemView is one line of an in-progress offer draft
type DraftItemView struct {
	ID                 uuid.UUID   `json:"id"`
	ProductID          *uuid.UUID  `json:"product_id,omitempty"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Unit               string      `json:"unit"`
	Quantity           float64     `json:"quantity"`
	UnitPrice          float64     `json:"unit_price"`
	DiscountPercent    float64     `json:"discount_percent"`
	Subtotal           float64     `json:"subtotal"`
	DisplayOrder       int32       `json:"display_order"`
	EquipmentIDs       []uuid.UUID `json:"equipment_ids,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractor_id,omitempty"`
	NeedsSubcontractor bool        `json:"needs_subcontractor"`
}

// DraftView is the full state of an in-progress offer draft
type DraftView struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Items      []DraftItemView `json:"items"`
	CustomItem CustomItemView  `json:"custom_item"`
	Total      float64         `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CustomItemView is the scratch object for a free-form item being entered
type CustomItemView struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Unit               string      `json:"unit"`
	Quantity           float64     `json:"quantity"`
	UnitPrice          float64     `json:"unit_price"`
	DiscountPercent    float64     `json:"discount_percent"`
	EquipmentIDs       []uuid.UUID `json:"equipment_ids,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractor_id,omitempty"`
	NeedsSubcontractor bool        `json:"needs_subcontractor"`
}

// OfferItemView represents a persisted offer line
type OfferItemView struct {
	ID                 uuid.UUID   `json:"id"`
	ProductID          *uuid.UUID  `json:"product_id,omitempty"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Unit               string      `json:"unit"`
	Quantity           float64     `json:"quantity"`
	UnitPrice          float64     `json:"unit_price"`
	DiscountPercent    float64     `json:"discount_percent"`
	Subtotal           float64     `json:"subtotal"`
	DisplayOrder       int32       `json:"display_order"`
	EquipmentIDs       []uuid.UUID `json:"equipment_ids,omitempty"`
	SubcontractorID    *uuid.UUID  `json:"subcontractor_id,omitempty"`
	NeedsSubcontractor bool        `json:"needs_subcontractor"`
}

// OfferView represents a persisted offer with its lines
type OfferView struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	Total     float64         `json:"total"`
	Items     []OfferItemView `json:"items,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MailAccountView carries stored SMTP credentials for one user
type MailAccountView struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Host        string    `json:"host"`
	Port        int32     `json:"port"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	FromAddress string    `json:"from_address"`
	FromName    string    `json:"from_name"`
}
