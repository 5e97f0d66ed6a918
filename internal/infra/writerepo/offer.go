package writerepo

import (
	"context"
	"time"

	"eventcrm/internal/domain/offer"
	"eventcrm/internal/infra"
	"eventcrm/internal/infra/db"
	"eventcrm/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OfferRepository struct {
	db db.DBTX
}

func NewOfferRepository(db db.DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

const insertOfferQuery = `
INSERT INTO offers (id, owner_id, title, status, total_amount, created_at, updated_at)
VALUES ($1, $2, $3, 'draft', $4, $5, $5)
`

const insertOfferItemQuery = `
INSERT INTO offer_items (id, offer_id, product_id, name, description, unit,
                         quantity, unit_price, discount_percent, subtotal,
                         display_order, needs_subcontractor, subcontractor_id,
                         equipment_ids, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

// Create persists the whole offer with its lines. Meant to run inside a
// transaction so a failed item insert never leaves a headless offer behind.
func (r *OfferRepository) Create(ctx context.Context, id, ownerID uuid.UUID, title string, total float64, items []offer.LineItem, now time.Time) error {
	if _, err := r.db.Exec(ctx, insertOfferQuery, id, ownerID, title, total, now); err != nil {
		return classifyWriteErr("failed to insert offer", err)
	}

	for i, item := range items {
		_, err := r.db.Exec(ctx, insertOfferItemQuery,
			item.ID, id, pgconv.UUIDPtrToPgtype(item.ProductID),
			item.Name, item.Description, item.Unit,
			item.Quantity, item.UnitPrice, item.DiscountPercent, item.Subtotal,
			int32(i), item.NeedsSubcontractor, //nolint:gosec // display order bounded by item count
			pgconv.UUIDPtrToPgtype(item.SubcontractorID),
			pgconv.UUIDSlice(item.EquipmentIDs), now)
		if err != nil {
			return classifyWriteErr("failed to insert offer item", err)
		}
	}
	return nil
}

const updateOfferStatusQuery = `
UPDATE offers
SET status = $2, updated_at = $3
WHERE id = $1
`

func (r *OfferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, now time.Time) error {
	tag, err := r.db.Exec(ctx, updateOfferStatusQuery, id, status, now)
	if err != nil {
		return classifyWriteErr("failed to update offer status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}
