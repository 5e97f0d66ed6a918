package readstore

import (
	"context"

	"eventcrm/internal/infra"
	"eventcrm/internal/infra/db"
	"eventcrm/internal/pkg/pgconv"
	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(db db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: db}
}

const findOfferByIDQuery = `
SELECT id, owner_id, title, status, total_amount, created_at, updated_at
FROM offers
WHERE id = $1
`

const listOfferItemsQuery = `
SELECT id, product_id, name, description, unit, quantity, unit_price,
       discount_percent, subtotal, display_order, needs_subcontractor,
       subcontractor_id, equipment_ids
FROM offer_items
WHERE offer_id = $1
ORDER BY display_order
`

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	var view queries.OfferView
	err := r.db.QueryRow(ctx, findOfferByIDQuery, id).
		Scan(&view.ID, &view.OwnerID, &view.Title, &view.Status, &view.Total,
			&view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by ID", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items
	return &view, nil
}

const listOffersByOwnerQuery = `
SELECT id, owner_id, title, status, total_amount, created_at, updated_at
FROM offers
WHERE owner_id = $1
ORDER BY created_at DESC
`

func (r *OfferReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]queries.OfferView, error) {
	rows, err := r.db.Query(ctx, listOffersByOwnerQuery, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	defer rows.Close()

	views := []queries.OfferView{}
	for rows.Next() {
		var v queries.OfferView
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Status, &v.Total,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return views, nil
}

const listAllOffersQuery = `
SELECT id, owner_id, title, status, total_amount, created_at, updated_at
FROM offers
ORDER BY created_at DESC
`

// ListAll returns every offer regardless of owner. Access control is the
// caller's concern.
func (r *OfferReadStore) ListAll(ctx context.Context) ([]queries.OfferView, error) {
	rows, err := r.db.Query(ctx, listAllOffersQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	defer rows.Close()

	views := []queries.OfferView{}
	for rows.Next() {
		var v queries.OfferView
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Status, &v.Total,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return views, nil
}

func (r *OfferReadStore) loadItems(ctx context.Context, offerID uuid.UUID) ([]queries.OfferItemView, error) {
	rows, err := r.db.Query(ctx, listOfferItemsQuery, offerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offer items", err)
	}
	defer rows.Close()

	items := []queries.OfferItemView{}
	for rows.Next() {
		var (
			item            queries.OfferItemView
			productID       pgtype.UUID
			subcontractorID pgtype.UUID
		)
		if err := rows.Scan(&item.ID, &productID, &item.Name, &item.Description,
			&item.Unit, &item.Quantity, &item.UnitPrice, &item.DiscountPercent,
			&item.Subtotal, &item.DisplayOrder, &item.NeedsSubcontractor,
			&subcontractorID, &item.EquipmentIDs); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer item row", err)
		}
		item.ProductID = pgconv.UUIDPtrFromPgtype(productID)
		item.SubcontractorID = pgconv.UUIDPtrFromPgtype(subcontractorID)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer items", err)
	}
	return items, nil
}
