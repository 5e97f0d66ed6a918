package readstore

import (
	"context"
	"time"

	"eventcrm/internal/domain/catalog"
	"eventcrm/internal/infra"
	"eventcrm/internal/infra/db"
	"eventcrm/internal/pkg/pgconv"
	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(db db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

const listProductsQuery = `
SELECT id, name, description, unit, base_price, created_at, updated_at
FROM products
ORDER BY name
`

func (r *CatalogReadStore) ListProducts(ctx context.Context) ([]queries.ProductView, error) {
	rows, err := r.db.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	views := []queries.ProductView{}
	for rows.Next() {
		var v queries.ProductView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Unit, &v.BasePrice,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return views, nil
}

const findProductByIDQuery = `
SELECT id, name, description, unit, base_price, created_at, updated_at
FROM products
WHERE id = $1
`

// FindByID rebuilds the domain entity, not a view, because AddProduct feeds
// the draft aggregate directly.
func (r *CatalogReadStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var (
		productID   uuid.UUID
		name        string
		description string
		unit        string
		basePrice   float64
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := r.db.QueryRow(ctx, findProductByIDQuery, id).
		Scan(&productID, &name, &description, &unit, &basePrice, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return catalog.ReconstructProduct(productID, name, description, unit, basePrice, createdAt, updatedAt), nil
}
