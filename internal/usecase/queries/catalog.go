package queries

import (
	"context"

	"eventcrm/internal/domain/catalog"
	"eventcrm/internal/infra"
	"eventcrm/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

type CatalogQueries interface {
	ListProducts(ctx context.Context) ([]ProductView, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
}

type CatalogReadStore interface {
	ListProducts(ctx context.Context) ([]ProductView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{
		readStore: readStore,
	}
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]ProductView, error) {
	return q.readStore.ListProducts(ctx)
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	p, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &ProductView{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Unit:        p.Unit(),
		BasePrice:   p.BasePrice(),
	}, nil
}
