package queries

import (
	"context"

	"eventcrm/internal/infra"
	"eventcrm/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOfferNotFound = errs.New("offer not found")
	ErrOfferAccess   = errs.New("offer access denied")
)

type OfferQueries interface {
	GetOffer(ctx context.Context, id, requesterID uuid.UUID) (*OfferView, error)
	ListMyOffers(ctx context.Context, ownerID uuid.UUID) ([]OfferView, error)
	ListAllOffers(ctx context.Context) ([]OfferView, error)
}

type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]OfferView, error)
	ListAll(ctx context.Context) ([]OfferView, error)
}

type offerQueriesImpl struct {
	readStore OfferReadStore
}

func NewOfferQueries(readStore OfferReadStore) OfferQueries {
	return &offerQueriesImpl{
		readStore: readStore,
	}
}

func (q *offerQueriesImpl) GetOffer(ctx context.Context, id, requesterID uuid.UUID) (*OfferView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if view.OwnerID != requesterID {
		return nil, ErrOfferAccess
	}
	return view, nil
}

func (q *offerQueriesImpl) ListMyOffers(ctx context.Context, ownerID uuid.UUID) ([]OfferView, error) {
	return q.readStore.ListByOwner(ctx, ownerID)
}

// ListAllOffers is the oversight view; route-level role checks gate it.
func (q *offerQueriesImpl) ListAllOffers(ctx context.Context) ([]OfferView, error) {
	return q.readStore.ListAll(ctx)
}
