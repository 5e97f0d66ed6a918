package commands

import (
	"context"
	"errors"

	"eventcrm/internal/domain/offer"
	reqdto "eventcrm/internal/handler/dto/request"
	"eventcrm/internal/infra"
	"eventcrm/internal/infra/draftstore"
	"eventcrm/internal/pkg/clock"
	"eventcrm/internal/pkg/errs"
	"eventcrm/internal/usecase/queries"
	"eventcrm/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound    = errs.New("draft not found")
	ErrDraftAccess      = errs.New("draft access denied")
	ErrProductNotFound  = errs.New("product not found")
	ErrInvalidItemInput = errs.New("invalid item input")
	ErrEmptyDraft       = errs.New("draft has no items")
)

type DraftCommands interface {
	CreateDraft(ctx context.Context, ownerID uuid.UUID) (*queries.DraftView, error)
	AddProduct(ctx context.Context, draftID, ownerID, productID uuid.UUID) (*queries.DraftView, error)
	UpdateItem(ctx context.Context, draftID, ownerID, itemID uuid.UUID, req reqdto.UpdateDraftItemRequest) (*queries.DraftView, error)
	RemoveItem(ctx context.Context, draftID, ownerID, itemID uuid.UUID) (*queries.DraftView, error)
	SetCustomItem(ctx context.Context, draftID, ownerID uuid.UUID, req reqdto.CustomItemRequest) (*queries.DraftView, error)
	CommitCustomItem(ctx context.Context, draftID, ownerID uuid.UUID) (*queries.DraftView, error)
	ResetDraft(ctx context.Context, draftID, ownerID uuid.UUID) (*queries.DraftView, error)
	DiscardDraft(ctx context.Context, draftID, ownerID uuid.UUID) error
	SaveDraft(ctx context.Context, draftID, ownerID uuid.UUID, req reqdto.SaveDraftRequest) (uuid.UUID, error)
}

// DraftStore is the mutable session store the reducer operates on.
type DraftStore interface {
	Put(d *offer.Draft)
	Read(id, ownerID uuid.UUID, fn func(d *offer.Draft) error) error
	Mutate(id, ownerID uuid.UUID, fn func(d *offer.Draft) error) error
	Delete(id, ownerID uuid.UUID) error
}

type draftCommandsImpl struct {
	store   DraftStore
	catalog queries.CatalogReadStore
	uow     shared.UnitOfWork
	policy  offer.Policy
	clock   clock.Clock
}

func NewDraftCommands(store DraftStore, catalog queries.CatalogReadStore, uow shared.UnitOfWork, policy offer.Policy, clock clock.Clock) DraftCommands {
	return &draftCommandsImpl{
		store:   store,
		catalog: catalog,
		uow:     uow,
		policy:  policy,
		clock:   clock,
	}
}

func (c *draftCommandsImpl) CreateDraft(_ context.Context, ownerID uuid.UUID) (*queries.DraftView, error) {
	d := offer.NewDraft(ownerID, c.policy, c.clock.Now())
	c.store.Put(d)
	return queries.ToDraftView(d), nil
}

func (c *draftCommandsImpl) AddProduct(ctx context.Context, draftID, ownerID, productID uuid.UUID) (*queries.DraftView, error) {
	product, err := c.catalog.FindByID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return c.mutate(draftID, ownerID, func(d *offer.Draft) error {
		d.AddProduct(product, c.clock.Now())
		return nil
	})
}

func (c *draftCommandsImpl) UpdateItem(_ context.Context, draftID, ownerID, itemID uuid.UUID, req reqdto.UpdateDraftItemRequest) (*queries.DraftView, error) {
	return c.mutate(draftID, ownerID, func(d *offer.Draft) error {
		// An unknown item id is silently ignored: the item may have been
		// removed by a concurrent tab and there is nothing to reconcile.
		_, err := d.UpdateItem(itemID, req.ToPatch(), c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrInvalidItemInput)
		}
		return nil
	})
}

func (c *draftCommandsImpl) RemoveItem(_ context.Context, draftID, ownerID, itemID uuid.UUID) (*queries.DraftView, error) {
	return c.mutate(draftID, ownerID, func(d *offer.Draft) error {
		d.RemoveItem(itemID, c.clock.Now())
		return nil
	})
}

func (c *draftCommandsImpl) SetCustomItem(_ context.Context, draftID, ownerID uuid.UUID, req reqdto.CustomItemRequest) (*queries.DraftView, error) {
	return c.mutate(draftID, ownerID, func(d *offer.Draft) error {
		d.SetCustomItem(req.ToPatch(), c.clock.Now())
		return nil
	})
}

func (c *draftCommandsImpl) CommitCustomItem(_ context.Context, draftID, ownerID uuid.UUID) (*queries.DraftView, error) {
	return c.mutate(draftID, ownerID, func(d *offer.Draft) error {
		if _, err := d.CommitCustomItem(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrInvalidItemInput)
		}
		return nil
	})
}

func (c *draftCommandsImpl) ResetDraft(_ context.Context, draftID, ownerID uuid.UUID) (*queries.DraftView, error) {
	return c.mutate(draftID, ownerID, func(d *offer.Draft) error {
		d.Reset(c.clock.Now())
		return nil
	})
}

func (c *draftCommandsImpl) DiscardDraft(_ context.Context, draftID, ownerID uuid.UUID) error {
	if err := c.store.Delete(draftID, ownerID); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// SaveDraft persists the draft as an offer and discards the session. The
// snapshot is taken under the store lock, then released before the
// transaction so the lock is never held across database I/O.
func (c *draftCommandsImpl) SaveDraft(ctx context.Context, draftID, ownerID uuid.UUID, req reqdto.SaveDraftRequest) (uuid.UUID, error) {
	var (
		items []offer.LineItem
		total float64
	)
	err := c.store.Read(draftID, ownerID, func(d *offer.Draft) error {
		items = d.Items()
		total = d.Total()
		return nil
	})
	if err != nil {
		return uuid.Nil, mapStoreErr(err)
	}

	if len(items) == 0 {
		return uuid.Nil, ErrEmptyDraft
	}

	offerID := uuid.New()
	now := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Offers().Create(ctx, offerID, ownerID, req.Title, total, items, now)
	})
	if err != nil {
		return uuid.Nil, err
	}

	// Best effort: the offer exists even if the session was already gone.
	_ = c.store.Delete(draftID, ownerID)

	return offerID, nil
}

func (c *draftCommandsImpl) mutate(draftID, ownerID uuid.UUID, fn func(d *offer.Draft) error) (*queries.DraftView, error) {
	var view *queries.DraftView
	err := c.store.Mutate(draftID, ownerID, func(d *offer.Draft) error {
		if err := fn(d); err != nil {
			return err
		}
		view = queries.ToDraftView(d)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return view, nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, draftstore.ErrNotFound):
		return ErrDraftNotFound
	case errors.Is(err, draftstore.ErrForbidden):
		return ErrDraftAccess
	default:
		return err
	}
}
