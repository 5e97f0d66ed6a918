//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"eventcrm/internal/domain/catalog"
	"eventcrm/internal/domain/offer"
	reqdto "eventcrm/internal/handler/dto/request"
	"eventcrm/internal/infra"
	"eventcrm/internal/infra/db"
	"eventcrm/internal/infra/draftstore"
	"eventcrm/internal/infra/writerepo"
	"eventcrm/internal/pkg/clock"
	"eventcrm/internal/pkg/errs"
	"eventcrm/internal/usecase/commands"
	"eventcrm/internal/usecase/queries"
	"eventcrm/internal/usecase/shared"
	"eventcrm/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalog read store backed by a map, no database involved
type stubCatalog struct {
	products map[uuid.UUID]*catalog.Product
}

func (s *stubCatalog) ListProducts(context.Context) ([]queries.ProductView, error) {
	return nil, nil
}

func (s *stubCatalog) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", errs.New("no rows"), infra.KindNotFound)
	}
	return p, nil
}

// unit of work that runs the function against recording repositories
type stubUoW struct {
	offers  *recordingOfferRepo
	failErr error
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.failErr != nil {
		return u.failErr
	}
	return fn(ctx, &stubTx{offers: u.offers})
}

type stubTx struct {
	offers *recordingOfferRepo
}

func (t *stubTx) Offers() shared.OfferRepository    { return t.offers }
func (t *stubTx) MailLog() shared.MailLogRepository { return nopMailLog{} }
func (t *stubTx) Users() shared.UserRepository      { return nil }
func (t *stubTx) DB() db.DBTX                       { return nil }

type recordingOfferRepo struct {
	createdID uuid.UUID
	title     string
	total     float64
	items     []offer.LineItem
	calls     int
}

func (r *recordingOfferRepo) Create(_ context.Context, id, _ uuid.UUID, title string, total float64, items []offer.LineItem, _ time.Time) error {
	r.calls++
	r.createdID = id
	r.title = title
	r.total = total
	r.items = items
	return nil
}

func (r *recordingOfferRepo) UpdateStatus(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

type nopMailLog struct{}

func (nopMailLog) Insert(context.Context, writerepo.MailLogEntry) error { return nil }

type draftFixture struct {
	commands commands.DraftCommands
	store    *draftstore.Store
	offers   *recordingOfferRepo
	product  *catalog.Product
	ownerID  uuid.UUID
}

func newDraftFixture(t *testing.T, policy offer.Policy) *draftFixture {
	t.Helper()

	product, err := builder.NewProductBuilder().WithBasePrice(100).BuildDomain()
	require.NoError(t, err)

	store := draftstore.New()
	offers := &recordingOfferRepo{}
	cmds := commands.NewDraftCommands(
		store,
		&stubCatalog{products: map[uuid.UUID]*catalog.Product{product.ID(): product}},
		&stubUoW{offers: offers},
		policy,
		clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	)

	return &draftFixture{
		commands: cmds,
		store:    store,
		offers:   offers,
		product:  product,
		ownerID:  uuid.New(),
	}
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("create then add product", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})

		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)
		assert.Empty(t, view.Items)

		view, err = f.commands.AddProduct(ctx, view.ID, f.ownerID, f.product.ID())
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, float64(100), view.Items[0].Subtotal)
		assert.Equal(t, float64(100), view.Total)
	})

	t.Run("unknown product is reported before touching the draft", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)

		_, err = f.commands.AddProduct(ctx, view.ID, f.ownerID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})

	t.Run("update recomputes subtotal", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)
		view, err = f.commands.AddProduct(ctx, view.ID, f.ownerID, f.product.ID())
		require.NoError(t, err)

		qty, discount := 4.0, 25.0
		view, err = f.commands.UpdateItem(ctx, view.ID, f.ownerID, view.Items[0].ID,
			reqdto.UpdateDraftItemRequest{Quantity: &qty, DiscountPercent: &discount})
		require.NoError(t, err)
		assert.InDelta(t, 300.0, view.Items[0].Subtotal, 1e-9)
	})

	t.Run("owner mismatch is rejected", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)

		_, err = f.commands.AddProduct(ctx, view.ID, uuid.New(), f.product.ID())
		assert.ErrorIs(t, err, commands.ErrDraftAccess)
	})

	t.Run("missing draft is reported", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		_, err := f.commands.RemoveItem(ctx, uuid.New(), f.ownerID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrDraftNotFound)
	})

	t.Run("reject policy surfaces invalid item input", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{RejectNegativeAmounts: true})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)
		view, err = f.commands.AddProduct(ctx, view.ID, f.ownerID, f.product.ID())
		require.NoError(t, err)

		negative := -50.0
		_, err = f.commands.UpdateItem(ctx, view.ID, f.ownerID, view.Items[0].ID,
			reqdto.UpdateDraftItemRequest{UnitPrice: &negative})
		assert.ErrorIs(t, err, commands.ErrInvalidItemInput)
	})

	t.Run("discard removes the session", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)

		require.NoError(t, f.commands.DiscardDraft(ctx, view.ID, f.ownerID))
		err = f.commands.DiscardDraft(ctx, view.ID, f.ownerID)
		assert.ErrorIs(t, err, commands.ErrDraftNotFound)
	})
}

func TestSaveDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("persists items and discards the session", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)
		view, err = f.commands.AddProduct(ctx, view.ID, f.ownerID, f.product.ID())
		require.NoError(t, err)

		offerID, err := f.commands.SaveDraft(ctx, view.ID, f.ownerID, reqdto.SaveDraftRequest{Title: "Gala"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, offerID)

		assert.Equal(t, 1, f.offers.calls)
		assert.Equal(t, offerID, f.offers.createdID)
		assert.Equal(t, "Gala", f.offers.title)
		assert.InDelta(t, 100.0, f.offers.total, 1e-9)
		require.Len(t, f.offers.items, 1)

		err = f.store.Read(view.ID, f.ownerID, func(*offer.Draft) error { return nil })
		assert.ErrorIs(t, err, draftstore.ErrNotFound)
	})

	t.Run("empty draft is rejected without hitting the database", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)

		_, err = f.commands.SaveDraft(ctx, view.ID, f.ownerID, reqdto.SaveDraftRequest{Title: "Empty"})
		assert.ErrorIs(t, err, commands.ErrEmptyDraft)
		assert.Equal(t, 0, f.offers.calls)
	})

	t.Run("transaction failure keeps the session alive", func(t *testing.T) {
		f := newDraftFixture(t, offer.Policy{})
		view, err := f.commands.CreateDraft(ctx, f.ownerID)
		require.NoError(t, err)
		view, err = f.commands.AddProduct(ctx, view.ID, f.ownerID, f.product.ID())
		require.NoError(t, err)

		failing := commands.NewDraftCommands(
			f.store,
			&stubCatalog{},
			&stubUoW{offers: f.offers, failErr: errs.New("commit failed")},
			offer.Policy{},
			clock.NewMockClock(time.Now()),
		)

		_, err = failing.SaveDraft(ctx, view.ID, f.ownerID, reqdto.SaveDraftRequest{Title: "Gala"})
		require.Error(t, err)

		err = f.store.Read(view.ID, f.ownerID, func(*offer.Draft) error { return nil })
		assert.NoError(t, err, "draft must survive a failed save")
	})
}
