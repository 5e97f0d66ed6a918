package queries

import (
	"errors"

	"eventcrm/internal/domain/offer"
	"eventcrm/internal/infra/draftstore"
	"eventcrm/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound = errs.New("draft not found")
	ErrDraftAccess   = errs.New("draft access denied")
)

type DraftQueries interface {
	GetDraft(draftID, ownerID uuid.UUID) (*DraftView, error)
}

type DraftStore interface {
	Read(id, ownerID uuid.UUID, fn func(d *offer.Draft) error) error
}

type draftQueriesImpl struct {
	store DraftStore
}

func NewDraftQueries(store DraftStore) DraftQueries {
	return &draftQueriesImpl{store: store}
}

func (q *draftQueriesImpl) GetDraft(draftID, ownerID uuid.UUID) (*DraftView, error) {
	var view *DraftView
	err := q.store.Read(draftID, ownerID, func(d *offer.Draft) error {
		view = ToDraftView(d)
		return nil
	})
	if err != nil {
		return nil, mapDraftStoreErr(err)
	}
	return view, nil
}

func mapDraftStoreErr(err error) error {
	switch {
	case errors.Is(err, draftstore.ErrNotFound):
		return ErrDraftNotFound
	case errors.Is(err, draftstore.ErrForbidden):
		return ErrDraftAccess
	default:
		return err
	}
}

// ToDraftView flattens the aggregate for the API. Display order is the list
// position; the draft keeps no other ordering.
func ToDraftView(d *offer.Draft) *DraftView {
	items := d.Items()
	views := make([]DraftItemView, 0, len(items))
	for i, item := range items {
		views = append(views, DraftItemView{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			Name:               item.Name,
			Description:        item.Description,
			Unit:               item.Unit,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercent:    item.DiscountPercent,
			Subtotal:           item.Subtotal,
			DisplayOrder:       int32(i), //nolint:gosec // bounded by item count
			EquipmentIDs:       item.EquipmentIDs,
			SubcontractorID:    item.SubcontractorID,
			NeedsSubcontractor: item.NeedsSubcontractor,
		})
	}

	custom := d.CustomItem()
	return &DraftView{
		ID:      d.ID(),
		OwnerID: d.OwnerID(),
		Items:   views,
		CustomItem: CustomItemView{
			Name:               custom.Name,
			Description:        custom.Description,
			Unit:               custom.Unit,
			Quantity:           custom.Quantity,
			UnitPrice:          custom.UnitPrice,
			DiscountPercent:    custom.DiscountPercent,
			EquipmentIDs:       custom.EquipmentIDs,
			SubcontractorID:    custom.SubcontractorID,
			NeedsSubcontractor: custom.NeedsSubcontractor,
		},
		Total:     d.Total(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
}
