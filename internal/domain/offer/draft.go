package offer

import (
	"time"

	"eventcrm/internal/domain/catalog"
	"eventcrm/internal/pkg/patch"

	"github.com/google/uuid"
)

// Draft is an offer under construction. It lives in memory until SaveDraft
// persists its items; until then it has no server identity beyond its id.
type Draft struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	items     []LineItem
	custom    CustomItemDraft
	policy    Policy
	createdAt time.Time
	updatedAt time.Time
}

func NewDraft(ownerID uuid.UUID, policy Policy, now time.Time) *Draft {
	return &Draft{
		id:        uuid.New(),
		ownerID:   ownerID,
		items:     []LineItem{},
		policy:    policy,
		createdAt: now,
		updatedAt: now,
	}
}

func (d *Draft) ID() uuid.UUID        { return d.id }
func (d *Draft) OwnerID() uuid.UUID   { return d.ownerID }
func (d *Draft) CreatedAt() time.Time { return d.createdAt }
func (d *Draft) UpdatedAt() time.Time { return d.updatedAt }

// Items returns a copy; mutations go through the draft's operations.
func (d *Draft) Items() []LineItem {
	items := make([]LineItem, len(d.items))
	copy(items, d.items)
	return items
}

func (d *Draft) CustomItem() CustomItemDraft {
	return d.custom
}

// AddProduct adds a catalog product to the draft. Adding a product that is
// already on the draft increments its quantity instead of appending a
// duplicate row. Never fails: catalog products are validated at creation.
func (d *Draft) AddProduct(p *catalog.Product, now time.Time) LineItem {
	for i := range d.items {
		if d.items[i].ProductID != nil && *d.items[i].ProductID == p.ID() {
			d.items[i].Quantity = normQuantity(d.items[i].Quantity) + 1
			d.items[i].Subtotal = ComputeSubtotal(d.items[i].Quantity, d.items[i].UnitPrice, d.items[i].DiscountPercent)
			d.updatedAt = now
			return d.items[i]
		}
	}

	productID := p.ID()
	item := LineItem{
		ID:              uuid.New(),
		ProductID:       &productID,
		Name:            p.Name(),
		Description:     p.Description(),
		Unit:            p.Unit(),
		Quantity:        1,
		UnitPrice:       p.BasePrice(),
		DiscountPercent: 0,
		Subtotal:        p.BasePrice(),
	}
	d.items = append(d.items, item)
	d.updatedAt = now
	return item
}

// RemoveItem drops the item with the given id. Removing an absent id is a
// no-op, so the operation is idempotent.
func (d *Draft) RemoveItem(id uuid.UUID, now time.Time) bool {
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.updatedAt = now
			return true
		}
	}
	return false
}

// UpdateItem merges the patch into the matching item and unconditionally
// recomputes its subtotal. Returns false without touching anything when the
// id is not on the draft.
func (d *Draft) UpdateItem(id uuid.UUID, p LineItemPatch, now time.Time) (bool, error) {
	for i := range d.items {
		if d.items[i].ID != id {
			continue
		}

		item := d.items[i]
		item.Name = patch.Coalesce(p.Name, item.Name)
		item.Description = patch.Coalesce(p.Description, item.Description)
		item.Unit = patch.Coalesce(p.Unit, item.Unit)
		item.Quantity = patch.Coalesce(p.Quantity, item.Quantity)
		item.UnitPrice = patch.Coalesce(p.UnitPrice, item.UnitPrice)
		item.DiscountPercent = patch.Coalesce(p.DiscountPercent, item.DiscountPercent)
		item.DiscountAmount = patch.Coalesce(p.DiscountAmount, item.DiscountAmount)
		item.Total = patch.Coalesce(p.Total, item.Total)
		item.DisplayOrder = patch.Coalesce(p.DisplayOrder, item.DisplayOrder)
		item.NeedsSubcontractor = patch.Coalesce(p.NeedsSubcontractor, item.NeedsSubcontractor)
		if p.EquipmentIDs != nil {
			item.EquipmentIDs = p.EquipmentIDs
		}
		if p.SubcontractorID != nil {
			item.SubcontractorID = p.SubcontractorID
		}

		q, price, disc, err := d.policy.apply(item.Quantity, item.UnitPrice, item.DiscountPercent)
		if err != nil {
			return true, err
		}
		item.Quantity, item.UnitPrice, item.DiscountPercent = q, price, disc

		item.Subtotal = ComputeSubtotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
		d.items[i] = item
		d.updatedAt = now
		return true, nil
	}
	return false, nil
}

// SetCustomItem merges the patch into the scratch object. The scratch is not
// part of the item list until CommitCustomItem.
func (d *Draft) SetCustomItem(p CustomItemPatch, now time.Time) {
	d.custom.Name = patch.Coalesce(p.Name, d.custom.Name)
	d.custom.Description = patch.Coalesce(p.Description, d.custom.Description)
	d.custom.Unit = patch.Coalesce(p.Unit, d.custom.Unit)
	d.custom.Quantity = patch.Coalesce(p.Quantity, d.custom.Quantity)
	d.custom.UnitPrice = patch.Coalesce(p.UnitPrice, d.custom.UnitPrice)
	d.custom.DiscountPercent = patch.Coalesce(p.DiscountPercent, d.custom.DiscountPercent)
	d.custom.NeedsSubcontractor = patch.Coalesce(p.NeedsSubcontractor, d.custom.NeedsSubcontractor)
	if p.EquipmentIDs != nil {
		d.custom.EquipmentIDs = p.EquipmentIDs
	}
	if p.SubcontractorID != nil {
		d.custom.SubcontractorID = p.SubcontractorID
	}
	d.updatedAt = now
}

// CommitCustomItem converts the scratch object into a line item, appends it
// and resets the scratch. A zero quantity on the scratch is treated as "not
// entered" and becomes 1, matching the quantity default everywhere else.
func (d *Draft) CommitCustomItem(now time.Time) (LineItem, error) {
	quantity := d.custom.Quantity
	if quantity == 0 {
		quantity = 1
	}

	q, price, disc, err := d.policy.apply(quantity, d.custom.UnitPrice, d.custom.DiscountPercent)
	if err != nil {
		return LineItem{}, err
	}

	item := LineItem{
		ID:                 uuid.New(),
		Name:               d.custom.Name,
		Description:        d.custom.Description,
		Unit:               d.custom.Unit,
		Quantity:           q,
		UnitPrice:          price,
		DiscountPercent:    disc,
		Subtotal:           ComputeSubtotal(q, price, disc),
		EquipmentIDs:       d.custom.EquipmentIDs,
		SubcontractorID:    d.custom.SubcontractorID,
		NeedsSubcontractor: d.custom.NeedsSubcontractor,
	}
	d.items = append(d.items, item)
	d.custom = CustomItemDraft{}
	d.updatedAt = now
	return item, nil
}

// Reset clears the draft back to its initial empty shape: no items, empty
// scratch object.
func (d *Draft) Reset(now time.Time) {
	d.items = []LineItem{}
	d.custom = CustomItemDraft{}
	d.updatedAt = now
}

// Total is derived on every read and never cached, so it cannot go stale.
func (d *Draft) Total() float64 {
	var total float64
	for i := range d.items {
		total += d.items[i].Subtotal
	}
	return total
}
