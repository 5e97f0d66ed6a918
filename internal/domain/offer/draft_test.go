//go:build unit

package offer_test

import (
	"math"
	"testing"
	"time"

	"eventcrm/internal/domain/catalog"
	"eventcrm/internal/domain/offer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floatTolerance = 1e-9

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestProduct(t *testing.T, name string, basePrice float64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(uuid.New(), name, "", "szt", basePrice)
	require.NoError(t, err)
	return p
}

func floatPtr(v float64) *float64 { return &v }

func assertSubtotalInvariant(t *testing.T, d *offer.Draft) {
	t.Helper()
	for _, item := range d.Items() {
		expected := offer.ComputeSubtotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
		assert.InDelta(t, expected, item.Subtotal, floatTolerance,
			"subtotal stale for item %s", item.ID)
	}
}

func TestDraftAddProduct(t *testing.T) {
	t.Run("appends a new item with quantity 1 and subtotal equal to base price", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		p := newTestProduct(t, "Fog machine", 100)

		item := d.AddProduct(p, testNow)

		items := d.Items()
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
		require.NotNil(t, items[0].ProductID)
		assert.Equal(t, p.ID(), *items[0].ProductID)
		assert.Equal(t, "Fog machine", items[0].Name)
		assert.Equal(t, "szt", items[0].Unit)
		assert.InDelta(t, 1.0, items[0].Quantity, floatTolerance)
		assert.InDelta(t, 100.0, items[0].UnitPrice, floatTolerance)
		assert.InDelta(t, 0.0, items[0].DiscountPercent, floatTolerance)
		assert.InDelta(t, 100.0, items[0].Subtotal, floatTolerance)
	})

	t.Run("adding the same product twice merges into one item with quantity 2", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		p := newTestProduct(t, "Fog machine", 100)

		d.AddProduct(p, testNow)
		d.AddProduct(p, testNow)

		items := d.Items()
		require.Len(t, items, 1)
		assert.InDelta(t, 2.0, items[0].Quantity, floatTolerance)
		assert.InDelta(t, 200.0, items[0].Subtotal, floatTolerance)
		assertSubtotalInvariant(t, d)
	})

	t.Run("different products stay separate rows", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)
		d.AddProduct(newTestProduct(t, "Moving head", 250), testNow)

		require.Len(t, d.Items(), 2)
		assert.InDelta(t, 350.0, d.Total(), floatTolerance)
	})
}

func TestDraftUpdateItem(t *testing.T) {
	t.Run("recomputes subtotal after quantity and discount change", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		found, err := d.UpdateItem(item.ID, offer.LineItemPatch{
			Quantity:        floatPtr(3),
			DiscountPercent: floatPtr(10),
		}, testNow)
		require.NoError(t, err)
		require.True(t, found)

		items := d.Items()
		require.Len(t, items, 1)
		assert.InDelta(t, 270.0, items[0].Subtotal, floatTolerance) // 3 * 100 * 0.9
	})

	t.Run("recomputes even when patch touches no pricing field", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)
		name := "Fog machine XL"

		found, err := d.UpdateItem(item.ID, offer.LineItemPatch{Name: &name}, testNow)
		require.NoError(t, err)
		require.True(t, found)

		items := d.Items()
		assert.Equal(t, "Fog machine XL", items[0].Name)
		assertSubtotalInvariant(t, d)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		found, err := d.UpdateItem(uuid.New(), offer.LineItemPatch{Quantity: floatPtr(5)}, testNow)
		require.NoError(t, err)
		assert.False(t, found)
		assert.InDelta(t, 100.0, d.Total(), floatTolerance)
	})

	t.Run("non-finite inputs are normalized, not rejected", func(t *testing.T) {
		cases := []struct {
			name     string
			patch    offer.LineItemPatch
			expected float64
		}{
			{"NaN quantity becomes 1", offer.LineItemPatch{Quantity: floatPtr(math.NaN())}, 100},
			{"Inf quantity becomes 1", offer.LineItemPatch{Quantity: floatPtr(math.Inf(1))}, 100},
			{"NaN unit price becomes 0", offer.LineItemPatch{UnitPrice: floatPtr(math.NaN())}, 0},
			{"NaN discount becomes 0", offer.LineItemPatch{DiscountPercent: floatPtr(math.NaN())}, 100},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
				item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

				found, err := d.UpdateItem(item.ID, tc.patch, testNow)
				require.NoError(t, err)
				require.True(t, found)
				assert.InDelta(t, tc.expected, d.Items()[0].Subtotal, floatTolerance)
			})
		}
	})

	t.Run("discount above 100 inverts the subtotal when no policy is set", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		_, err := d.UpdateItem(item.ID, offer.LineItemPatch{DiscountPercent: floatPtr(150)}, testNow)
		require.NoError(t, err)
		assert.InDelta(t, -50.0, d.Items()[0].Subtotal, floatTolerance)
	})
}

func TestDraftPolicy(t *testing.T) {
	t.Run("clamp policy caps discount at 100", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{ClampDiscountPercent: true}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		_, err := d.UpdateItem(item.ID, offer.LineItemPatch{DiscountPercent: floatPtr(150)}, testNow)
		require.NoError(t, err)

		items := d.Items()
		assert.InDelta(t, 100.0, items[0].DiscountPercent, floatTolerance)
		assert.InDelta(t, 0.0, items[0].Subtotal, floatTolerance)
	})

	t.Run("clamp policy raises negative discount to 0", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{ClampDiscountPercent: true}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		_, err := d.UpdateItem(item.ID, offer.LineItemPatch{DiscountPercent: floatPtr(-20)}, testNow)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, d.Items()[0].Subtotal, floatTolerance)
	})

	t.Run("reject policy refuses negative quantity", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{RejectNegativeAmounts: true}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		found, err := d.UpdateItem(item.ID, offer.LineItemPatch{Quantity: floatPtr(-2)}, testNow)
		require.True(t, found)
		assert.ErrorIs(t, err, offer.ErrNegativeAmount)
		// Rejected update leaves the item untouched.
		assert.InDelta(t, 100.0, d.Items()[0].Subtotal, floatTolerance)
	})
}

func TestDraftRemoveItem(t *testing.T) {
	t.Run("remove is idempotent", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		item := d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)

		assert.True(t, d.RemoveItem(item.ID, testNow))
		assert.False(t, d.RemoveItem(item.ID, testNow))
		assert.Empty(t, d.Items())
		assert.InDelta(t, 0.0, d.Total(), floatTolerance)
	})
}

func TestDraftCustomItem(t *testing.T) {
	name := "Stage rigging crew"
	unit := "h"

	t.Run("set merges partial fields into the scratch object", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)

		d.SetCustomItem(offer.CustomItemPatch{Name: &name, UnitPrice: floatPtr(80)}, testNow)
		d.SetCustomItem(offer.CustomItemPatch{Unit: &unit, Quantity: floatPtr(6)}, testNow)

		custom := d.CustomItem()
		assert.Equal(t, name, custom.Name)
		assert.Equal(t, unit, custom.Unit)
		assert.InDelta(t, 80.0, custom.UnitPrice, floatTolerance)
		assert.InDelta(t, 6.0, custom.Quantity, floatTolerance)
	})

	t.Run("commit appends a computed line item and resets the scratch", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		d.SetCustomItem(offer.CustomItemPatch{
			Name:            &name,
			Unit:            &unit,
			Quantity:        floatPtr(6),
			UnitPrice:       floatPtr(80),
			DiscountPercent: floatPtr(25),
		}, testNow)

		item, err := d.CommitCustomItem(testNow)
		require.NoError(t, err)

		assert.Nil(t, item.ProductID, "custom items carry no catalog reference")
		assert.InDelta(t, 360.0, item.Subtotal, floatTolerance) // 6 * 80 * 0.75

		require.Len(t, d.Items(), 1)
		assert.Equal(t, offer.CustomItemDraft{}, d.CustomItem())
	})

	t.Run("commit without an entered quantity defaults it to 1", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		d.SetCustomItem(offer.CustomItemPatch{Name: &name, UnitPrice: floatPtr(80)}, testNow)

		item, err := d.CommitCustomItem(testNow)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, item.Quantity, floatTolerance)
		assert.InDelta(t, 80.0, item.Subtotal, floatTolerance)
	})
}

func TestDraftReset(t *testing.T) {
	t.Run("reset restores the initial shape regardless of prior mutations", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		p := newTestProduct(t, "Fog machine", 100)
		name := "Crew"

		d.AddProduct(p, testNow)
		d.AddProduct(p, testNow)
		d.SetCustomItem(offer.CustomItemPatch{Name: &name}, testNow)

		d.Reset(testNow)

		assert.Empty(t, d.Items())
		assert.Equal(t, offer.CustomItemDraft{}, d.CustomItem())
		assert.InDelta(t, 0.0, d.Total(), floatTolerance)
	})
}

func TestDraftTotal(t *testing.T) {
	t.Run("total is the sum of all subtotals", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		assert.InDelta(t, 0.0, d.Total(), floatTolerance)

		d.AddProduct(newTestProduct(t, "Fog machine", 100), testNow)
		item := d.AddProduct(newTestProduct(t, "Moving head", 250), testNow)
		_, err := d.UpdateItem(item.ID, offer.LineItemPatch{
			Quantity:        floatPtr(2),
			DiscountPercent: floatPtr(50),
		}, testNow)
		require.NoError(t, err)

		assert.InDelta(t, 100.0+250.0, d.Total(), floatTolerance)
		assertSubtotalInvariant(t, d)
	})

	t.Run("worked example from the offer builder", func(t *testing.T) {
		d := offer.NewDraft(uuid.New(), offer.Policy{}, testNow)
		p := newTestProduct(t, "Fog machine", 100)

		item := d.AddProduct(p, testNow)
		require.Len(t, d.Items(), 1)
		assert.InDelta(t, 1.0, item.Quantity, floatTolerance)
		assert.InDelta(t, 100.0, item.UnitPrice, floatTolerance)
		assert.InDelta(t, 100.0, item.Subtotal, floatTolerance)

		_, err := d.UpdateItem(item.ID, offer.LineItemPatch{
			Quantity:        floatPtr(3),
			DiscountPercent: floatPtr(10),
		}, testNow)
		require.NoError(t, err)
		assert.InDelta(t, 270.0, d.Items()[0].Subtotal, floatTolerance)
		assert.InDelta(t, 270.0, d.Total(), floatTolerance)
	})
}
