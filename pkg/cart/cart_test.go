package cart

import (
	"errors"
	"testing"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func juice() models.Product {
	return models.Product{
		ID:         "1",
		Name:       "Avocado With Honey And Nuts Juice",
		CategoryID: "5",
		IsActive:   true,
		Variants: []models.ProductVariant{
			{ID: "1-1", Name: "Small", Price: money.MustParse("2.5")},
			{ID: "1-2", Name: "Medium", Price: money.MustParse("3.0"), IsDefault: true},
			{ID: "1-3", Name: "Large", Price: money.MustParse("3.5")},
		},
		Addons: []models.ProductAddon{
			{ID: "1-addon-1", Name: "Extra Honey", Price: money.MustParse("0.5")},
			{ID: "1-addon-2", Name: "Extra Nuts", Price: money.MustParse("0.75")},
		},
	}
}

func configure(t *testing.T, p models.Product, sel Selection) Item {
	t.Helper()
	it, err := Configure(p, sel)
	require.NoError(t, err)
	return it
}

func TestLinePrice(t *testing.T) {
	p := juice()
	medium, _ := p.Variant("1-2")
	honey, _ := p.Addon("1-addon-1")
	nuts, _ := p.Addon("1-addon-2")
	addons := []SelectedAddon{{AddonID: honey.ID, Addon: honey}, {AddonID: nuts.ID, Addon: nuts}}

	for q := 1; q <= 7; q++ {
		want := (medium.Price + honey.Price + nuts.Price).Mul(q)
		assert.Equal(t, want, LinePrice(medium, addons, q))
	}
	assert.Equal(t, money.MustParse("12.750"), LinePrice(medium, addons, 3))
}

func TestLinePrice_WithOptions(t *testing.T) {
	v := models.ProductVariant{ID: "v", Price: money.MustParse("1.000")}
	addon := models.ProductAddon{ID: "a", Price: money.MustParse("0.100"), Options: []models.AddonOption{{ID: "o", Price: money.MustParse("0.250")}}}
	sel := []SelectedAddon{{AddonID: "a", Addon: addon, SelectedOptions: addon.Options}}

	assert.Equal(t, money.MustParse("2.700"), LinePrice(v, sel, 2))
}

func TestConfigure_DefaultVariant(t *testing.T) {
	it := configure(t, juice(), Selection{})

	assert.Equal(t, "1-2", it.VariantID)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, money.MustParse("3.000"), it.TotalPrice)
	assert.NotEmpty(t, it.ID)
}

func TestConfigure_FirstVariantWhenNoDefault(t *testing.T) {
	p := juice()
	for i := range p.Variants {
		p.Variants[i].IsDefault = false
	}
	it := configure(t, p, Selection{})
	assert.Equal(t, "1-1", it.VariantID)
}

func TestConfigure_QuantityClamped(t *testing.T) {
	it := configure(t, juice(), Selection{Quantity: -4})
	assert.Equal(t, 1, it.Quantity)
}

func TestConfigure_Errors(t *testing.T) {
	p := juice()

	_, err := Configure(p, Selection{VariantID: "nope"})
	assert.True(t, errors.Is(err, ErrVariantNotFound))

	_, err = Configure(p, Selection{AddonIDs: []string{"nope"}})
	assert.True(t, errors.Is(err, ErrAddonNotFound))

	p.Addons[1].IsRequired = true
	_, err = Configure(p, Selection{AddonIDs: []string{"1-addon-1"}})
	assert.True(t, errors.Is(err, ErrRequiredAddon))
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, CodeFailedPrecondition, cerr.Code)

	p.IsActive = false
	_, err = Configure(p, Selection{})
	assert.True(t, errors.Is(err, ErrProductInactive))

	_, err = Configure(models.Product{ID: "x", IsActive: true}, Selection{})
	assert.True(t, errors.Is(err, ErrNoVariants))
}

func TestAdd_IdenticalSelectionsMerge(t *testing.T) {
	c := New()
	sel := Selection{VariantID: "1-2", AddonIDs: []string{"1-addon-1"}}

	first := c.Add(configure(t, juice(), sel))
	c.Add(configure(t, juice(), sel))

	require.Equal(t, 1, c.Len())
	line, ok := c.Get(first.ID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, money.MustParse("7.000"), line.TotalPrice)
}

func TestAdd_AddonOrderDoesNotMatter(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{AddonIDs: []string{"1-addon-1", "1-addon-2"}}))
	c.Add(configure(t, juice(), Selection{AddonIDs: []string{"1-addon-2", "1-addon-1"}}))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.ItemCount())
}

func TestAdd_DifferentSelectionsStaySeparate(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{VariantID: "1-1"}))
	c.Add(configure(t, juice(), Selection{VariantID: "1-2"}))
	c.Add(configure(t, juice(), Selection{VariantID: "1-2", AddonIDs: []string{"1-addon-1"}}))

	assert.Equal(t, 3, c.Len())
}

func TestAdd_MergeKeepsExistingNote(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{Note: "no ice"}))
	merged := c.Add(configure(t, juice(), Selection{Note: "extra cold"}))

	assert.Equal(t, "no ice", merged.CustomerNote)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	it := c.Add(configure(t, juice(), Selection{AddonIDs: []string{"1-addon-1"}, Quantity: 2}))

	updated, ok := c.UpdateQuantity(it.ID, 3)
	require.True(t, ok)
	assert.Equal(t, money.MustParse("10.500"), updated.TotalPrice)

	updated, ok = c.UpdateQuantity(it.ID, 0)
	require.True(t, ok)
	assert.Equal(t, 1, updated.Quantity)
	assert.Equal(t, money.MustParse("3.500"), updated.TotalPrice)

	_, ok = c.UpdateQuantity("missing", 2)
	assert.False(t, ok)
}

func TestUpdateThenRemoveEmptiesCart(t *testing.T) {
	c := New()
	it := c.Add(configure(t, juice(), Selection{}))

	c.UpdateQuantity(it.ID, 4)
	assert.True(t, c.Remove(it.ID))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, money.Amount(0), c.Subtotal())
	assert.False(t, c.Remove(it.ID))
}

func TestItemCountSumsQuantities(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{VariantID: "1-1", Quantity: 2}))
	c.Add(configure(t, juice(), Selection{VariantID: "1-3", Quantity: 3}))

	assert.Equal(t, 5, c.ItemCount())
	assert.Equal(t, 2, c.Len())
}

func TestQuote(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{Quantity: 1}))
	defaults := Defaults{DeliveryFee: money.MustParse("0.5"), MinimumOrder: money.MustParse("5")}

	q := c.Quote(nil, defaults)
	assert.Equal(t, money.MustParse("3.000"), q.Subtotal)
	assert.Equal(t, money.MustParse("3.500"), q.Total)
	assert.False(t, q.CanCheckout)
	assert.Equal(t, money.MustParse("2.000"), q.Shortfall)

	zone := &models.DeliveryZone{DeliveryFee: money.MustParse("0.25"), MinimumOrder: money.MustParse("3")}
	q = c.Quote(zone, defaults)
	assert.Equal(t, money.MustParse("3.250"), q.Total)
	assert.True(t, q.CanCheckout)
	assert.Equal(t, money.Amount(0), q.Shortfall)
}

func TestSnapshotRestore(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{Quantity: 2}))
	c.SelectZone("1", "1")

	restored := Restore(c.Snapshot())
	assert.Equal(t, c.Items(), restored.Items())
	assert.Equal(t, "1", restored.ZoneID())
	assert.Equal(t, c.Subtotal(), restored.Subtotal())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(configure(t, juice(), Selection{}))
	c.Clear()
	assert.Equal(t, 0, c.ItemCount())
	assert.Empty(t, c.Snapshot().Items)
}
