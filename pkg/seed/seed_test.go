package seed

import (
	"testing"

	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()

	assert.Len(t, d.Branches, 2)
	assert.Len(t, d.Zones, 2)
	assert.Len(t, d.Categories, 6)
	assert.Len(t, d.Products, 6)
	assert.Len(t, d.Orders, 5)
	assert.Equal(t, "KWD", d.Settings.Currency)
	assert.Equal(t, "0.500", d.Settings.DefaultDeliveryFee.String())
}

func TestZonesBelongToBranches(t *testing.T) {
	d := Default()
	ids := map[string]bool{}
	for _, b := range d.Branches {
		ids[b.ID] = true
	}
	for _, z := range d.Zones {
		assert.True(t, ids[z.BranchID], z.ID)
	}
}

func TestEveryProductHasOneDefaultVariant(t *testing.T) {
	for _, p := range Default().Products {
		defaults := 0
		for _, v := range p.Variants {
			if v.IsDefault {
				defaults++
			}
		}
		assert.Equal(t, 1, defaults, p.Name)
	}
}

func TestCarrotDefaultsToBaby(t *testing.T) {
	var carrot models.Product
	for _, p := range Default().Products {
		if p.ID == "4" {
			carrot = p
		}
	}
	v, ok := carrot.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, "4-1", v.ID)
	assert.Equal(t, money.MustParse("0.850"), v.Price)
}

func TestSeededProductConfigures(t *testing.T) {
	p := Default().Products[0]
	item, err := cart.Configure(p, cart.Selection{AddonIDs: []string{"1-addon-1"}, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "7.000", item.TotalPrice.String())
}

func TestDefaultIsFresh(t *testing.T) {
	a := Default()
	a.Products[0].Name = "changed"
	assert.NotEqual(t, "changed", Default().Products[0].Name)
}
