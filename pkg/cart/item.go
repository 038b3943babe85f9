package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/google/uuid"
)

// SelectedAddon is an addon chosen for a line, with any of its options.
type SelectedAddon struct {
	AddonID         string               `json:"addonId"`
	Addon           models.ProductAddon  `json:"addon"`
	SelectedOptions []models.AddonOption `json:"selectedOptions"`
}

// Item is one cart line. Product, variant and addons are copies taken at add
// time; later catalog edits do not reach into the cart.
type Item struct {
	ID           string                `json:"id"`
	ProductID    string                `json:"productId"`
	Product      models.Product        `json:"product"`
	VariantID    string                `json:"variantId"`
	Variant      models.ProductVariant `json:"variant"`
	Addons       []SelectedAddon       `json:"addons"`
	Quantity     int                   `json:"quantity"`
	CustomerNote string                `json:"customerNote,omitempty"`
	TotalPrice   money.Amount          `json:"totalPrice"`
}

// UnitPrice is the variant price plus every selected addon and option.
func UnitPrice(variant models.ProductVariant, addons []SelectedAddon) money.Amount {
	unit := variant.Price
	for _, a := range addons {
		unit += a.Addon.Price
		for _, o := range a.SelectedOptions {
			unit += o.Price
		}
	}
	return unit
}

// LinePrice is UnitPrice times quantity.
func LinePrice(variant models.ProductVariant, addons []SelectedAddon, quantity int) money.Amount {
	return UnitPrice(variant, addons).Mul(quantity)
}

// UnitPrice derives the line's unit price from its own snapshot.
func (it Item) UnitPrice() money.Amount {
	return UnitPrice(it.Variant, it.Addons)
}

// Signature identifies lines that merge: same product, same variant, same
// addon set. Addon and option order does not matter.
func (it Item) Signature() string {
	parts := make([]string, 0, len(it.Addons))
	for _, a := range it.Addons {
		opts := make([]string, 0, len(a.SelectedOptions))
		for _, o := range a.SelectedOptions {
			opts = append(opts, o.ID)
		}
		sort.Strings(opts)
		parts = append(parts, a.AddonID+":"+strings.Join(opts, ","))
	}
	sort.Strings(parts)
	return it.ProductID + "|" + it.VariantID + "|" + strings.Join(parts, ";")
}

// Selection is what the product page submits.
type Selection struct {
	VariantID string              `json:"variantId"`
	AddonIDs  []string            `json:"addonIds"`
	Options   map[string][]string `json:"options"` // addon id -> option ids
	Quantity  int                 `json:"quantity"`
	Note      string              `json:"customerNote"`
}

// Configure turns a selection on a product into a priced cart line.
// An empty variant id picks the product's default variant. Quantity below 1 becomes 1.
func Configure(p models.Product, sel Selection) (Item, error) {
	if !p.IsActive {
		return Item{}, ErrProductInactive
	}

	var (
		variant models.ProductVariant
		ok      bool
	)
	if sel.VariantID == "" {
		variant, ok = p.DefaultVariant()
		if !ok {
			return Item{}, ErrNoVariants
		}
	} else if variant, ok = p.Variant(sel.VariantID); !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrVariantNotFound, sel.VariantID)
	}

	chosen := make(map[string]bool, len(sel.AddonIDs))
	addons := make([]SelectedAddon, 0, len(sel.AddonIDs))
	for _, id := range sel.AddonIDs {
		if chosen[id] {
			continue
		}
		addon, ok := p.Addon(id)
		if !ok {
			return Item{}, fmt.Errorf("%w: %s", ErrAddonNotFound, id)
		}
		chosen[id] = true

		selected := SelectedAddon{AddonID: id, Addon: addon}
		for _, optID := range sel.Options[id] {
			opt, ok := addon.Option(optID)
			if !ok {
				return Item{}, fmt.Errorf("%w: %s", ErrOptionNotFound, optID)
			}
			selected.SelectedOptions = append(selected.SelectedOptions, opt)
		}
		addons = append(addons, selected)
	}

	for _, a := range p.Addons {
		if a.IsRequired && !chosen[a.ID] {
			return Item{}, ErrRequiredAddon
		}
	}

	qty := sel.Quantity
	if qty < 1 {
		qty = 1
	}

	return Item{
		ID:           uuid.NewString(),
		ProductID:    p.ID,
		Product:      p,
		VariantID:    variant.ID,
		Variant:      variant,
		Addons:       addons,
		Quantity:     qty,
		CustomerNote: strings.TrimSpace(sel.Note),
		TotalPrice:   LinePrice(variant, addons, qty),
	}, nil
}
