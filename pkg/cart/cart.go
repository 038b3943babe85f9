// Package cart prices product selections and keeps the ordered list of lines a
// customer intends to buy.
//
// A Cart is owned by a single writer and is not safe for concurrent use; the
// server serializes access per session through an actor.
package cart

import (
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/google/uuid"
)

type Cart struct {
	items     []Item
	branchID  string
	zoneID    string
	updatedAt time.Time
}

func New() *Cart {
	return &Cart{}
}

// Add appends item, or merges it into a line with the same signature. On merge
// the quantities add up, the total is the new quantity times the incoming
// item's unit price, and the existing line keeps its id and note.
func (c *Cart) Add(item Item) Item {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.ProductID == "" {
		item.ProductID = item.Product.ID
	}
	if item.VariantID == "" {
		item.VariantID = item.Variant.ID
	}
	c.updatedAt = time.Now()

	sig := item.Signature()
	for i := range c.items {
		line := &c.items[i]
		if line.Signature() != sig {
			continue
		}
		line.Quantity += item.Quantity
		line.Product = item.Product
		line.Variant = item.Variant
		line.Addons = item.Addons
		line.TotalPrice = item.UnitPrice().Mul(line.Quantity)
		return *line
	}

	item.TotalPrice = item.UnitPrice().Mul(item.Quantity)
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity sets a line's quantity, clamped to at least 1, and reprices it.
func (c *Cart) UpdateQuantity(itemID string, quantity int) (Item, bool) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		line := &c.items[i]
		if line.ID != itemID {
			continue
		}
		line.Quantity = quantity
		line.TotalPrice = line.UnitPrice().Mul(quantity)
		c.updatedAt = time.Now()
		return *line, true
	}
	return Item{}, false
}

func (c *Cart) Remove(itemID string) bool {
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = time.Now()
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.items = nil
	c.updatedAt = time.Now()
}

func (c *Cart) Get(itemID string) (Item, bool) {
	for _, it := range c.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Subtotal() money.Amount {
	var sum money.Amount
	for _, it := range c.items {
		sum += it.TotalPrice
	}
	return sum
}

// ItemCount sums quantities, not lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// SelectZone records the branch and delivery zone the customer picked.
func (c *Cart) SelectZone(branchID, zoneID string) {
	c.branchID = branchID
	c.zoneID = zoneID
	c.updatedAt = time.Now()
}

func (c *Cart) BranchID() string { return c.branchID }
func (c *Cart) ZoneID() string   { return c.zoneID }

// Defaults apply when no zone is selected.
type Defaults struct {
	DeliveryFee  money.Amount
	MinimumOrder money.Amount
}

type Quote struct {
	ItemCount    int          `json:"itemCount"`
	Subtotal     money.Amount `json:"subtotal"`
	DeliveryFee  money.Amount `json:"deliveryFee"`
	Total        money.Amount `json:"total"`
	MinimumOrder money.Amount `json:"minimumOrder"`
	CanCheckout  bool         `json:"canCheckout"`
	Shortfall    money.Amount `json:"shortfall"`
}

// Quote prices the cart for delivery to zone, or with fallback when zone is nil.
func (c *Cart) Quote(zone *models.DeliveryZone, fallback Defaults) Quote {
	fee, minimum := fallback.DeliveryFee, fallback.MinimumOrder
	if zone != nil {
		fee, minimum = zone.DeliveryFee, zone.MinimumOrder
	}

	subtotal := c.Subtotal()
	q := Quote{
		ItemCount:    c.ItemCount(),
		Subtotal:     subtotal,
		DeliveryFee:  fee,
		Total:        subtotal + fee,
		MinimumOrder: minimum,
		CanCheckout:  subtotal >= minimum,
	}
	if !q.CanCheckout {
		q.Shortfall = minimum - subtotal
	}
	return q
}

// Snapshot is the serializable form of a cart.
type Snapshot struct {
	Items     []Item       `json:"items"`
	BranchID  string       `json:"branchId,omitempty"`
	ZoneID    string       `json:"zoneId,omitempty"`
	Subtotal  money.Amount `json:"subtotal"`
	ItemCount int          `json:"itemCount"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (c *Cart) Snapshot() Snapshot {
	items := c.Items()
	if items == nil {
		items = []Item{}
	}
	return Snapshot{
		Items:     items,
		BranchID:  c.branchID,
		ZoneID:    c.zoneID,
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
		UpdatedAt: c.updatedAt,
	}
}

// Restore rebuilds a cart from a snapshot. Derived fields are recomputed.
func Restore(s Snapshot) *Cart {
	return &Cart{
		items:     append([]Item(nil), s.Items...),
		branchID:  s.BranchID,
		zoneID:    s.ZoneID,
		updatedAt: s.UpdatedAt,
	}
}
