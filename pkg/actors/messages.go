package actors

import (
	"time"

	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/models"
)

// Cart messages. Every one is answered with a *CartReply.

type AddItem struct {
	ProductID string
	Selection cart.Selection
}

type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

type RemoveItem struct {
	ItemID string
}

type ClearCart struct{}

type SelectZone struct {
	BranchID string
	ZoneID   string
}

type GetCart struct{}

// CartReply carries the cart after the request. Item is the line touched by
// AddItem or UpdateQuantity. Found is false when the item id was unknown.
type CartReply struct {
	Snapshot cart.Snapshot
	Quote    cart.Quote
	Item     *cart.Item
	Found    bool
	Err      error
}

// Notification messages.

type OrderStatusChanged struct {
	OrderID      string             `json:"orderId"`
	CustomerName string             `json:"customerName"`
	From         models.OrderStatus `json:"from"`
	To           models.OrderStatus `json:"to"`
	At           time.Time          `json:"at"`
}

type GetNotifications struct{}

type Notifications struct {
	Items []OrderStatusChanged `json:"items"`
}
