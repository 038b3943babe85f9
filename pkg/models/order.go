package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/aseertime/pkg/money"
)

// ErrInvalidStatus is returned for unknown order statuses.
var ErrInvalidStatus = errors.New("invalid order status")

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled}

// OrderStatuses lists statuses in workflow order.
func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderStatuses...)
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range orderStatuses {
		if string(st) == strings.ToLower(strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidStatus, s)
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Order is read and edited by the back office only; the storefront never creates one.
type Order struct {
	ID              string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerName    string        `gorm:"type:varchar(100);not null" json:"customerName"`
	CustomerPhone   string        `gorm:"type:varchar(20)" json:"customerPhone"`
	CustomerEmail   string        `gorm:"type:varchar(100)" json:"customerEmail,omitempty"`
	DeliveryAddress string        `gorm:"type:varchar(255)" json:"deliveryAddress"`
	BranchID        string        `gorm:"type:varchar(36);index" json:"branchId,omitempty"`
	ZoneID          string        `gorm:"type:varchar(36)" json:"zoneId,omitempty"`
	Items           []OrderLine   `gorm:"type:text;serializer:json" json:"items"`
	Subtotal        money.Amount  `json:"subtotal"`
	DeliveryFee     money.Amount  `json:"deliveryFee"`
	Total           money.Amount  `json:"total"`
	Status          OrderStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentMethod   string        `gorm:"type:varchar(30)" json:"paymentMethod"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	DeliveredAt     *time.Time    `json:"deliveredAt,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o Order) Key() string { return o.ID }

type OrderLine struct {
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    money.Amount `json:"price"`
}
