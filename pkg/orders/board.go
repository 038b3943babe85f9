// Package orders is the back-office order board: listing, staged status
// changes applied in one batch, and CSV export.
package orders

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/query"
	"github.com/example/aseertime/pkg/repository"
	"go.uber.org/zap"
)

var (
	ErrNotFound       = repository.ErrNotFound
	ErrInvalidPayment = errors.New("invalid payment status")
	ErrEmptyChange    = errors.New("change has nothing to apply")
)

// Change is a staged edit. Empty fields leave the order as it is.
type Change struct {
	Status        models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus,omitempty"`
}

func (c Change) merge(next Change) Change {
	if next.Status != "" {
		c.Status = next.Status
	}
	if next.PaymentStatus != "" {
		c.PaymentStatus = next.PaymentStatus
	}
	return c
}

func (c Change) validate() error {
	if c.Status == "" && c.PaymentStatus == "" {
		return ErrEmptyChange
	}
	if c.Status != "" {
		if _, err := models.ParseOrderStatus(string(c.Status)); err != nil {
			return err
		}
	}
	switch c.PaymentStatus {
	case "", models.PaymentPending, models.PaymentPaid, models.PaymentFailed:
		return nil
	default:
		return fmt.Errorf("%w %q", ErrInvalidPayment, c.PaymentStatus)
	}
}

// StatusChange is emitted for every applied status transition.
type StatusChange struct {
	OrderID      string
	CustomerName string
	From         models.OrderStatus
	To           models.OrderStatus
	At           time.Time
}

type Notifier interface {
	StatusChanged(ctx context.Context, change StatusChange)
}

type Board struct {
	repo     repository.Repository[models.Order]
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	staged map[string]Change
}

// NewBoard builds a board over repo. notifier may be nil.
func NewBoard(repo repository.Repository[models.Order], notifier Notifier, logger *zap.Logger) *Board {
	return &Board{
		repo:     repo,
		notifier: notifier,
		logger:   logger.Named("orders"),
		now:      time.Now,
		staged:   make(map[string]Change),
	}
}

func statusFilter(v string) (query.Predicate[models.Order], error) {
	if strings.EqualFold(v, "all") {
		return nil, nil
	}
	st, err := models.ParseOrderStatus(v)
	if err != nil {
		return nil, err
	}
	return func(o models.Order) bool { return o.Status == st }, nil
}

func createdAt(o models.Order) time.Time { return o.CreatedAt }

// Spec searches customer name, id and email; filters by status and an
// inclusive created-at date range; newest first by default.
func Spec() query.Spec[models.Order] {
	return query.Spec[models.Order]{
		SearchFields: []func(models.Order) string{
			func(o models.Order) string { return o.CustomerName },
			func(o models.Order) string { return o.ID },
			func(o models.Order) string { return o.CustomerEmail },
		},
		Filters: map[string]query.FilterFunc[models.Order]{
			"status": statusFilter,
			"from":   query.DateFrom(createdAt),
			"to":     query.DateTo(createdAt),
		},
		Sorters: map[string]func(a, b models.Order) int{
			"createdAt":    query.ByTime(createdAt),
			"total":        query.By(func(o models.Order) int64 { return int64(o.Total) }),
			"customerName": query.ByFold(func(o models.Order) string { return o.CustomerName }),
			"status":       query.By(func(o models.Order) string { return string(o.Status) }),
		},
		DefaultSort: "createdAt",
		DefaultDir:  query.Desc,
	}
}

func (b *Board) List(ctx context.Context, p query.Params) (query.Page[models.Order], error) {
	all, err := b.repo.List(ctx)
	if err != nil {
		return query.Page[models.Order]{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return query.Run(all, Spec(), p)
}

func (b *Board) Get(ctx context.Context, id string) (models.Order, error) {
	o, err := b.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return o, fmt.Errorf("order %q: %w", id, ErrNotFound)
	}
	return o, err
}

// Stage records a change for one order, merging with any change already staged.
func (b *Board) Stage(ctx context.Context, id string, c Change) error {
	return b.stage(ctx, []string{id}, c)
}

// BulkStatus stages the same status for every listed order.
func (b *Board) BulkStatus(ctx context.Context, ids []string, status models.OrderStatus) error {
	return b.stage(ctx, ids, Change{Status: status})
}

func (b *Board) stage(ctx context.Context, ids []string, c Change) error {
	if err := c.validate(); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := b.Get(ctx, id); err != nil {
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		b.staged[id] = b.staged[id].merge(c)
	}
	return nil
}

// Pending returns a copy of the staged changes by order id.
func (b *Board) Pending() map[string]Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.staged)
}

func (b *Board) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.staged)
}

// Apply writes staged changes in order id order. Applied changes are cleared
// as they succeed; on error the rest stay staged.
func (b *Board) Apply(ctx context.Context) ([]models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := slices.Sorted(maps.Keys(b.staged))
	applied := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		o, err := b.Get(ctx, id)
		if err != nil {
			return applied, err
		}

		c := b.staged[id]
		now := b.now()
		from := o.Status
		if c.Status != "" {
			o.Status = c.Status
			if c.Status == models.OrderDelivered && o.DeliveredAt == nil {
				o.DeliveredAt = &now
			}
		}
		if c.PaymentStatus != "" {
			o.PaymentStatus = c.PaymentStatus
		}
		o.UpdatedAt = now

		if err := b.repo.Put(ctx, o); err != nil {
			return applied, fmt.Errorf("failed to update order %s: %w", id, err)
		}
		delete(b.staged, id)
		applied = append(applied, o)

		b.logger.Info("Order updated",
			zap.String("order_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(o.Status)))
		if from != o.Status && b.notifier != nil {
			b.notifier.StatusChanged(ctx, StatusChange{
				OrderID:      id,
				CustomerName: o.CustomerName,
				From:         from,
				To:           o.Status,
				At:           now,
			})
		}
	}
	return applied, nil
}
