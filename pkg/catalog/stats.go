package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
)

// Stats is the dashboard summary.
type Stats struct {
	Branches         int          `json:"branches"`
	ActiveBranches   int          `json:"activeBranches"`
	OpenBranches     int          `json:"openBranches"`
	Zones            int          `json:"zones"`
	ActiveZones      int          `json:"activeZones"`
	Categories       int          `json:"categories"`
	ActiveCategories int          `json:"activeCategories"`
	Products         int          `json:"products"`
	ActiveProducts   int          `json:"activeProducts"`
	Orders           int          `json:"orders"`
	PendingOrders    int          `json:"pendingOrders"`
	RevenueToday     money.Amount `json:"revenueToday"`
	RevenueMonth     money.Amount `json:"revenueMonth"`
}

// Stats counts the catalog and sums revenue of non-cancelled orders placed on
// now's day and in now's month, in now's location.
func (s *Store) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats

	branches, err := s.repos.Branches.List(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to list branches: %w", err)
	}
	for _, b := range branches {
		st.Branches++
		if b.IsActive {
			st.ActiveBranches++
			if s.evaluator.IsOpenAt(b.OperatingHours, now) {
				st.OpenBranches++
			}
		}
	}

	zones, err := s.repos.Zones.List(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to list zones: %w", err)
	}
	st.Zones, st.ActiveZones = countActive(zones, func(z models.DeliveryZone) bool { return z.IsActive })

	categories, err := s.repos.Categories.List(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to list categories: %w", err)
	}
	st.Categories, st.ActiveCategories = countActive(categories, func(c models.Category) bool { return c.IsActive })

	products, err := s.repos.Products.List(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to list products: %w", err)
	}
	st.Products, st.ActiveProducts = countActive(products, func(p models.Product) bool { return p.IsActive })

	orders, err := s.repos.Orders.List(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to list orders: %w", err)
	}
	y, m, d := now.Date()
	for _, o := range orders {
		st.Orders++
		if o.Status == models.OrderPending {
			st.PendingOrders++
		}
		if o.Status == models.OrderCancelled {
			continue
		}
		oy, om, od := o.CreatedAt.In(now.Location()).Date()
		if oy == y && om == m {
			st.RevenueMonth += o.Total
			if od == d {
				st.RevenueToday += o.Total
			}
		}
	}
	return st, nil
}

func countActive[T any](items []T, active func(T) bool) (total, n int) {
	for _, it := range items {
		total++
		if active(it) {
			n++
		}
	}
	return total, n
}
