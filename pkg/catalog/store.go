// Package catalog holds the storefront's branches, zones, categories, products
// and settings behind injected repositories, and the back-office edits on them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/repository"
	"github.com/example/aseertime/pkg/schedule"
	"github.com/example/aseertime/pkg/seed"
	"go.uber.org/zap"
)

// ErrNotFound is returned for lookups of unknown ids.
var ErrNotFound = repository.ErrNotFound

// SettingsID is the key of the settings singleton.
const SettingsID = "1"

type Repositories struct {
	Branches   repository.Repository[models.Branch]
	Zones      repository.Repository[models.DeliveryZone]
	Categories repository.Repository[models.Category]
	Products   repository.Repository[models.Product]
	Settings   repository.Repository[models.Settings]
	Orders     repository.Repository[models.Order]
}

// NewMemoryRepositories backs every collection with process memory.
func NewMemoryRepositories() Repositories {
	return Repositories{
		Branches:   repository.NewMemory[models.Branch](),
		Zones:      repository.NewMemory[models.DeliveryZone](),
		Categories: repository.NewMemory[models.Category](),
		Products:   repository.NewMemory[models.Product](),
		Settings:   repository.NewMemory[models.Settings](),
		Orders:     repository.NewMemory[models.Order](),
	}
}

type Options struct {
	// Overnight lets a window whose close is before its open run past midnight.
	Overnight bool
	// Defaults apply to carts with no zone when settings carry no delivery fee.
	Defaults cart.Defaults
}

type Store struct {
	repos     Repositories
	evaluator schedule.Evaluator
	defaults  cart.Defaults
	logger    *zap.Logger

	mu      sync.Mutex
	closers []func() error
}

func NewStore(repos Repositories, opts Options, logger *zap.Logger) *Store {
	return &Store{
		repos:     repos,
		evaluator: schedule.Evaluator{Overnight: opts.Overnight},
		defaults:  opts.Defaults,
		logger:    logger.Named("catalog"),
	}
}

// Repositories exposes the injected storage, e.g. for the order board.
func (s *Store) Repositories() Repositories { return s.repos }

func (s *Store) Evaluator() schedule.Evaluator { return s.evaluator }

// OnClose registers fn to run when the store closes.
func (s *Store) OnClose(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, fn)
}

// Close runs registered closers in reverse order and returns the first error.
func (s *Store) Close() error {
	s.mu.Lock()
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Load fills each empty collection from data. Collections that already hold
// records are left alone.
func (s *Store) Load(ctx context.Context, data seed.Data) error {
	now := time.Now()
	for i := range data.Branches {
		stamp(&data.Branches[i].CreatedAt, &data.Branches[i].UpdatedAt, now)
	}
	for i := range data.Zones {
		stamp(&data.Zones[i].CreatedAt, &data.Zones[i].UpdatedAt, now)
	}
	for i := range data.Categories {
		stamp(&data.Categories[i].CreatedAt, &data.Categories[i].UpdatedAt, now)
	}
	for i := range data.Products {
		stamp(&data.Products[i].CreatedAt, &data.Products[i].UpdatedAt, now)
	}
	if data.Settings.UpdatedAt.IsZero() {
		data.Settings.UpdatedAt = now
	}

	steps := []struct {
		name string
		load func() (bool, error)
	}{
		{"branches", func() (bool, error) { return seedIfEmpty(ctx, s.repos.Branches, data.Branches) }},
		{"zones", func() (bool, error) { return seedIfEmpty(ctx, s.repos.Zones, data.Zones) }},
		{"categories", func() (bool, error) { return seedIfEmpty(ctx, s.repos.Categories, data.Categories) }},
		{"products", func() (bool, error) { return seedIfEmpty(ctx, s.repos.Products, data.Products) }},
		{"settings", func() (bool, error) {
			return seedIfEmpty(ctx, s.repos.Settings, []models.Settings{data.Settings})
		}},
		{"orders", func() (bool, error) { return seedIfEmpty(ctx, s.repos.Orders, data.Orders) }},
	}
	for _, step := range steps {
		seeded, err := step.load()
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		if seeded {
			s.logger.Info("Seeded collection", zap.String("collection", step.name))
		}
	}
	return nil
}

func stamp(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func seedIfEmpty[T repository.Entity](ctx context.Context, repo repository.Repository[T], items []T) (bool, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 || len(items) == 0 {
		return false, nil
	}
	return true, repo.ReplaceAll(ctx, items)
}

func lookup[T repository.Entity](ctx context.Context, repo repository.Repository[T], kind, id string) (T, error) {
	v, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return v, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
		}
		return v, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return v, nil
}

func bySortOrder(a, b models.Category) int {
	return a.SortOrder - b.SortOrder
}

// ActiveCategories lists active categories in display order.
func (s *Store) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	all, err := s.repos.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.IsActive {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, bySortOrder)
	return out, nil
}

func (s *Store) Category(ctx context.Context, id string) (models.Category, error) {
	return lookup(ctx, s.repos.Categories, "category", id)
}

// CategoryProducts lists the active products of an existing category.
func (s *Store) CategoryProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	if _, err := s.Category(ctx, categoryID); err != nil {
		return nil, err
	}
	all, err := s.repos.Products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]models.Product, 0)
	for _, p := range all {
		if p.IsActive && p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) Product(ctx context.Context, id string) (models.Product, error) {
	return lookup(ctx, s.repos.Products, "product", id)
}

// BranchStatus is a branch with whether it is open at the requested time.
type BranchStatus struct {
	models.Branch
	Open  bool               `json:"open"`
	Today schedule.DayStatus `json:"today"`
}

type ZoneStatus struct {
	models.DeliveryZone
	Open  bool               `json:"open"`
	Today schedule.DayStatus `json:"today"`
}

func (s *Store) branchStatus(b models.Branch, at time.Time) BranchStatus {
	st := s.evaluator.Status(b.OperatingHours, at)
	return BranchStatus{Branch: b, Open: st.Open, Today: st}
}

func (s *Store) zoneStatus(z models.DeliveryZone, at time.Time) ZoneStatus {
	st := s.evaluator.Status(z.DeliveryHours.Weekly(), at)
	return ZoneStatus{DeliveryZone: z, Open: st.Open, Today: st}
}

// Branches lists active branches with their open status at at.
func (s *Store) Branches(ctx context.Context, at time.Time) ([]BranchStatus, error) {
	all, err := s.repos.Branches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	out := make([]BranchStatus, 0, len(all))
	for _, b := range all {
		if b.IsActive {
			out = append(out, s.branchStatus(b, at))
		}
	}
	return out, nil
}

func (s *Store) Branch(ctx context.Context, id string, at time.Time) (BranchStatus, error) {
	b, err := lookup(ctx, s.repos.Branches, "branch", id)
	if err != nil {
		return BranchStatus{}, err
	}
	return s.branchStatus(b, at), nil
}

// Zones lists active delivery zones with their open status at at. A non-empty
// branchID restricts the list to that branch.
func (s *Store) Zones(ctx context.Context, branchID string, at time.Time) ([]ZoneStatus, error) {
	all, err := s.repos.Zones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	out := make([]ZoneStatus, 0, len(all))
	for _, z := range all {
		if !z.IsActive || (branchID != "" && z.BranchID != branchID) {
			continue
		}
		out = append(out, s.zoneStatus(z, at))
	}
	return out, nil
}

func (s *Store) Zone(ctx context.Context, id string) (models.DeliveryZone, error) {
	return lookup(ctx, s.repos.Zones, "zone", id)
}

func (s *Store) Settings(ctx context.Context) (models.Settings, error) {
	return lookup(ctx, s.repos.Settings, "settings", SettingsID)
}

// CartDefaults is the fee and minimum for a cart with no zone selected. The
// settings delivery fee wins over the configured fallback.
func (s *Store) CartDefaults(ctx context.Context) cart.Defaults {
	d := s.defaults
	settings, err := s.Settings(ctx)
	if err == nil {
		d.DeliveryFee = settings.DefaultDeliveryFee
	} else if !errors.Is(err, ErrNotFound) {
		s.logger.Warn("Failed to read settings, using configured defaults", zap.Error(err))
	}
	return d
}
