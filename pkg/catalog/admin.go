package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/query"
	"github.com/example/aseertime/pkg/repository"
	"github.com/example/aseertime/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidMove = errors.New("direction must be up or down")

// Auditor records back-office changes.
type Auditor interface {
	Record(ctx context.Context, action, entityID string, data map[string]any) error
}

// SubmitError is a save that failed for reasons other than the input. Message
// is safe to show to the user.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }

// Errors renders the failure as a form error map.
func (e *SubmitError) Errors() validation.Errors {
	errs := validation.Errors{}
	errs.Submit(e.Message)
	return errs
}

// Admin performs validated writes on the catalog.
type Admin struct {
	store  *Store
	audit  Auditor
	logger *zap.Logger
	now    func() time.Time
}

// NewAdmin wires the back office. audit may be nil.
func NewAdmin(store *Store, audit Auditor, logger *zap.Logger) *Admin {
	return &Admin{
		store:  store,
		audit:  audit,
		logger: logger.Named("admin"),
		now:    time.Now,
	}
}

func (a *Admin) fail(action, entity string, err error) error {
	a.logger.Error("Failed to save", zap.String("action", action), zap.String("entity", entity), zap.Error(err))
	return &SubmitError{Message: validation.SubmitFailed(action, entity), Err: err}
}

func (a *Admin) record(ctx context.Context, action, id string, data map[string]any) {
	if a.audit == nil {
		return
	}
	if err := a.audit.Record(ctx, action, id, data); err != nil {
		a.logger.Warn("Failed to record audit entry",
			zap.String("action", action),
			zap.String("id", id),
			zap.Error(err))
	}
}

func check(in validation.Input, rules []validation.Rule) error {
	if res := validation.Validate(in, rules...); !res.Valid {
		return res.Errors
	}
	return nil
}

// Field-level checks for live form feedback. Nothing is saved and references
// to other records are not resolved.

func (a *Admin) CheckBranch(f BranchForm) validation.Result {
	return validation.Validate(f.input(), validation.BranchRules()...)
}

func (a *Admin) CheckZone(f ZoneForm) validation.Result {
	return validation.Validate(f.input(), a.zoneRules()...)
}

func (a *Admin) CheckCategory(f CategoryForm) validation.Result {
	return validation.Validate(f.input(), validation.CategoryRules()...)
}

func (a *Admin) CheckProduct(f ProductForm) validation.Result {
	return validation.Validate(f.input(), validation.ProductRules()...)
}

func (a *Admin) CheckSettings(f SettingsForm) validation.Result {
	return validation.Validate(f.input(), validation.SettingsRules()...)
}

func list[T repository.Entity](ctx context.Context, repo repository.Repository[T], spec query.Spec[T], p query.Params) (query.Page[T], error) {
	all, err := repo.List(ctx)
	if err != nil {
		return query.Page[T]{}, fmt.Errorf("failed to list: %w", err)
	}
	return query.Run(all, spec, p)
}

// remove deletes id, reporting a miss as ErrNotFound and anything else as a submit failure.
func remove[T repository.Entity](ctx context.Context, a *Admin, repo repository.Repository[T], entity, id string) error {
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
		}
		return a.fail("delete", entity, err)
	}
	a.record(ctx, "delete_"+entity, id, nil)
	return nil
}

// toggle flips the active flag of one record.
func toggle[T repository.Entity](ctx context.Context, a *Admin, repo repository.Repository[T], entity, id string, flip func(*T, time.Time) bool) (T, error) {
	v, err := lookup(ctx, repo, entity, id)
	if err != nil {
		return v, err
	}
	active := flip(&v, a.now())
	if err := repo.Put(ctx, v); err != nil {
		return v, a.fail("update", entity, err)
	}
	a.record(ctx, "toggle_"+entity, id, map[string]any{"isActive": active})
	return v, nil
}

func (a *Admin) ListBranches(ctx context.Context, p query.Params) (query.Page[models.Branch], error) {
	return list(ctx, a.store.repos.Branches, BranchSpec(), p)
}

func (a *Admin) CreateBranch(ctx context.Context, f BranchForm) (models.Branch, error) {
	if err := check(f.input(), validation.BranchRules()); err != nil {
		return models.Branch{}, err
	}
	now := a.now()
	b := models.Branch{
		ID:            uuid.NewString(),
		DeliveryZones: []string{},
		CreatedAt:     now,
	}
	f.apply(&b, now)
	if err := a.store.repos.Branches.Put(ctx, b); err != nil {
		return models.Branch{}, a.fail("create", "branch", err)
	}
	a.record(ctx, "create_branch", b.ID, map[string]any{"name": b.Name})
	return b, nil
}

func (f BranchForm) apply(b *models.Branch, now time.Time) {
	b.Name = strings.TrimSpace(f.Name)
	b.Address = strings.TrimSpace(f.Address)
	b.Phone = strings.TrimSpace(f.Phone)
	b.Email = strings.TrimSpace(f.Email)
	b.IsActive = f.IsActive
	b.OperatingHours = f.OperatingHours
	b.UpdatedAt = now
}

func (a *Admin) UpdateBranch(ctx context.Context, id string, f BranchForm) (models.Branch, error) {
	b, err := lookup(ctx, a.store.repos.Branches, "branch", id)
	if err != nil {
		return b, err
	}
	if err := check(f.input(), validation.BranchRules()); err != nil {
		return b, err
	}
	f.apply(&b, a.now())
	if err := a.store.repos.Branches.Put(ctx, b); err != nil {
		return b, a.fail("update", "branch", err)
	}
	a.record(ctx, "update_branch", b.ID, map[string]any{"name": b.Name})
	return b, nil
}

// DeleteBranch removes the branch immediately. Zones pointing at it are kept.
func (a *Admin) DeleteBranch(ctx context.Context, id string) error {
	return remove(ctx, a, a.store.repos.Branches, "branch", id)
}

func (a *Admin) ToggleBranch(ctx context.Context, id string) (models.Branch, error) {
	return toggle(ctx, a, a.store.repos.Branches, "branch", id, func(b *models.Branch, now time.Time) bool {
		b.IsActive = !b.IsActive
		b.UpdatedAt = now
		return b.IsActive
	})
}

func (a *Admin) ListZones(ctx context.Context, p query.Params) (query.Page[models.DeliveryZone], error) {
	return list(ctx, a.store.repos.Zones, ZoneSpec(), p)
}

func (a *Admin) zoneRules() []validation.Rule {
	return validation.ZoneRules(a.store.evaluator.Overnight)
}

// apply copies a validated form onto z.
func (f ZoneForm) apply(z *models.DeliveryZone, now time.Time) error {
	fee, err := money.Parse(f.DeliveryFee)
	if err != nil {
		return err
	}
	minimum, err := money.Parse(f.MinimumOrder)
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(f.DeliveryTime))
	if err != nil {
		return err
	}
	z.Name = strings.TrimSpace(f.Name)
	z.BranchID = f.BranchID
	z.DeliveryFee = fee
	z.MinimumOrder = minimum
	z.DeliveryTime = minutes
	z.IsActive = f.IsActive
	z.DeliveryHours = f.DeliveryHours
	z.UpdatedAt = now
	return nil
}

func (a *Admin) validateZone(ctx context.Context, f ZoneForm) error {
	if err := check(f.input(), a.zoneRules()); err != nil {
		return err
	}
	if _, err := a.store.repos.Branches.Get(ctx, f.BranchID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validation.Errors{validation.FieldBranchID: "Please select a branch"}
		}
		return err
	}
	return nil
}

func (a *Admin) CreateZone(ctx context.Context, f ZoneForm) (models.DeliveryZone, error) {
	if err := a.validateZone(ctx, f); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return models.DeliveryZone{}, verrs
		}
		return models.DeliveryZone{}, a.fail("create", "delivery zone", err)
	}
	now := a.now()
	z := models.DeliveryZone{ID: uuid.NewString(), CreatedAt: now}
	if err := f.apply(&z, now); err != nil {
		return z, a.fail("create", "delivery zone", err)
	}
	if err := a.store.repos.Zones.Put(ctx, z); err != nil {
		return z, a.fail("create", "delivery zone", err)
	}
	if err := a.linkZone(ctx, z.ID, "", z.BranchID); err != nil {
		return z, a.fail("create", "delivery zone", err)
	}
	a.record(ctx, "create_zone", z.ID, map[string]any{"name": z.Name, "branchId": z.BranchID})
	return z, nil
}

func (a *Admin) UpdateZone(ctx context.Context, id string, f ZoneForm) (models.DeliveryZone, error) {
	z, err := lookup(ctx, a.store.repos.Zones, "zone", id)
	if err != nil {
		return z, err
	}
	if err := a.validateZone(ctx, f); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return z, verrs
		}
		return z, a.fail("update", "delivery zone", err)
	}
	oldBranch := z.BranchID
	if err := f.apply(&z, a.now()); err != nil {
		return z, a.fail("update", "delivery zone", err)
	}
	if err := a.store.repos.Zones.Put(ctx, z); err != nil {
		return z, a.fail("update", "delivery zone", err)
	}
	if err := a.linkZone(ctx, z.ID, oldBranch, z.BranchID); err != nil {
		return z, a.fail("update", "delivery zone", err)
	}
	a.record(ctx, "update_zone", z.ID, map[string]any{"name": z.Name, "branchId": z.BranchID})
	return z, nil
}

func (a *Admin) DeleteZone(ctx context.Context, id string) error {
	z, err := lookup(ctx, a.store.repos.Zones, "zone", id)
	if err != nil {
		return err
	}
	if err := remove(ctx, a, a.store.repos.Zones, "zone", id); err != nil {
		return err
	}
	if err := a.linkZone(ctx, id, z.BranchID, ""); err != nil {
		return a.fail("delete", "delivery zone", err)
	}
	return nil
}

func (a *Admin) ToggleZone(ctx context.Context, id string) (models.DeliveryZone, error) {
	return toggle(ctx, a, a.store.repos.Zones, "zone", id, func(z *models.DeliveryZone, now time.Time) bool {
		z.IsActive = !z.IsActive
		z.UpdatedAt = now
		return z.IsActive
	})
}

// linkZone keeps Branch.DeliveryZones in step with the zone's branch. Missing
// branches are skipped.
func (a *Admin) linkZone(ctx context.Context, zoneID, from, to string) error {
	if from == to {
		return nil
	}
	edit := func(branchID string, change func([]string) []string) error {
		if branchID == "" {
			return nil
		}
		b, err := a.store.repos.Branches.Get(ctx, branchID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		b.DeliveryZones = change(b.DeliveryZones)
		return a.store.repos.Branches.Put(ctx, b)
	}
	if err := edit(from, func(ids []string) []string {
		return slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == zoneID })
	}); err != nil {
		return err
	}
	return edit(to, func(ids []string) []string {
		if slices.Contains(ids, zoneID) {
			return ids
		}
		return append(slices.Clone(ids), zoneID)
	})
}

func (a *Admin) ListCategories(ctx context.Context, p query.Params) (query.Page[models.Category], error) {
	return list(ctx, a.store.repos.Categories, CategorySpec(), p)
}

func (f CategoryForm) apply(c *models.Category, now time.Time) {
	c.Name = strings.TrimSpace(f.Name)
	c.Description = strings.TrimSpace(f.Description)
	c.Image = strings.TrimSpace(f.Image)
	c.IsActive = f.IsActive
	c.UpdatedAt = now
}

// CreateCategory appends the category at the end of the display order.
func (a *Admin) CreateCategory(ctx context.Context, f CategoryForm) (models.Category, error) {
	if err := check(f.input(), validation.CategoryRules()); err != nil {
		return models.Category{}, err
	}
	all, err := a.store.repos.Categories.List(ctx)
	if err != nil {
		return models.Category{}, a.fail("create", "category", err)
	}
	last := 0
	for _, c := range all {
		last = max(last, c.SortOrder)
	}

	now := a.now()
	c := models.Category{ID: uuid.NewString(), SortOrder: last + 1, CreatedAt: now}
	f.apply(&c, now)
	if err := a.store.repos.Categories.Put(ctx, c); err != nil {
		return c, a.fail("create", "category", err)
	}
	a.record(ctx, "create_category", c.ID, map[string]any{"name": c.Name})
	return c, nil
}

func (a *Admin) UpdateCategory(ctx context.Context, id string, f CategoryForm) (models.Category, error) {
	c, err := lookup(ctx, a.store.repos.Categories, "category", id)
	if err != nil {
		return c, err
	}
	if err := check(f.input(), validation.CategoryRules()); err != nil {
		return c, err
	}
	f.apply(&c, a.now())
	if err := a.store.repos.Categories.Put(ctx, c); err != nil {
		return c, a.fail("update", "category", err)
	}
	a.record(ctx, "update_category", c.ID, map[string]any{"name": c.Name})
	return c, nil
}

// DeleteCategory removes the category. Its products keep their category id.
func (a *Admin) DeleteCategory(ctx context.Context, id string) error {
	return remove(ctx, a, a.store.repos.Categories, "category", id)
}

func (a *Admin) ToggleCategory(ctx context.Context, id string) (models.Category, error) {
	return toggle(ctx, a, a.store.repos.Categories, "category", id, func(c *models.Category, now time.Time) bool {
		c.IsActive = !c.IsActive
		c.UpdatedAt = now
		return c.IsActive
	})
}

// MoveCategory swaps a category with its neighbour in display order and
// renumbers all categories 1..n. Moving past either end changes nothing.
func (a *Admin) MoveCategory(ctx context.Context, id, direction string) ([]models.Category, error) {
	var step int
	switch strings.ToLower(direction) {
	case "up":
		step = -1
	case "down":
		step = 1
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMove, direction)
	}

	all, err := a.store.repos.Categories.List(ctx)
	if err != nil {
		return nil, a.fail("update", "category", err)
	}
	slices.SortStableFunc(all, bySortOrder)

	i := slices.IndexFunc(all, func(c models.Category) bool { return c.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if j := i + step; j >= 0 && j < len(all) {
		all[i], all[j] = all[j], all[i]
	}

	now := a.now()
	for k := range all {
		if all[k].SortOrder == k+1 {
			continue
		}
		all[k].SortOrder = k + 1
		all[k].UpdatedAt = now
		if err := a.store.repos.Categories.Put(ctx, all[k]); err != nil {
			return nil, a.fail("update", "category", err)
		}
	}
	a.record(ctx, "move_category", id, map[string]any{"direction": direction})
	return all, nil
}

func (a *Admin) ListProducts(ctx context.Context, p query.Params) (query.Page[models.Product], error) {
	return list(ctx, a.store.repos.Products, ProductSpec(), p)
}

// ProductFormFrom prefills the edit form; Price is the default variant's price.
func ProductFormFrom(p models.Product) ProductForm {
	f := ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		IsActive:    p.IsActive,
		Variants:    p.Variants,
		Addons:      p.Addons,
	}
	if v, ok := p.DefaultVariant(); ok {
		f.Price = v.Price.String()
	}
	if p.OriginalPrice > 0 {
		f.OriginalPrice = p.OriginalPrice.String()
	}
	return f
}

// variants gives every variant an id, keeps exactly one default and sets its
// price. No variants yields a single "Regular" one.
func variants(in []models.ProductVariant, price money.Amount) []models.ProductVariant {
	if len(in) == 0 {
		return []models.ProductVariant{{ID: uuid.NewString(), Name: "Regular", Price: price, IsDefault: true}}
	}
	out := slices.Clone(in)
	def := -1
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].IsDefault && def < 0 {
			def = i
		} else {
			out[i].IsDefault = false
		}
	}
	if def < 0 {
		def = 0
		out[0].IsDefault = true
	}
	out[def].Price = price
	return out
}

func addons(in []models.ProductAddon) []models.ProductAddon {
	out := slices.Clone(in)
	if out == nil {
		return []models.ProductAddon{}
	}
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		for j := range out[i].Options {
			if out[i].Options[j].ID == "" {
				out[i].Options[j].ID = uuid.NewString()
			}
		}
	}
	return out
}

func (a *Admin) validateProduct(ctx context.Context, f ProductForm) error {
	if err := check(f.input(), validation.ProductRules()); err != nil {
		return err
	}
	if _, err := a.store.repos.Categories.Get(ctx, f.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validation.Errors{validation.FieldCategoryID: "Please select a category"}
		}
		return err
	}
	return nil
}

func (f ProductForm) apply(p *models.Product, now time.Time) error {
	price, err := money.Parse(f.Price)
	if err != nil {
		return err
	}
	var original money.Amount
	if strings.TrimSpace(f.OriginalPrice) != "" {
		if original, err = money.Parse(f.OriginalPrice); err != nil {
			return err
		}
	}

	current := p.Variants
	if f.Variants != nil {
		current = f.Variants
	}
	if f.Addons != nil || p.Addons == nil {
		p.Addons = addons(f.Addons)
	}
	p.Name = strings.TrimSpace(f.Name)
	p.Description = strings.TrimSpace(f.Description)
	p.Image = strings.TrimSpace(f.Image)
	p.CategoryID = f.CategoryID
	p.OriginalPrice = original
	p.IsActive = f.IsActive
	p.Variants = variants(current, price)
	p.UpdatedAt = now
	return nil
}

func (a *Admin) saveProduct(ctx context.Context, action string, p models.Product, f ProductForm) (models.Product, error) {
	if err := a.validateProduct(ctx, f); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return p, verrs
		}
		return p, a.fail(action, "product", err)
	}
	if err := f.apply(&p, a.now()); err != nil {
		return p, a.fail(action, "product", err)
	}
	if err := a.store.repos.Products.Put(ctx, p); err != nil {
		return p, a.fail(action, "product", err)
	}
	a.record(ctx, action+"_product", p.ID, map[string]any{"name": p.Name, "categoryId": p.CategoryID})
	return p, nil
}

func (a *Admin) CreateProduct(ctx context.Context, f ProductForm) (models.Product, error) {
	now := a.now()
	return a.saveProduct(ctx, "create", models.Product{ID: uuid.NewString(), CreatedAt: now}, f)
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, f ProductForm) (models.Product, error) {
	p, err := lookup(ctx, a.store.repos.Products, "product", id)
	if err != nil {
		return p, err
	}
	return a.saveProduct(ctx, "update", p, f)
}

func (a *Admin) DeleteProduct(ctx context.Context, id string) error {
	return remove(ctx, a, a.store.repos.Products, "product", id)
}

func (a *Admin) ToggleProduct(ctx context.Context, id string) (models.Product, error) {
	return toggle(ctx, a, a.store.repos.Products, "product", id, func(p *models.Product, now time.Time) bool {
		p.IsActive = !p.IsActive
		p.UpdatedAt = now
		return p.IsActive
	})
}

// SaveSettings replaces the settings singleton.
func (a *Admin) SaveSettings(ctx context.Context, f SettingsForm) (models.Settings, error) {
	if err := check(f.input(), validation.SettingsRules()); err != nil {
		return models.Settings{}, err
	}
	fee, err := money.Parse(f.DeliveryFee)
	if err != nil {
		return models.Settings{}, a.fail("update", "settings", err)
	}
	tax, err := strconv.ParseFloat(strings.TrimSpace(f.TaxRate), 64)
	if err != nil {
		return models.Settings{}, a.fail("update", "settings", err)
	}

	currency := strings.ToUpper(strings.TrimSpace(f.Currency))
	if currency == "" {
		currency = "KWD"
	}
	banners := make([]string, 0, len(f.BannerImages))
	for _, b := range f.BannerImages {
		if b = strings.TrimSpace(b); b != "" {
			banners = append(banners, b)
		}
	}

	s := models.Settings{
		ID:                 SettingsID,
		SiteName:           strings.TrimSpace(f.SiteName),
		Logo:               strings.TrimSpace(f.Logo),
		BannerImages:       banners,
		WhatsAppNumber:     strings.TrimSpace(f.WhatsAppNumber),
		Currency:           currency,
		TaxRate:            tax,
		DefaultDeliveryFee: fee,
		UpdatedAt:          a.now(),
	}
	if err := a.store.repos.Settings.Put(ctx, s); err != nil {
		return s, a.fail("update", "settings", err)
	}
	a.record(ctx, "update_settings", s.ID, map[string]any{"siteName": s.SiteName})
	return s, nil
}
