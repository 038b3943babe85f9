package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
)

type cartTestContext struct {
	product models.Product
	cart    *Cart
	lastID  string
}

func (c *cartTestContext) reset() {
	c.product = models.Product{ID: "p-1", IsActive: true}
	c.cart = New()
	c.lastID = ""
}

func (c *cartTestContext) theProductWithVariants(name string, table *godog.Table) error {
	c.product.Name = name
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		price, err := money.Parse(row.Cells[2].Value)
		if err != nil {
			return err
		}
		c.product.Variants = append(c.product.Variants, models.ProductVariant{
			ID:        row.Cells[0].Value,
			Name:      row.Cells[1].Value,
			Price:     price,
			IsDefault: row.Cells[3].Value == "yes",
		})
	}
	return nil
}

func (c *cartTestContext) theProductHasAnAddonPriced(name, price string) error {
	p, err := money.Parse(price)
	if err != nil {
		return err
	}
	c.product.Addons = append(c.product.Addons, models.ProductAddon{
		ID:    fmt.Sprintf("a-%d", len(c.product.Addons)+1),
		Name:  name,
		Price: p,
	})
	return nil
}

func (c *cartTestContext) variantID(name string) (string, error) {
	for _, v := range c.product.Variants {
		if v.Name == name {
			return v.ID, nil
		}
	}
	return "", fmt.Errorf("no variant named %q", name)
}

func (c *cartTestContext) add(variant string, addonNames []string, qty int) error {
	vid, err := c.variantID(variant)
	if err != nil {
		return err
	}
	var addonIDs []string
	for _, n := range addonNames {
		for _, a := range c.product.Addons {
			if a.Name == n {
				addonIDs = append(addonIDs, a.ID)
			}
		}
	}
	item, err := Configure(c.product, Selection{VariantID: vid, AddonIDs: addonIDs, Quantity: qty})
	if err != nil {
		return err
	}
	c.lastID = c.cart.Add(item).ID
	return nil
}

func (c *cartTestContext) iAddWithQuantity(variant, addon string, qty int) error {
	return c.add(variant, []string{addon}, qty)
}

func (c *cartTestContext) iAddWithNoAddonsQuantity(variant string, qty int) error {
	return c.add(variant, nil, qty)
}

func (c *cartTestContext) iSetTheQuantityTo(qty int) error {
	if _, ok := c.cart.UpdateQuantity(c.lastID, qty); !ok {
		return fmt.Errorf("line %s not found", c.lastID)
	}
	return nil
}

func (c *cartTestContext) iRemoveTheLine() error {
	if !c.cart.Remove(c.lastID) {
		return fmt.Errorf("line %s not found", c.lastID)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if c.cart.Len() != n {
		return fmt.Errorf("expected %d lines, got %d", n, c.cart.Len())
	}
	return nil
}

func (c *cartTestContext) line() (Item, error) {
	it, ok := c.cart.Get(c.lastID)
	if !ok {
		return Item{}, fmt.Errorf("line %s not found", c.lastID)
	}
	return it, nil
}

func (c *cartTestContext) theLineQuantityIs(qty int) error {
	it, err := c.line()
	if err != nil {
		return err
	}
	if it.Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, it.Quantity)
	}
	return nil
}

func (c *cartTestContext) theLineTotalIs(total string) error {
	it, err := c.line()
	if err != nil {
		return err
	}
	if it.TotalPrice.String() != total {
		return fmt.Errorf("expected line total %s, got %s", total, it.TotalPrice)
	}
	return nil
}

func (c *cartTestContext) theCartSubtotalIs(total string) error {
	if got := c.cart.Subtotal().String(); got != total {
		return fmt.Errorf("expected subtotal %s, got %s", total, got)
	}
	return nil
}

func (c *cartTestContext) checkoutIsBlockedWithAShortfallOf(shortfall string) error {
	q := c.cart.Quote(nil, Defaults{DeliveryFee: money.MustParse("0.5"), MinimumOrder: money.MustParse("5")})
	if q.CanCheckout {
		return fmt.Errorf("expected checkout to be blocked at subtotal %s", q.Subtotal)
	}
	if q.Shortfall.String() != shortfall {
		return fmt.Errorf("expected shortfall %s, got %s", shortfall, q.Shortfall)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the product "([^"]*)" with variants:$`, tc.theProductWithVariants)
	ctx.Step(`^the product has an add-on "([^"]*)" priced ([\d.]+)$`, tc.theProductHasAnAddonPriced)

	// When steps
	ctx.Step(`^I add "([^"]*)" with "([^"]*)" quantity (\d+)$`, tc.iAddWithQuantity)
	ctx.Step(`^I add "([^"]*)" with no add-ons quantity (\d+)$`, tc.iAddWithNoAddonsQuantity)
	ctx.Step(`^I set the quantity to (-?\d+)$`, tc.iSetTheQuantityTo)
	ctx.Step(`^I remove the line$`, tc.iRemoveTheLine)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the line quantity is (\d+)$`, tc.theLineQuantityIs)
	ctx.Step(`^the line total is ([\d.]+)$`, tc.theLineTotalIs)
	ctx.Step(`^the cart subtotal is ([\d.]+)$`, tc.theCartSubtotalIs)
	ctx.Step(`^checkout is blocked with a shortfall of ([\d.]+)$`, tc.checkoutIsBlockedWithAShortfallOf)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
