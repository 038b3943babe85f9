package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/query"
)

var productColumns = []string{"Product ID", "Name", "Category", "Default Price", "Variants", "Addons", "Status"}

// ExportProducts writes the products matching p as CSV, ignoring pagination.
func (a *Admin) ExportProducts(ctx context.Context, w io.Writer, p query.Params) error {
	p.Page, p.PageSize = 1, 0
	page, err := a.ListProducts(ctx, p)
	if err != nil {
		return err
	}
	categories, err := a.store.repos.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	return WriteProductsCSV(w, page.Items, categories)
}

// WriteProductsCSV renders products with their category names. Unknown
// categories show the raw id.
func WriteProductsCSV(w io.Writer, products []models.Product, categories []models.Category) error {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		category, ok := names[p.CategoryID]
		if !ok {
			category = p.CategoryID
		}
		status := "Inactive"
		if p.IsActive {
			status = "Active"
		}
		rows = append(rows, []string{
			p.ID,
			p.Name,
			category,
			defaultPrice(p).String(),
			variantList(p.Variants),
			addonList(p.Addons),
			status,
		})
	}
	return query.WriteCSV(w, productColumns, rows)
}

func variantList(vs []models.ProductVariant) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Name + " " + v.Price.String()
	}
	return strings.Join(parts, "; ")
}

func addonList(as []models.ProductAddon) string {
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = a.Name + " " + a.Price.String()
	}
	return strings.Join(parts, "; ")
}
