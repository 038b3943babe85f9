package catalog

import (
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/query"
)

// Listing specs for the back-office tables.

func BranchSpec() query.Spec[models.Branch] {
	return query.Spec[models.Branch]{
		SearchFields: []func(models.Branch) string{
			func(b models.Branch) string { return b.Name },
			func(b models.Branch) string { return b.Address },
		},
		Filters: map[string]query.FilterFunc[models.Branch]{
			"status": query.Status(func(b models.Branch) bool { return b.IsActive }),
		},
		Sorters: map[string]func(a, b models.Branch) int{
			"name":      query.ByFold(func(b models.Branch) string { return b.Name }),
			"createdAt": query.ByTime(func(b models.Branch) time.Time { return b.CreatedAt }),
		},
	}
}

func ZoneSpec() query.Spec[models.DeliveryZone] {
	return query.Spec[models.DeliveryZone]{
		SearchFields: []func(models.DeliveryZone) string{
			func(z models.DeliveryZone) string { return z.Name },
		},
		Filters: map[string]query.FilterFunc[models.DeliveryZone]{
			"status":   query.Status(func(z models.DeliveryZone) bool { return z.IsActive }),
			"branchId": query.Equals(func(z models.DeliveryZone) string { return z.BranchID }),
		},
		Sorters: map[string]func(a, b models.DeliveryZone) int{
			"name":         query.ByFold(func(z models.DeliveryZone) string { return z.Name }),
			"deliveryFee":  query.By(func(z models.DeliveryZone) money.Amount { return z.DeliveryFee }),
			"minimumOrder": query.By(func(z models.DeliveryZone) money.Amount { return z.MinimumOrder }),
			"deliveryTime": query.By(func(z models.DeliveryZone) int { return z.DeliveryTime }),
		},
	}
}

func CategorySpec() query.Spec[models.Category] {
	return query.Spec[models.Category]{
		SearchFields: []func(models.Category) string{
			func(c models.Category) string { return c.Name },
			func(c models.Category) string { return c.Description },
		},
		Filters: map[string]query.FilterFunc[models.Category]{
			"status": query.Status(func(c models.Category) bool { return c.IsActive }),
		},
		Sorters: map[string]func(a, b models.Category) int{
			"sortOrder": query.By(func(c models.Category) int { return c.SortOrder }),
			"name":      query.ByFold(func(c models.Category) string { return c.Name }),
		},
		DefaultSort: "sortOrder",
		DefaultDir:  query.Asc,
	}
}

func defaultPrice(p models.Product) money.Amount {
	v, _ := p.DefaultVariant()
	return v.Price
}

func ProductSpec() query.Spec[models.Product] {
	return query.Spec[models.Product]{
		SearchFields: []func(models.Product) string{
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.Description },
		},
		Filters: map[string]query.FilterFunc[models.Product]{
			"status":     query.Status(func(p models.Product) bool { return p.IsActive }),
			"categoryId": query.Equals(func(p models.Product) string { return p.CategoryID }),
		},
		Sorters: map[string]func(a, b models.Product) int{
			"name":      query.ByFold(func(p models.Product) string { return p.Name }),
			"price":     query.By(defaultPrice),
			"createdAt": query.ByTime(func(p models.Product) time.Time { return p.CreatedAt }),
		},
	}
}
