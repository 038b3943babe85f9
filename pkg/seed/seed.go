// Package seed provides the initial storefront data loaded into an empty catalog.
package seed

import (
	"strconv"
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/schedule"
)

// Data is one full set of collections.
type Data struct {
	Branches   []models.Branch
	Zones      []models.DeliveryZone
	Categories []models.Category
	Products   []models.Product
	Settings   models.Settings
	Orders     []models.Order
}

const unsplash = "https://images.unsplash.com/"

func image(id string, width string) string {
	return unsplash + id + "?w=" + width
}

// Default returns the launch data set: two branches in Kuwait, their delivery
// zones, the six menu categories, the juice menu and a handful of past orders.
func Default() Data {
	return Data{
		Branches:   branches(),
		Zones:      zones(),
		Categories: categories(),
		Products:   products(),
		Settings:   settings(),
		Orders:     orders(),
	}
}

func branches() []models.Branch {
	return []models.Branch{
		{
			ID:             "1",
			Name:           "AseerTime - Khairan",
			Address:        "Khairan Area, Kuwait",
			Phone:          "+965 1234 5678",
			Email:          "khairan@aseertime.com",
			IsActive:       true,
			OperatingHours: schedule.Every("08:00", "23:00"),
			DeliveryZones:  []string{"1"},
		},
		{
			ID:             "2",
			Name:           "AseerTime - Salmiya",
			Address:        "Salmiya Area, Kuwait",
			Phone:          "+965 1234 5679",
			Email:          "salmiya@aseertime.com",
			IsActive:       true,
			OperatingHours: schedule.Every("08:00", "23:00"),
			DeliveryZones:  []string{"2"},
		},
	}
}

func zones() []models.DeliveryZone {
	return []models.DeliveryZone{
		{
			ID:            "1",
			Name:          "Al Khairan",
			BranchID:      "1",
			DeliveryFee:   money.MustParse("0.25"),
			MinimumOrder:  money.MustParse("5"),
			DeliveryTime:  75,
			IsActive:      true,
			DeliveryHours: models.EveryDay("08:00", "02:30"),
		},
		{
			ID:            "2",
			Name:          "Salmiya",
			BranchID:      "2",
			DeliveryFee:   money.MustParse("0.5"),
			MinimumOrder:  money.MustParse("8"),
			DeliveryTime:  45,
			IsActive:      true,
			DeliveryHours: models.EveryDay("08:00", "02:30"),
		},
	}
}

func categories() []models.Category {
	rows := []struct{ id, name, desc, img string }{
		{"1", "Strawberry", "Fresh strawberry treats", "photo-1464965911861-746a04b4bca6"},
		{"2", "New Items", "Latest additions to our menu", "photo-1546173159-315724a31696"},
		{"3", "Best Offers", "Special deals and discounts", "photo-1563636619-e9143da7973b"},
		{"4", "Dubai Collection", "Premium Dubai-inspired treats", "photo-1571091718767-18b5b1457add"},
		{"5", "Fresh Juices", "Freshly squeezed natural juices", "photo-1613478223719-2ab802602423"},
		{"6", "Cocktails", "Refreshing fruit cocktails", "photo-1544145945-f90425340c7e"},
	}
	out := make([]models.Category, len(rows))
	for i, r := range rows {
		out[i] = models.Category{
			ID:          r.id,
			Name:        r.name,
			Description: r.desc,
			Image:       image(r.img, "400"),
			IsActive:    true,
			SortOrder:   i + 1,
		}
	}
	return out
}

type size struct {
	name  string
	price string
	def   bool
}

func variants(productID string, sizes ...size) []models.ProductVariant {
	out := make([]models.ProductVariant, len(sizes))
	for i, s := range sizes {
		out[i] = models.ProductVariant{
			ID:        productID + "-" + strconv.Itoa(i+1),
			Name:      s.name,
			Price:     money.MustParse(s.price),
			IsDefault: s.def,
		}
	}
	return out
}

func juice(id, name, desc, img string, sizes ...size) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Description: desc,
		Image:       image(img, "400"),
		CategoryID:  "5",
		IsActive:    true,
		Variants:    variants(id, sizes...),
		Addons:      []models.ProductAddon{},
	}
}

func products() []models.Product {
	avocadoNuts := juice("1", "Avocado With Honey And Nuts Juice", "Fresh avocado blended with honey and mixed nuts",
		"photo-1623065422902-30a2d299bbe4",
		size{"Small", "2.5", false}, size{"Medium", "3.0", true}, size{"Large", "3.5", false})
	avocadoNuts.Addons = []models.ProductAddon{
		{ID: "1-addon-1", Name: "Extra Honey", Price: money.MustParse("0.5")},
		{ID: "1-addon-2", Name: "Extra Nuts", Price: money.MustParse("0.75")},
	}

	return []models.Product{
		avocadoNuts,
		juice("2", "Avocado", "Pure fresh avocado juice", "photo-1590301157890-4810ed352733",
			size{"Small", "2.0", false}, size{"Medium", "2.5", true}, size{"Large", "3.0", false}),
		juice("3", "Orange Juice", "Freshly squeezed orange juice", "photo-1621506289937-a8e4df240d0b",
			size{"Small", "1.5", false}, size{"Medium", "2.0", true}, size{"Large", "2.5", false}),
		juice("4", "Carrot Juice", "Fresh carrot juice", "photo-1623428187969-5da2dcea5ebf",
			size{"Baby", "0.85", true}, size{"Small", "0.95", false}, size{"Medium", "1.1", false}, size{"Large", "1.2", false}),
		juice("5", "Lemon With Mint", "Refreshing lemon juice with fresh mint", "photo-1571068316344-75bc76f77890",
			size{"Small", "1.8", false}, size{"Medium", "2.2", true}, size{"Large", "2.6", false}),
		juice("6", "Banana With Milk", "Creamy banana milkshake", "photo-1553909489-cd47e0ef937f",
			size{"Small", "2.2", false}, size{"Medium", "2.7", true}, size{"Large", "3.2", false}),
	}
}

func settings() models.Settings {
	return models.Settings{
		ID:       "1",
		SiteName: "AseerTime",
		Logo:     "/logo.png",
		BannerImages: []string{
			image("photo-1546173159-315724a31696", "800"),
			image("photo-1613478223719-2ab802602423", "800"),
			image("photo-1544145945-f90425340c7e", "800"),
		},
		WhatsAppNumber:     "+965 1234 5678",
		Currency:           "KWD",
		TaxRate:            0,
		DefaultDeliveryFee: money.MustParse("0.5"),
	}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func line(name string, qty int, price string) models.OrderLine {
	return models.OrderLine{Name: name, Quantity: qty, Price: money.MustParse(price)}
}

func orders() []models.Order {
	delivered := ts("2024-01-14T19:30:00Z")
	out := []models.Order{
		{
			ID: "001", CustomerName: "Ahmed Al-Rashid", CustomerEmail: "ahmed@example.com", CustomerPhone: "+965 9999 9999",
			Total: money.MustParse("21.250"), Status: models.OrderPending,
			PaymentMethod: "Cash on Delivery", PaymentStatus: models.PaymentPending,
			DeliveryAddress: "Salmiya, Block 2, Street 5, Building 10",
			Items:           []models.OrderLine{line("Margherita Pizza", 1, "8.500"), line("Caesar Salad", 2, "6.375")},
			CreatedAt:       ts("2024-01-15T10:30:00Z"),
		},
		{
			ID: "002", CustomerName: "Fatima Al-Zahra", CustomerEmail: "fatima@example.com", CustomerPhone: "+965 8888 8888",
			Total: money.MustParse("12.750"), Status: models.OrderConfirmed,
			PaymentMethod: "Credit Card", PaymentStatus: models.PaymentPaid,
			DeliveryAddress: "Hawalli, Block 1, Street 3, Building 5",
			Items:           []models.OrderLine{line("Chicken Burger", 1, "7.500"), line("French Fries", 1, "2.750"), line("Soft Drink", 1, "2.500")},
			CreatedAt:       ts("2024-01-15T09:15:00Z"),
		},
		{
			ID: "003", CustomerName: "Mohammed Al-Sabah", CustomerEmail: "mohammed@example.com", CustomerPhone: "+965 7777 7777",
			Total: money.MustParse("35.750"), Status: models.OrderDelivered,
			PaymentMethod: "K-Net", PaymentStatus: models.PaymentPaid,
			DeliveryAddress: "Kuwait City, Block 4, Street 8, Building 15",
			Items:           []models.OrderLine{line("Family Pizza Deal", 1, "25.000"), line("Garlic Bread", 2, "5.375")},
			CreatedAt:       ts("2024-01-14T18:45:00Z"),
			DeliveredAt:     &delivered,
		},
		{
			ID: "004", CustomerName: "Sara Al-Ahmad", CustomerEmail: "sara@example.com", CustomerPhone: "+965 6666 6666",
			Total: money.MustParse("18.500"), Status: models.OrderPreparing,
			PaymentMethod: "Cash on Delivery", PaymentStatus: models.PaymentPending,
			DeliveryAddress: "Jabriya, Block 3, Street 7, Building 12",
			Items:           []models.OrderLine{line("Pasta Alfredo", 1, "9.750"), line("Tiramisu", 1, "4.250"), line("Iced Coffee", 1, "4.500")},
			CreatedAt:       ts("2024-01-15T14:20:00Z"),
		},
		{
			ID: "005", CustomerName: "Omar Al-Mutairi", CustomerEmail: "omar@example.com", CustomerPhone: "+965 5555 5555",
			Total: money.MustParse("28.750"), Status: models.OrderCancelled,
			PaymentMethod: "Credit Card", PaymentStatus: models.PaymentPaid,
			DeliveryAddress: "Farwaniya, Block 6, Street 2, Building 8",
			Items:           []models.OrderLine{line("Seafood Platter", 1, "22.500"), line("Mixed Salad", 1, "6.250")},
			CreatedAt:       ts("2024-01-13T16:10:00Z"),
		},
	}
	for i := range out {
		out[i].Subtotal = out[i].Total
		out[i].UpdatedAt = out[i].CreatedAt
	}
	return out
}
