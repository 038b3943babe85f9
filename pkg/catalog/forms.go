package catalog

import (
	"strconv"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/schedule"
	"github.com/example/aseertime/pkg/validation"
)

// Forms carry numbers as typed text so validation sees exactly what was entered.

type BranchForm struct {
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	IsActive       bool            `json:"isActive"`
	OperatingHours schedule.Weekly `json:"operatingHours"`
}

func (f BranchForm) input() validation.Input {
	return validation.Input{
		Values: map[validation.Field]string{
			validation.FieldName:    f.Name,
			validation.FieldAddress: f.Address,
			validation.FieldPhone:   f.Phone,
			validation.FieldEmail:   f.Email,
		},
		Hours: f.OperatingHours,
	}
}

type ZoneForm struct {
	Name          string               `json:"name"`
	BranchID      string               `json:"branchId"`
	DeliveryFee   string               `json:"deliveryFee"`
	MinimumOrder  string               `json:"minimumOrder"`
	DeliveryTime  string               `json:"deliveryTime"`
	IsActive      bool                 `json:"isActive"`
	DeliveryHours models.DeliveryHours `json:"deliveryHours"`
}

func (f ZoneForm) input() validation.Input {
	return validation.Input{
		Values: map[validation.Field]string{
			validation.FieldName:         f.Name,
			validation.FieldBranchID:     f.BranchID,
			validation.FieldDeliveryFee:  f.DeliveryFee,
			validation.FieldMinimumOrder: f.MinimumOrder,
			validation.FieldDeliveryTime: f.DeliveryTime,
		},
		Hours: f.DeliveryHours.Weekly(),
	}
}

// ZoneFormFrom prefills the edit form of an existing zone.
func ZoneFormFrom(z models.DeliveryZone) ZoneForm {
	return ZoneForm{
		Name:          z.Name,
		BranchID:      z.BranchID,
		DeliveryFee:   z.DeliveryFee.String(),
		MinimumOrder:  z.MinimumOrder.String(),
		DeliveryTime:  strconv.Itoa(z.DeliveryTime),
		IsActive:      z.IsActive,
		DeliveryHours: z.DeliveryHours,
	}
}

type CategoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `json:"isActive"`
}

func (f CategoryForm) input() validation.Input {
	return validation.Input{Values: map[validation.Field]string{
		validation.FieldName:        f.Name,
		validation.FieldDescription: f.Description,
		validation.FieldImage:       f.Image,
	}}
}

// ProductForm edits a product. Price is the default variant's price; when
// Variants is empty the product gets a single "Regular" variant at Price.
type ProductForm struct {
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Image         string                  `json:"image"`
	CategoryID    string                  `json:"categoryId"`
	Price         string                  `json:"price"`
	OriginalPrice string                  `json:"originalPrice"`
	IsActive      bool                    `json:"isActive"`
	Variants      []models.ProductVariant `json:"variants"`
	Addons        []models.ProductAddon   `json:"addons"`
}

func (f ProductForm) input() validation.Input {
	return validation.Input{Values: map[validation.Field]string{
		validation.FieldName:          f.Name,
		validation.FieldDescription:   f.Description,
		validation.FieldImage:         f.Image,
		validation.FieldCategoryID:    f.CategoryID,
		validation.FieldPrice:         f.Price,
		validation.FieldOriginalPrice: f.OriginalPrice,
	}}
}

type SettingsForm struct {
	SiteName       string   `json:"siteName"`
	Logo           string   `json:"logo"`
	BannerImages   []string `json:"bannerImages"`
	WhatsAppNumber string   `json:"whatsappNumber"`
	Currency       string   `json:"currency"`
	TaxRate        string   `json:"taxRate"`
	DeliveryFee    string   `json:"deliveryFee"`
}

func (f SettingsForm) input() validation.Input {
	banner := ""
	if len(f.BannerImages) > 0 {
		banner = f.BannerImages[0]
	}
	return validation.Input{Values: map[validation.Field]string{
		validation.FieldSiteName:       f.SiteName,
		validation.FieldLogo:           f.Logo,
		validation.FieldBannerImage:    banner,
		validation.FieldWhatsAppNumber: f.WhatsAppNumber,
		validation.FieldTaxRate:        f.TaxRate,
		validation.FieldDeliveryFee:    f.DeliveryFee,
	}}
}
