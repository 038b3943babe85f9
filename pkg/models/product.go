package models

import (
	"time"

	"github.com/example/aseertime/pkg/money"
)

type Product struct {
	ID            string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string           `gorm:"type:varchar(150);not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description"`
	Image         string           `gorm:"type:varchar(512)" json:"image"`
	CategoryID    string           `gorm:"type:varchar(36);index" json:"categoryId"`
	IsActive      bool             `gorm:"not null" json:"isActive"`
	// OriginalPrice is a strike-through price for display; zero means none.
	OriginalPrice money.Amount     `json:"originalPrice,omitempty"`
	Variants      []ProductVariant `gorm:"type:text;serializer:json" json:"variants"`
	Addons        []ProductAddon   `gorm:"type:text;serializer:json" json:"addons"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

func (p Product) Key() string { return p.ID }

type ProductVariant struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	IsDefault bool         `json:"isDefault,omitempty"`
}

type ProductAddon struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Price      money.Amount  `json:"price"`
	IsRequired bool          `json:"isRequired"`
	Options    []AddonOption `json:"options,omitempty"`
}

type AddonOption struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Price money.Amount `json:"price"`
}

// DefaultVariant is the first variant flagged default, else the first variant.
func (p *Product) DefaultVariant() (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.IsDefault {
			return v, true
		}
	}
	if len(p.Variants) > 0 {
		return p.Variants[0], true
	}
	return ProductVariant{}, false
}

func (p *Product) Variant(id string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}

func (p *Product) Addon(id string) (ProductAddon, bool) {
	for _, a := range p.Addons {
		if a.ID == id {
			return a, true
		}
	}
	return ProductAddon{}, false
}

// Option looks up an option of the addon.
func (a *ProductAddon) Option(id string) (AddonOption, bool) {
	for _, o := range a.Options {
		if o.ID == id {
			return o, true
		}
	}
	return AddonOption{}, false
}
