package models

import (
	"time"

	"github.com/example/aseertime/pkg/money"
)

// Settings is a singleton row, replaced wholesale on save.
type Settings struct {
	ID                 string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SiteName           string       `gorm:"type:varchar(100)" json:"siteName"`
	Logo               string       `gorm:"type:varchar(512)" json:"logo"`
	BannerImages       []string     `gorm:"type:text;serializer:json" json:"bannerImages"`
	WhatsAppNumber     string       `gorm:"type:varchar(20)" json:"whatsappNumber"`
	Currency           string       `gorm:"type:varchar(3)" json:"currency"`
	TaxRate            float64      `json:"taxRate"` // percent
	DefaultDeliveryFee money.Amount `json:"defaultDeliveryFee"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func (Settings) TableName() string {
	return "settings"
}

func (s Settings) Key() string { return s.ID }
