package models

import (
	"time"

	"github.com/example/aseertime/pkg/schedule"
)

type Branch struct {
	ID             string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Address        string          `gorm:"type:varchar(255)" json:"address"`
	Phone          string          `gorm:"type:varchar(20)" json:"phone"`
	Email          string          `gorm:"type:varchar(100)" json:"email"`
	IsActive       bool            `gorm:"not null" json:"isActive"`
	OperatingHours schedule.Weekly `gorm:"type:text;serializer:json" json:"operatingHours"`
	DeliveryZones  []string        `gorm:"type:text;serializer:json" json:"deliveryZones"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (Branch) TableName() string {
	return "branches"
}

func (b Branch) Key() string { return b.ID }
