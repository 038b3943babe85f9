package models

import "time"

// Category display order is SortOrder; list position carries no meaning.
type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:varchar(512)" json:"image"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	SortOrder   int       `gorm:"index" json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

func (c Category) Key() string { return c.ID }
