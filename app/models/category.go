package models

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ParentID    *uint     `gorm:"index" json:"parent_id"`
	Parent      *Category `gorm:"foreignKey:ParentID" json:"-"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	SortOrder   int       `gorm:"default:0;not null" json:"sort_order"`
	Products    []Product `gorm:"many2many:product_categories;" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
