package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Title          string          `gorm:"size:200;not null;index" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	InventoryCount int             `gorm:"not null;default:0" json:"inventory_count"`
	Sku            string          `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Weight         decimal.Decimal `gorm:"type:decimal(8,2)" json:"weight"`
	Material       string          `gorm:"size:100" json:"material,omitempty"`
	Gemstone       string          `gorm:"size:100" json:"gemstone,omitempty"`
	Size           string          `gorm:"size:50" json:"size,omitempty"`
	IsActive       bool            `gorm:"not null;index" json:"is_active"`
	IsFeatured     bool            `gorm:"default:false;not null" json:"is_featured"`
	SellerID       uint            `gorm:"not null;index" json:"seller_id"`
	Seller         *User           `gorm:"foreignKey:SellerID" json:"-"`
	Categories     []Category      `gorm:"many2many:product_categories;" json:"categories"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	AverageRating *float64 `gorm:"-" json:"average_rating,omitempty"`
	ReviewCount   *int64   `gorm:"-" json:"review_count,omitempty"`
}

type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}

func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && p.InventoryCount >= quantity
}
