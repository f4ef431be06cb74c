package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem carries a snapshot of the product at the time the order was placed.
// Later changes to the product never touch these columns.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"-"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	ProductTitle string          `gorm:"size:200;not null" json:"product_title"`
	ProductSku   string          `gorm:"size:100;not null" json:"product_sku"`
	CreatedAt    time.Time       `json:"created_at"`
}
