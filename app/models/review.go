package models

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AuthorID           uint      `gorm:"not null;uniqueIndex:idx_reviews_author_product" json:"author_id"`
	Author             *User     `gorm:"foreignKey:AuthorID" json:"-"`
	ProductID          uint      `gorm:"not null;uniqueIndex:idx_reviews_author_product;index" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"-"`
	Rating             int       `gorm:"not null" json:"rating"`
	Title              string    `gorm:"size:200" json:"title,omitempty"`
	Body               string    `gorm:"type:text" json:"body,omitempty"`
	IsVerifiedPurchase bool      `gorm:"default:false;not null" json:"is_verified_purchase"`
	IsApproved         bool      `gorm:"not null" json:"is_approved"`
	HelpfulCount       int       `gorm:"default:0;not null" json:"helpful_count"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
