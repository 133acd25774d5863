package domain

import (
	"time"
)

// Product is a catalog entry. DealerPrice is always derived from
// ListPrice (10% discount, rounded to 2dp) at creation time.
// JSON keys mirror the backup document format: mrp is the list price,
// price is the dealer price, bv the per-unit bonus value.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"type:text"`
	ListPrice   float64   `json:"mrp" gorm:"column:list_price;not null"`
	DealerPrice float64   `json:"price" gorm:"column:dealer_price;not null"`
	BonusValue  float64   `json:"bv" gorm:"column:bonus_value;not null;default:0"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"-" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"-" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
