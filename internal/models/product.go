package models

import "github.com/shopspring/decimal"

// Product represents an item for sale. Products are read-only for the API.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:255;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock      int             `gorm:"not null;default:10"`
	CategoryID *uint           `gorm:"index"`
	Tags       []*Tag          `gorm:"many2many:product_tags;"`
}
