// Package adapters provides the gorm repository of the product catalog.
package adapters

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel is the gorm model for the products table.
type ProductModel struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

// productRow is a products row plus the computed wishlist flag.
type productRow struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	InWishlist  bool
}
