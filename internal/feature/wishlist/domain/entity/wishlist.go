// Package entity defines the domain entities for the wishlist feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wishlist records that a user saved a product. A user holds at most one
// row per product.
type Wishlist struct {
	ID        uint
	UserID    uint
	ProductID uint
	Product   Product
	CreatedAt time.Time
}

// Product is the part of a catalog product shown inside a wishlist row.
type Product struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	Description string
}
