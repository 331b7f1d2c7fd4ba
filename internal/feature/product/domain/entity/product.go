// Package entity defines the domain entities for the product catalog.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item of the catalog.
type Product struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// InWishlist is set only when the product was listed for a viewer.
	InWishlist *bool
}

// ProductPage is one page of the catalog.
type ProductPage struct {
	Items   []Product
	Page    int
	PerPage int
	Total   int64
}

// LastPage returns the number of the last page, at least 1.
func (p *ProductPage) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// From returns the 1-based position of the first item on the page, or 0 when empty.
func (p *ProductPage) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

// To returns the 1-based position of the last item on the page, or 0 when empty.
func (p *ProductPage) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}
