// Package dto defines the response bodies of the product catalog.
package dto

import (
	"fmt"
	"time"

	"shop_backend/internal/feature/product/domain/entity"
)

// ProductResponse is one item of the product listing.
// Price is a string with exactly two decimals.
type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	InWishlist  *bool     `json:"in_wishlist,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Links holds the navigation URLs of a page. Prev and Next are null at the edges.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Meta describes the position of a page in the listing. From and To are null on an empty page.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int64  `json:"total"`
}

// ProductListResponse is the body of GET /products.
type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Links Links             `json:"links"`
	Meta  Meta              `json:"meta"`
}

// NewProductResponse converts a product.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		InWishlist:  p.InWishlist,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductListResponse converts a page; path is the listing URL without query.
func NewProductListResponse(page *entity.ProductPage, path string) ProductListResponse {
	data := make([]ProductResponse, len(page.Items))
	for i, p := range page.Items {
		data[i] = NewProductResponse(p)
	}

	pageURL := func(n int) string { return fmt.Sprintf("%s?page=%d", path, n) }
	last := page.LastPage()

	links := Links{First: pageURL(1), Last: pageURL(last)}
	if page.Page > 1 {
		prev := pageURL(page.Page - 1)
		links.Prev = &prev
	}
	if page.Page < last {
		next := pageURL(page.Page + 1)
		links.Next = &next
	}

	meta := Meta{
		CurrentPage: page.Page,
		LastPage:    last,
		Path:        path,
		PerPage:     page.PerPage,
		Total:       page.Total,
	}
	if len(page.Items) > 0 {
		from, to := page.From(), page.To()
		meta.From, meta.To = &from, &to
	}

	return ProductListResponse{Data: data, Links: links, Meta: meta}
}
