// Package dto defines the request and response bodies of the wishlist feature.
package dto

import (
	"time"

	"shop_backend/internal/feature/wishlist/domain/entity"
)

// AddWishlistReq is the body of POST /wishlist.
type AddWishlistReq struct {
	ProductID uint `json:"product_id" binding:"required,product_exists"`
}

// ProductResponse is the product nested in a wishlist row.
type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// WishlistResponse is one wishlist row.
type WishlistResponse struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Product   ProductResponse `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewWishlistResponse converts a wishlist row.
func NewWishlistResponse(w entity.Wishlist) WishlistResponse {
	return WishlistResponse{
		ID:     w.ID,
		UserID: w.UserID,
		Product: ProductResponse{
			ID:          w.Product.ID,
			Name:        w.Product.Name,
			Price:       w.Product.Price.StringFixed(2),
			Description: w.Product.Description,
		},
		CreatedAt: w.CreatedAt,
	}
}

// NewWishlistListResponse converts the rows of a user. An empty list renders as [].
func NewWishlistListResponse(items []entity.Wishlist) []WishlistResponse {
	out := make([]WishlistResponse, len(items))
	for i, w := range items {
		out[i] = NewWishlistResponse(w)
	}
	return out
}
