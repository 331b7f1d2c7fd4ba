// Package usecase implements the wishlist business logic.
package usecase

import "errors"

var (
	// ErrWishlistNotFound is returned when no wishlist row has the requested ID.
	ErrWishlistNotFound = errors.New("wishlist item not found")

	// ErrForbidden is returned when a user tries to remove another user's row.
	ErrForbidden = errors.New("wishlist item belongs to another user")

	// ErrProductNotFound is returned when the product to add does not exist.
	ErrProductNotFound = errors.New("product not found")
)
