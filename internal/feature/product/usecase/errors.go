// Package usecase implements the product catalog.
package usecase

import "errors"

var (
	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct is returned when a product to create has no name or a negative price.
	ErrInvalidProduct = errors.New("invalid product")
)
