package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"shop_backend/internal/feature/product/domain/entity"
)

// DefaultPerPage is the page size of the product listing.
const DefaultPerPage = 15

// ProductRepository abstracts the persistence layer for products.
type ProductRepository interface {
	// List returns up to limit products ordered by ID, skipping offset.
	// When viewerID is non-zero each product carries its wishlist flag for that user.
	List(ctx context.Context, offset, limit int, viewerID uint) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *entity.Product) error
	// Delete removes the product and every wishlist row referencing it.
	// It returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id uint) error
}

type productUsecase struct {
	repo ProductRepository
}

// NewProductUsecase creates a productUsecase.
func NewProductUsecase(repo ProductRepository) *productUsecase {
	return &productUsecase{repo: repo}
}

// ListProducts returns page page of the catalog. Pages below 1 are read as 1
// and a non-positive perPage uses DefaultPerPage.
func (u *productUsecase) ListProducts(ctx context.Context, page, perPage int, viewerID uint) (*entity.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total, err := u.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	items := []entity.Product{}
	// Compare page indexes before multiplying so a huge page cannot overflow the offset.
	if total > 0 && int64(page-1) <= (total-1)/int64(perPage) {
		items, err = u.repo.List(ctx, (page-1)*perPage, perPage, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
	}

	return &entity.ProductPage{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// CreateProduct adds a product. The price is rounded to cents.
func (u *productUsecase) CreateProduct(ctx context.Context, name string, price decimal.Decimal, description string) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	p := &entity.Product{Name: name, Price: price.Round(2), Description: description}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a product together with the wishlist rows referencing it.
func (u *productUsecase) DeleteProduct(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
