package adapters

import (
	"context"

	"gorm.io/gorm"

	"shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/product/usecase"
)

// inWishlistColumn flags, in the listing query itself, whether the viewer saved the product.
const inWishlistColumn = "EXISTS (SELECT 1 FROM wishlists w WHERE w.product_id = products.id AND w.user_id = ?) AS in_wishlist"

type productGorm struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm creates a productGorm backed by db.
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// List returns one page of products ordered by ID in a single query.
func (r *productGorm) List(ctx context.Context, offset, limit int, viewerID uint) ([]entity.Product, error) {
	q := r.db.WithContext(ctx).Model(&ProductModel{})
	if viewerID != 0 {
		q = q.Select("products.*, "+inWishlistColumn, viewerID)
	} else {
		q = q.Select("products.*")
	}

	var rows []productRow
	if err := q.Order("products.id ASC").Offset(offset).Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]entity.Product, len(rows))
	for i, row := range rows {
		products[i] = entity.Product{
			ID:          row.ID,
			Name:        row.Name,
			Price:       row.Price,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
		if viewerID != 0 {
			in := row.InWishlist
			products[i].InWishlist = &in
		}
	}
	return products, nil
}

// Count returns the number of products.
func (r *productGorm) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&ProductModel{}).Count(&total).Error
	return total, err
}

// Exists reports whether a product with the ID exists.
func (r *productGorm) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProductModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts the product and fills in its ID and timestamps.
func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	m := &ProductModel{Name: p.Name, Price: p.Price, Description: p.Description}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

// Delete removes the wishlist rows referencing the product, then the product, in one transaction.
func (r *productGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM wishlists WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&ProductModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrProductNotFound
		}
		return nil
	})
}
