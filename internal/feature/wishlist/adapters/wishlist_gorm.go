package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop_backend/internal/feature/wishlist/domain/entity"
	"shop_backend/internal/feature/wishlist/usecase"
)

type wishlistGorm struct {
	db *gorm.DB
}

var _ usecase.WishlistRepository = (*wishlistGorm)(nil)

// NewWishlistGorm creates a wishlistGorm backed by db.
func NewWishlistGorm(db *gorm.DB) *wishlistGorm {
	return &wishlistGorm{db: db}
}

// ListByUser loads the user's rows and their products in two queries.
func (r *wishlistGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Wishlist, error) {
	var models []WishlistModel
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]entity.Wishlist, len(models))
	for i := range models {
		items[i] = models[i].toEntity()
	}
	return items, nil
}

// AddIfAbsent inserts the pair, relying on idx_wishlist_user_product to
// ignore duplicates, then reads the stored row back.
func (r *wishlistGorm) AddIfAbsent(ctx context.Context, userID, productID uint) (*entity.Wishlist, error) {
	var m WishlistModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := WishlistModel{UserID: userID, ProductID: productID}
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
				DoNothing: true,
			}).
			Create(&row).Error; err != nil {
			return err
		}
		return tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}

	item := m.toEntity()
	return &item, nil
}

// FindByID returns the row with its product.
func (r *wishlistGorm) FindByID(ctx context.Context, id uint) (*entity.Wishlist, error) {
	var m WishlistModel
	if err := r.db.WithContext(ctx).Preload("Product").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrWishlistNotFound
		}
		return nil, err
	}
	item := m.toEntity()
	return &item, nil
}

// Delete removes the row in a transaction.
func (r *wishlistGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&WishlistModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrWishlistNotFound
		}
		return nil
	})
}
