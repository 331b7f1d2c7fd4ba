// Package adapters provides the gorm repository of the wishlist feature.
package adapters

import (
	"time"

	authentity "shop_backend/internal/feature/auth/domain/entity"
	productadapters "shop_backend/internal/feature/product/adapters"
	"shop_backend/internal/feature/wishlist/domain/entity"
)

// WishlistModel is the gorm model for the wishlists table.
// Rows disappear together with their user or product.
type WishlistModel struct {
	ID        uint                         `gorm:"primaryKey"`
	UserID    uint                         `gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:1"`
	ProductID uint                         `gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:2;index"`
	User      authentity.User              `gorm:"constraint:OnDelete:CASCADE"`
	Product   productadapters.ProductModel `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WishlistModel) TableName() string {
	return "wishlists"
}

func (m *WishlistModel) toEntity() entity.Wishlist {
	return entity.Wishlist{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		Product: entity.Product{
			ID:          m.Product.ID,
			Name:        m.Product.Name,
			Price:       m.Product.Price,
			Description: m.Product.Description,
		},
		CreatedAt: m.CreatedAt,
	}
}
