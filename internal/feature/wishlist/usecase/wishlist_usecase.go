package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"shop_backend/internal/feature/wishlist/domain/entity"
)

// WishlistRepository abstracts the persistence layer for wishlist rows.
type WishlistRepository interface {
	// ListByUser returns the user's rows with their products, ordered by ID.
	ListByUser(ctx context.Context, userID uint) ([]entity.Wishlist, error)

	// AddIfAbsent inserts the (user, product) pair unless it exists and
	// returns the stored row either way. It returns ErrProductNotFound when
	// the product does not exist.
	AddIfAbsent(ctx context.Context, userID, productID uint) (*entity.Wishlist, error)

	// FindByID returns ErrWishlistNotFound when the row does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Wishlist, error)

	// Delete returns ErrWishlistNotFound when the row does not exist.
	Delete(ctx context.Context, id uint) error
}

// ProductChecker reports whether a product exists.
type ProductChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type wishlistUsecase struct {
	repo     WishlistRepository
	products ProductChecker
}

// NewWishlistUsecase creates a wishlistUsecase.
func NewWishlistUsecase(repo WishlistRepository, products ProductChecker) *wishlistUsecase {
	return &wishlistUsecase{repo: repo, products: products}
}

// ListWishlist returns the rows owned by userID.
func (u *wishlistUsecase) ListWishlist(ctx context.Context, userID uint) ([]entity.Wishlist, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

// AddToWishlist saves productID for userID. Adding a saved product again
// returns the existing row.
func (u *wishlistUsecase) AddToWishlist(ctx context.Context, userID, productID uint) (*entity.Wishlist, error) {
	ok, err := u.products.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !ok {
		return nil, ErrProductNotFound
	}

	item, err := u.repo.AddIfAbsent(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	slog.Info("wishlist item saved", "user_id", userID, "product_id", productID, "wishlist_id", item.ID)
	return item, nil
}

// RemoveFromWishlist deletes the row when userID owns it.
func (u *wishlistUsecase) RemoveFromWishlist(ctx context.Context, userID, wishlistID uint) error {
	item, err := u.repo.FindByID(ctx, wishlistID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrForbidden
	}
	return u.repo.Delete(ctx, wishlistID)
}
