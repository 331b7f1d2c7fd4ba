// Package handler provides the HTTP handlers of the wishlist feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"shop_backend/internal/feature/wishlist/domain/entity"
	"shop_backend/internal/feature/wishlist/transport/http/dto"
	"shop_backend/internal/feature/wishlist/usecase"
	"shop_backend/internal/platform/http/response"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/validation"
)

const msgInvalidProduct = "The selected product id is invalid."

// WishlistUsecase defines the wishlist operations used by the handler.
type WishlistUsecase interface {
	ListWishlist(ctx context.Context, userID uint) ([]entity.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID uint) (*entity.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userID, wishlistID uint) error
}

// RegisterRules installs the wishlist rules on v:
//   - product_exists: the ID names a stored product.
func RegisterRules(v *validation.Validator, products usecase.ProductChecker) error {
	return v.RegisterRule("product_exists", "The selected %s is invalid.", func(ctx context.Context, fl validator.FieldLevel) bool {
		ok, err := products.Exists(ctx, uint(fl.Field().Uint()))
		if err != nil {
			// AddToWishlist repeats the check and reports the failure.
			slog.Error("product existence check failed", "error", err)
			return true
		}
		return ok
	})
}

// WishlistHandler handles the HTTP requests of the wishlist feature.
type WishlistHandler struct {
	wishlist  WishlistUsecase
	validator *validation.Validator
}

// NewWishlistHandler creates a WishlistHandler.
func NewWishlistHandler(wishlist WishlistUsecase, v *validation.Validator) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, validator: v}
}

// List handles GET /wishlist.
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Unauthenticated(c)
		return
	}

	items, err := h.wishlist.ListWishlist(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list wishlist", "error", err, "user_id", userID)
		response.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, response.DataResponse{Data: dto.NewWishlistListResponse(items)})
}

// Add handles POST /wishlist. Adding a saved product again answers 201 with the existing row.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Unauthenticated(c)
		return
	}

	var req dto.AddWishlistReq
	if err := h.validator.BindJSON(c, &req); err != nil {
		slog.Warn("wishlist validation failed", "error", err, "remote_addr", c.ClientIP())
		response.BindError(c, err)
		return
	}

	item, err := h.wishlist.AddToWishlist(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			// Deleted between validation and insert.
			response.Invalid(c, validation.NewError("product_id", msgInvalidProduct))
			return
		}
		slog.Error("failed to add to wishlist", "error", err, "user_id", userID)
		response.ServerError(c)
		return
	}

	c.JSON(http.StatusCreated, response.DataResponse{Data: dto.NewWishlistResponse(*item)})
}

// Remove handles DELETE /wishlist/:id. A non-numeric id is treated as unknown.
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Unauthenticated(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.NotFound(c)
		return
	}

	if err := h.wishlist.RemoveFromWishlist(c.Request.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, usecase.ErrWishlistNotFound):
			response.NotFound(c)
		case errors.Is(err, usecase.ErrForbidden):
			slog.Warn("wishlist removal forbidden", "user_id", userID, "wishlist_id", id)
			response.Forbidden(c)
		default:
			slog.Error("failed to remove from wishlist", "error", err, "user_id", userID)
			response.ServerError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
