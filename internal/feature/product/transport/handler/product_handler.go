// Package handler provides the HTTP handler of the product catalog.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/product/transport/http/dto"
	"shop_backend/internal/feature/product/usecase"
	"shop_backend/internal/platform/http/response"
	jwtmw "shop_backend/internal/platform/jwt"
)

// ProductUsecase defines the catalog operations used by the handler.
type ProductUsecase interface {
	ListProducts(ctx context.Context, page, perPage int, viewerID uint) (*entity.ProductPage, error)
}

// ProductHandler handles the HTTP requests of the product catalog.
type ProductHandler struct {
	products ProductUsecase
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /products?page=N. A missing or unparsable page reads as 1.
func (h *ProductHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Unauthenticated(c)
		return
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	result, err := h.products.ListProducts(c.Request.Context(), page, usecase.DefaultPerPage, userID)
	if err != nil {
		slog.Error("failed to list products", "error", err, "user_id", userID)
		response.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductListResponse(result, c.Request.URL.Path))
}
