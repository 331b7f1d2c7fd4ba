package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backend/internal/feature/wishlist/domain/entity"
	"shop_backend/internal/feature/wishlist/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/validation"
)

// mockWishlistUsecase is a mock implementation of the WishlistUsecase interface.
type mockWishlistUsecase struct {
	ListWishlistFunc       func(ctx context.Context, userID uint) ([]entity.Wishlist, error)
	AddToWishlistFunc      func(ctx context.Context, userID, productID uint) (*entity.Wishlist, error)
	RemoveFromWishlistFunc func(ctx context.Context, userID, wishlistID uint) error
}

func (m *mockWishlistUsecase) ListWishlist(ctx context.Context, userID uint) ([]entity.Wishlist, error) {
	if m.ListWishlistFunc != nil {
		return m.ListWishlistFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWishlistUsecase) AddToWishlist(ctx context.Context, userID, productID uint) (*entity.Wishlist, error) {
	if m.AddToWishlistFunc != nil {
		return m.AddToWishlistFunc(ctx, userID, productID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWishlistUsecase) RemoveFromWishlist(ctx context.Context, userID, wishlistID uint) error {
	if m.RemoveFromWishlistFunc != nil {
		return m.RemoveFromWishlistFunc(ctx, userID, wishlistID)
	}
	return nil
}

// mockProductChecker is a mock implementation of usecase.ProductChecker.
type mockProductChecker struct {
	ExistsFunc func(ctx context.Context, id uint) (bool, error)
}

func (m *mockProductChecker) Exists(ctx context.Context, id uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return id == 9, nil
}

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleItem(userID uint) *entity.Wishlist {
	return &entity.Wishlist{
		ID: 4, UserID: userID, ProductID: 9,
		Product:   entity.Product{ID: 9, Name: "Lamp", Price: decimal.RequireFromString("49.9"), Description: "Desk lamp"},
		CreatedAt: created,
	}
}

const sampleJSON = `{"id":4,"user_id":1,"product":{"id":9,"name":"Lamp","price":"49.90","description":"Desk lamp"},"created_at":"2024-03-01T09:00:00Z"}`

func setupRouter(t *testing.T, uc WishlistUsecase, userID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := validation.New()
	require.NoError(t, RegisterRules(v, &mockProductChecker{}))
	h := NewWishlistHandler(uc, v)

	r := gin.New()
	auth := r.Group("/", func(c *gin.Context) {
		if userID != 0 {
			c.Set(jwtmw.ContextUserID, userID)
		}
		c.Next()
	})
	auth.GET("/wishlist", h.List)
	auth.POST("/wishlist", h.Add)
	auth.DELETE("/wishlist/:id", h.Remove)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWishlistHandler_List(t *testing.T) {
	t.Run("returns the user's rows", func(t *testing.T) {
		uc := &mockWishlistUsecase{
			ListWishlistFunc: func(_ context.Context, userID uint) ([]entity.Wishlist, error) {
				return []entity.Wishlist{*sampleItem(userID)}, nil
			},
		}

		w := serve(setupRouter(t, uc, 1), http.MethodGet, "/wishlist", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[`+sampleJSON+`]}`, w.Body.String())
	})

	t.Run("empty list", func(t *testing.T) {
		w := serve(setupRouter(t, &mockWishlistUsecase{}, 1), http.MethodGet, "/wishlist", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := serve(setupRouter(t, &mockWishlistUsecase{}, 0), http.MethodGet, "/wishlist", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWishlistHandler_Add(t *testing.T) {
	ok := func(_ context.Context, userID, _ uint) (*entity.Wishlist, error) { return sampleItem(userID), nil }

	tests := []struct {
		name           string
		body           string
		addFunc        func(ctx context.Context, userID, productID uint) (*entity.Wishlist, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"product_id":9}`,
			addFunc:        ok,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"data":` + sampleJSON + `}`,
		},
		{
			name:           "missing product id",
			body:           `{}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"The product id field is required.","errors":{"product_id":"The product id field is required."}}`,
		},
		{
			name:           "non-integer product id",
			body:           `{"product_id":"nine"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"The product id field must be an integer.","errors":{"product_id":"The product id field must be an integer."}}`,
		},
		{
			name:           "unknown product",
			body:           `{"product_id":8}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"The selected product id is invalid.","errors":{"product_id":"The selected product id is invalid."}}`,
		},
		{
			name: "product deleted after validation",
			body: `{"product_id":9}`,
			addFunc: func(context.Context, uint, uint) (*entity.Wishlist, error) {
				return nil, usecase.ErrProductNotFound
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"The selected product id is invalid.","errors":{"product_id":"The selected product id is invalid."}}`,
		},
		{
			name: "internal error",
			body: `{"product_id":9}`,
			addFunc: func(context.Context, uint, uint) (*entity.Wishlist, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(setupRouter(t, &mockWishlistUsecase{AddToWishlistFunc: tt.addFunc}, 1), http.MethodPost, "/wishlist", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWishlistHandler_Remove(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"owner removes", "/wishlist/4", nil, http.StatusNoContent, ""},
		{"other user's row", "/wishlist/4", usecase.ErrForbidden, http.StatusForbidden, `{"message":"This action is unauthorized."}`},
		{"missing row", "/wishlist/4", usecase.ErrWishlistNotFound, http.StatusNotFound, `{"message":"Not found."}`},
		{"non-numeric id", "/wishlist/abc", nil, http.StatusNotFound, `{"message":"Not found."}`},
		{"internal error", "/wishlist/4", errors.New("db down"), http.StatusInternalServerError, `{"message":"Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWishlistUsecase{
				RemoveFromWishlistFunc: func(_ context.Context, userID, wishlistID uint) error {
					assert.Equal(t, uint(1), userID)
					assert.Equal(t, uint(4), wishlistID)
					return tt.err
				},
			}

			w := serve(setupRouter(t, uc, 1), http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody == "" {
				assert.Empty(t, w.Body.String())
				return
			}
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWishlistHandler_Add_ProductCheckFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbErr := errors.New("db down")

	v := validation.New()
	require.NoError(t, RegisterRules(v, &mockProductChecker{
		ExistsFunc: func(context.Context, uint) (bool, error) { return false, dbErr },
	}))
	h := NewWishlistHandler(&mockWishlistUsecase{
		AddToWishlistFunc: func(context.Context, uint, uint) (*entity.Wishlist, error) {
			return nil, fmt.Errorf("failed to check product: %w", dbErr)
		},
	}, v)

	r := gin.New()
	r.POST("/wishlist", func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(1))
		h.Add(c)
	})

	w := serve(r, http.MethodPost, "/wishlist", `{"product_id":9}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
}
