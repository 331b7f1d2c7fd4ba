package di_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shop_backend/internal/app/di"
	productadapters "shop_backend/internal/feature/product/adapters"
	productusecase "shop_backend/internal/feature/product/usecase"
	"shop_backend/internal/platform/db"
	jwtmw "shop_backend/internal/platform/jwt"
)

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestApp(t *testing.T, rdb *redis.Client) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, di.Models()...))

	engine, err := di.NewEngine(gdb, rdb, di.Config{
		JWT: jwtmw.Config{Secret: "test-secret", TTL: time.Hour},
	})
	require.NoError(t, err)

	return &testApp{t: t, db: gdb, engine: engine}
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) register(name, email string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/register", "", map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              "password123",
		"password_confirmation": "password123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(a.t, res.Token)
	return res.Token
}

func (a *testApp) seedProducts(n int) []uint {
	a.t.Helper()

	products := productusecase.NewProductUsecase(productadapters.NewProductGorm(a.db))
	ids := make([]uint, 0, n)
	for i := 1; i <= n; i++ {
		p, err := products.CreateProduct(a.t.Context(), fmt.Sprintf("Product %d", i), decimal.NewFromInt(int64(i)), "")
		require.NoError(a.t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func (a *testApp) addToWishlist(token string, productID uint) uint {
	a.t.Helper()

	w := a.do(http.MethodPost, "/wishlist", token, map[string]uint{"product_id": productID})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Data.ID
}

type productList struct {
	Data []struct {
		ID         uint   `json:"id"`
		Price      string `json:"price"`
		InWishlist *bool  `json:"in_wishlist"`
	} `json:"data"`
	Links struct {
		Prev *string `json:"prev"`
		Next *string `json:"next"`
	} `json:"links"`
	Meta struct {
		CurrentPage int   `json:"current_page"`
		From        *int  `json:"from"`
		To          *int  `json:"to"`
		LastPage    int   `json:"last_page"`
		Total       int64 `json:"total"`
	} `json:"meta"`
}

func (a *testApp) listProducts(token string, page int) productList {
	a.t.Helper()

	w := a.do(http.MethodGet, fmt.Sprintf("/products?page=%d", page), token, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var res productList
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func (a *testApp) wishlistLen(token string) int {
	a.t.Helper()

	w := a.do(http.MethodGet, "/wishlist", token, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	return len(res.Data)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, nil)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/logout"},
		{http.MethodDelete, "/user"},
		{http.MethodGet, "/products"},
		{http.MethodGet, "/wishlist"},
		{http.MethodPost, "/wishlist"},
		{http.MethodDelete, "/wishlist/1"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, app.do(r.method, r.path, "", nil).Code)
			assert.Equal(t, http.StatusUnauthorized, app.do(r.method, r.path, "garbage", nil).Code)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/healthz", "", nil).Code)

	w := app.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/healthz")
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("Alice", "alice@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		w := app.do(http.MethodPost, "/register", "", map[string]string{
			"name":                  "Other",
			"email":                 "alice@example.com",
			"password":              "password123",
			"password_confirmation": "password123",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "email")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := app.do(http.MethodPost, "/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("logout invalidates only that token", func(t *testing.T) {
		login := func() string {
			w := app.do(http.MethodPost, "/login", "", map[string]string{
				"email":    "alice@example.com",
				"password": "password123",
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var res struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			return res.Token
		}
		first, second := login(), login()

		assert.Equal(t, http.StatusNoContent, app.do(http.MethodPost, "/logout", first, nil).Code)

		assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/wishlist", first, nil).Code)
		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/wishlist", second, nil).Code)
	})
}

func TestProductPagination(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.register("Alice", "alice@example.com")
	app.seedProducts(20)

	first := app.listProducts(token, 1)
	assert.Len(t, first.Data, 15)
	assert.Equal(t, int64(20), first.Meta.Total)
	assert.Equal(t, 2, first.Meta.LastPage)
	assert.Nil(t, first.Links.Prev)
	require.NotNil(t, first.Links.Next)
	assert.Equal(t, "1.00", first.Data[0].Price)

	second := app.listProducts(token, 2)
	assert.Len(t, second.Data, 5)
	assert.Nil(t, second.Links.Next)
	assert.Equal(t, first.Data[14].ID+1, second.Data[0].ID)

	assert.Empty(t, app.listProducts(token, 3).Data)

	huge := app.listProducts(token, 614891469123651722)
	assert.Empty(t, huge.Data)
	assert.Nil(t, huge.Meta.From)
	assert.Nil(t, huge.Meta.To)
	assert.Equal(t, int64(20), huge.Meta.Total)
	assert.Equal(t, 1, app.listProducts(token, 0).Meta.CurrentPage)
}

func TestWishlistFlow(t *testing.T) {
	app := newTestApp(t, nil)
	alice := app.register("Alice", "alice@example.com")
	bob := app.register("Bob", "bob@example.com")
	ids := app.seedProducts(3)

	t.Run("add is idempotent", func(t *testing.T) {
		first := app.addToWishlist(alice, ids[0])
		second := app.addToWishlist(alice, ids[0])

		assert.Equal(t, first, second)
		assert.Equal(t, 1, app.wishlistLen(alice))
	})

	t.Run("unknown product", func(t *testing.T) {
		w := app.do(http.MethodPost, "/wishlist", alice, map[string]uint{"product_id": 9999})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "product_id")
	})

	t.Run("in_wishlist is per viewer", func(t *testing.T) {
		forAlice := app.listProducts(alice, 1)
		require.Len(t, forAlice.Data, 3)
		for _, p := range forAlice.Data {
			require.NotNil(t, p.InWishlist)
			assert.Equal(t, p.ID == ids[0], *p.InWishlist, "product %d", p.ID)
		}

		for _, p := range app.listProducts(bob, 1).Data {
			require.NotNil(t, p.InWishlist)
			assert.False(t, *p.InWishlist)
		}
	})

	t.Run("remove", func(t *testing.T) {
		itemID := app.addToWishlist(alice, ids[1])
		path := fmt.Sprintf("/wishlist/%d", itemID)

		assert.Equal(t, http.StatusForbidden, app.do(http.MethodDelete, path, bob, nil).Code)
		assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, path, alice, nil).Code)
		assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, path, alice, nil).Code)
		assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, "/wishlist/abc", alice, nil).Code)
	})
}

func TestCascades(t *testing.T) {
	app := newTestApp(t, nil)
	alice := app.register("Alice", "alice@example.com")
	bob := app.register("Bob", "bob@example.com")
	ids := app.seedProducts(2)

	app.addToWishlist(alice, ids[0])
	app.addToWishlist(alice, ids[1])
	app.addToWishlist(bob, ids[0])

	t.Run("product deletion", func(t *testing.T) {
		products := productusecase.NewProductUsecase(productadapters.NewProductGorm(app.db))
		require.NoError(t, products.DeleteProduct(t.Context(), ids[0]))

		assert.Equal(t, 1, app.wishlistLen(alice))
		assert.Equal(t, 0, app.wishlistLen(bob))
	})

	t.Run("user deletion", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/user", alice, nil).Code)

		var rows int64
		require.NoError(t, app.db.Table("wishlists").Count(&rows).Error)
		assert.Zero(t, rows)
		assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/wishlist", alice, nil).Code)
		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/wishlist", bob, nil).Code)
	})
}

func TestRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := newTestApp(t, rdb)
	token := app.register("Alice", "alice@example.com")

	keys := mr.Keys()
	assert.NotEmpty(t, keys)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/wishlist", token, nil).Code)
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodPost, "/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/wishlist", token, nil).Code)

	var rows int64
	require.NoError(t, app.db.Table("sessions").Count(&rows).Error)
	assert.Zero(t, rows)
}
