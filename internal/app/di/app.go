// Package di wires repositories, usecases and handlers into a gin engine.
package di

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shop_backend/internal/app/router"
	authadapters "shop_backend/internal/feature/auth/adapters"
	authentity "shop_backend/internal/feature/auth/domain/entity"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	authusecase "shop_backend/internal/feature/auth/usecase"
	productadapters "shop_backend/internal/feature/product/adapters"
	producthandler "shop_backend/internal/feature/product/transport/handler"
	productusecase "shop_backend/internal/feature/product/usecase"
	wishlistadapters "shop_backend/internal/feature/wishlist/adapters"
	wishlisthandler "shop_backend/internal/feature/wishlist/transport/handler"
	wishlistusecase "shop_backend/internal/feature/wishlist/usecase"
	healthhandler "shop_backend/internal/platform/http/handler"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/metrics"
	"shop_backend/internal/platform/validation"
)

// Config holds the settings NewEngine needs beyond its connections.
type Config struct {
	JWT                jwtmw.Config
	CORSAllowedOrigins []string
}

// Models lists every gorm model in migration order.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&productadapters.ProductModel{},
		&wishlistadapters.WishlistModel{},
	}
}

// NewEngine builds the HTTP engine. rdb may be nil.
func NewEngine(db *gorm.DB, rdb *redis.Client, cfg Config) (*gin.Engine, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := NewSessionRepository(rdb, db)
	productRepo := productadapters.NewProductGorm(db)
	wishlistRepo := wishlistadapters.NewWishlistGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.TTL))
	productUC := productusecase.NewProductUsecase(productRepo)
	wishlistUC := wishlistusecase.NewWishlistUsecase(wishlistRepo, productRepo)

	// Validation rules backed by the database
	v := validation.New()
	if err := authhandler.RegisterRules(v, userRepo); err != nil {
		return nil, err
	}
	if err := wishlisthandler.RegisterRules(v, productRepo); err != nil {
		return nil, err
	}

	// Handler
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC, v),
		Products: producthandler.NewProductHandler(productUC),
		Wishlist: wishlisthandler.NewWishlistHandler(wishlistUC, v),
		Health:   healthhandler.Health(sqlDB),
		Metrics:  metrics.New(),
	}

	return router.NewRouter(handlers, router.Options{
		JWTSecret:          cfg.JWT.Secret,
		Sessions:           authUC,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}), nil
}
