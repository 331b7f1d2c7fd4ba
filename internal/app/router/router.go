package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "shop_backend/internal/feature/auth/transport/handler"
	producthandler "shop_backend/internal/feature/product/transport/handler"
	wishlisthandler "shop_backend/internal/feature/wishlist/transport/handler"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/metrics"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Products *producthandler.ProductHandler
	Wishlist *wishlisthandler.WishlistHandler
	Health   gin.HandlerFunc
	Metrics  *metrics.Metrics
}

// Options configures authentication and CORS.
type Options struct {
	JWTSecret          string
	Sessions           jwtmw.SessionValidator
	CORSAllowedOrigins []string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	// Public routes
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)

	// Authenticated routes
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret, opts.Sessions))
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.DELETE("/user", h.Auth.DeleteAccount)

		auth.GET("/products", h.Products.List)

		auth.GET("/wishlist", h.Wishlist.List)
		auth.POST("/wishlist", h.Wishlist.Add)
		auth.DELETE("/wishlist/:id", h.Wishlist.Remove)
	}

	return r
}
