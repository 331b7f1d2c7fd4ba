// Command catalog seeds and deletes products.
//
//	catalog seed -count 20 [-rate 50]
//	catalog delete -id 3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"shop_backend/internal/app/di"
	"shop_backend/internal/feature/product/adapters"
	"shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/product/usecase"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/shared/ratelimiter"
)

// catalog is the part of the product usecase used by the CLI.
type catalog interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, description string) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(context.Background(), os.Args[1:]); err != nil {
		slog.Error("catalog failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: catalog <seed|delete> [flags]")
	}

	cfg := db.LoadConfigFromEnv()
	gdb, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb, di.Models()...); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	products := usecase.NewProductUsecase(adapters.NewProductGorm(gdb))

	switch args[0] {
	case "seed":
		fs := flag.NewFlagSet("seed", flag.ContinueOnError)
		count := fs.Int("count", 20, "number of products to create")
		rate := fs.Int("rate", 0, "max inserts per second (0 = unlimited)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return seed(ctx, products, ratelimiter.NewRateLimiter(*rate, time.Second), *count)
	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		id := fs.Uint("id", 0, "product id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return errors.New("-id is required")
		}
		return remove(ctx, products, *id)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func seed(ctx context.Context, products catalog, limiter ratelimiter.Limiter, count int) error {
	for i := 1; i <= count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		cents := rand.Int64N(99900) + 100
		p, err := products.CreateProduct(ctx,
			fmt.Sprintf("Product %d", i),
			decimal.New(cents, -2),
			fmt.Sprintf("Sample product number %d.", i),
		)
		if err != nil {
			return fmt.Errorf("failed to create product %d: %w", i, err)
		}
		slog.Info("product created", "id", p.ID, "name", p.Name, "price", p.Price.StringFixed(2))
	}
	return nil
}

func remove(ctx context.Context, products catalog, id uint) error {
	if err := products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			return fmt.Errorf("product %d not found", id)
		}
		return err
	}
	slog.Info("product deleted", "id", id)
	return nil
}
