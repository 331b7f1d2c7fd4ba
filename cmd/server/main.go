package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/di"
	"shop_backend/internal/platform/db"
	jwtmw "shop_backend/internal/platform/jwt"
	infraredis "shop_backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	setupLogger(os.Getenv("LOG_LEVEL"))

	// db
	dbCfg := db.LoadConfigFromEnv()
	gdb, err := db.Open(dbCfg)
	if err != nil {
		slog.Error("failed to open database", "driver", dbCfg.Driver, "error", err)
		os.Exit(1)
	}
	if dbCfg.RunMigrations {
		if err := db.Migrate(gdb, di.Models()...); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), infraredis.LoadConfig()); err != nil {
		if errors.Is(err, infraredis.ErrNotConfigured) {
			slog.Info("Redis not configured, storing sessions in the database")
		} else {
			slog.Warn("Redis unavailable, storing sessions in the database", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	jwtCfg := jwtmw.LoadConfig()
	if jwtCfg.Secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	engine, err := di.NewEngine(gdb, rdb, di.Config{
		JWT:                jwtCfg,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	})
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("starting server", "port", port)
	if err := engine.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
