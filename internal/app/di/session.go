package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "shop_backend/internal/feature/auth/adapters"
	"shop_backend/internal/feature/auth/usecase"
	"shop_backend/internal/platform/session"
)

// NewSessionRepository returns the Redis session store when rdb is set and
// the database store otherwise.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, session.DefaultPrefix)
	}
	return authadapters.NewSessionGorm(db)
}
