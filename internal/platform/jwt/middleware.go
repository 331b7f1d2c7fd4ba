package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shop_backend/internal/platform/http/response"
)

// Context keys set by AuthRequired.
const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
)

// SessionValidator confirms that the session behind a token is still usable.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string, userID uint) error
}

// AuthRequired returns a Gin middleware that accepts only requests carrying a
// valid bearer token whose session has not been revoked.
func AuthRequired(secret string, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthenticated(c)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			slog.Error("JWT secret is not configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Message: "Server misconfigured"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC signatures are accepted.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthenticated(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Unauthenticated(c)
			return
		}
		sub, ok := claims[claimSubject].(float64) // JWT numbers are decoded as float64
		if !ok || sub <= 0 {
			response.Unauthenticated(c)
			return
		}
		sid, ok := claims[claimSessionID].(string)
		if !ok || sid == "" {
			response.Unauthenticated(c)
			return
		}
		userID := uint(sub)

		if err := sessions.ValidateSession(c.Request.Context(), sid, userID); err != nil {
			slog.Debug("session rejected", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
			response.Unauthenticated(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

// UserID returns the authenticated user's ID stored by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// SessionID returns the session ID of the presented token.
func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSessionID)
	if !ok {
		return "", false
	}
	sid, ok := v.(string)
	return sid, ok && sid != ""
}
