package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names carried by every token.
const (
	claimSubject   = "sub"
	claimSessionID = "sid"
	claimEmail     = "email"
)

// ErrEmptySecret is returned when a token is signed without a secret.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Generator signs tokens bound to a session.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a Generator with the provided secret and token lifetime.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	if expiration <= 0 {
		expiration = DefaultTTL
	}
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed HS256 token for the user and session.
// It returns the token together with its expiry so the session can share it.
func (g *Generator) GenerateToken(userID uint, email, sessionID string) (string, time.Time, error) {
	if len(g.secret) == 0 {
		return "", time.Time{}, ErrEmptySecret
	}

	now := g.now()
	expiresAt := now.Add(g.expiration)
	claims := jwt.MapClaims{
		claimSubject:   userID,
		claimSessionID: sessionID,
		claimEmail:     email,
		"exp":          expiresAt.Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}
