package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shop_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters in a password.
	minPasswordLength = 8

	// dummyHash is compared against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Delete removes the user and every wishlist row it owns in one transaction.
	// It returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uint) error
}

// TokenGenerator signs bearer tokens bound to a session.
type TokenGenerator interface {
	// GenerateToken returns a signed token and the instant it expires.
	GenerateToken(userID uint, email, sessionID string) (string, time.Time, error)
}

// ClientInfo describes the client a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *entity.User
	Token string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
	now      func() time.Time
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		now:      time.Now,
	}
}

// validatePassword checks that a password meets the security requirements.
func validatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// Register creates a user with a bcrypt-hashed password and signs them in.
func (u *authUsecase) Register(ctx context.Context, name, email, password string, client ClientInfo) (*AuthResult, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.issueToken(ctx, user, client)
	if err != nil {
		// Roll the user back so the email can be registered again.
		if delErr := u.users.Delete(ctx, user.ID); delErr != nil {
			slog.Error("failed to remove user after session error", "error", delErr, "user_id", user.ID)
		}
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates the user and issues a new token.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// Always compare so an unknown email takes as long as a wrong password.
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.issueToken(ctx, user, client)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Logout revokes the session behind the presented token, and only that one.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ValidateSession reports whether the session may still authenticate requests for userID.
func (u *authUsecase) ValidateSession(ctx context.Context, sessionID string, userID uint) error {
	s, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if s.UserID != userID {
		return ErrSessionNotFound
	}
	if s.IsRevoked() {
		return ErrSessionRevoked
	}
	if s.IsExpired() {
		return ErrSessionExpired
	}
	return nil
}

// DeleteAccount revokes every session of the user, then deletes the user
// together with its wishlist rows.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return err
	}
	slog.Info("user account deleted", "user_id", userID)
	return nil
}

func (u *authUsecase) issueToken(ctx context.Context, user *entity.User, client ClientInfo) (string, error) {
	sessionID := uuid.NewString()

	token, expiresAt, err := u.tokens.GenerateToken(user.ID, user.Email, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	session := &entity.Session{
		ID:        sessionID,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: u.now(),
		ExpiresAt: expiresAt,
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}
