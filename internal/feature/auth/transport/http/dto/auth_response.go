package dto

import (
	"time"

	"shop_backend/internal/feature/auth/domain/entity"
)

// UserResponse is the public representation of a user. The password hash is never included.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	Data  UserResponse `json:"data"`
}

// NewAuthResponse builds the response for a freshly issued token.
func NewAuthResponse(u *entity.User, token string) AuthResponse {
	return AuthResponse{
		Token: token,
		Data: UserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		},
	}
}
