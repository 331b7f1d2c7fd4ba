// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"shop_backend/internal/feature/auth/transport/http/dto"
	"shop_backend/internal/feature/auth/usecase"
	"shop_backend/internal/platform/http/response"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/validation"
)

const (
	msgBadCredentials = "The provided credentials are incorrect."
	msgEmailTaken     = "The email has already been taken."
)

// AuthUsecase defines the authentication operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	DeleteAccount(ctx context.Context, userID uint) error
}

// EmailChecker reports whether an email is already registered.
type EmailChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RegisterRules installs the auth rules on v:
//   - unique_email: no user has registered the email yet.
func RegisterRules(v *validation.Validator, users EmailChecker) error {
	return v.RegisterRule("unique_email", "The %s has already been taken.", func(ctx context.Context, fl validator.FieldLevel) bool {
		exists, err := users.ExistsByEmail(ctx, fl.Field().String())
		if err != nil {
			// The unique index still rejects the insert.
			slog.Error("email uniqueness check failed", "error", err)
			return true
		}
		return !exists
	})
}

// AuthHandler handles the HTTP requests of the auth feature.
type AuthHandler struct {
	auth      AuthUsecase
	validator *validation.Validator
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase, v *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: auth, validator: v}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// Register handles POST /register.
//   - 422 with per-field messages when validation fails
//   - 201 with the token and the new user on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := h.validator.BindJSON(c, &req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		response.BindError(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, clientInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register rejected: email taken", "remote_addr", c.ClientIP())
			response.Invalid(c, validation.NewError("email", msgEmailTaken))
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			response.ServerError(c)
		}
		return
	}

	slog.Info("user registered", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewAuthResponse(res.User, res.Token))
}

// Login handles POST /login.
// Wrong credentials are reported as a validation error on the email field.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := h.validator.BindJSON(c, &req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		response.BindError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// Do not reveal whether the email exists.
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			response.Invalid(c, validation.NewError("email", msgBadCredentials))
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		response.ServerError(c)
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewAuthResponse(res.User, res.Token))
}

// Logout handles POST /logout. Only the presented token is revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid, ok := jwtmw.SessionID(c)
	if !ok {
		response.Unauthenticated(c)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			response.Unauthenticated(c)
			return
		}
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		response.ServerError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAccount handles DELETE /user.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		response.Unauthenticated(c)
		return
	}

	if err := h.auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.Unauthenticated(c)
			return
		}
		slog.Error("account deletion failed", "error", err, "user_id", userID)
		response.ServerError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
