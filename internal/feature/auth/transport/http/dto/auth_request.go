// Package dto defines the request and response bodies of the auth feature.
package dto

// RegisterReq is the body of POST /register.
type RegisterReq struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255,unique_email"`
	Password             string `json:"password" binding:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginReq is the body of POST /login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
