// Package response writes the JSON error bodies shared by every feature.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/platform/validation"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// DataResponse wraps a single resource or collection under "data".
type DataResponse struct {
	Data any `json:"data"`
}

const (
	msgUnauthenticated = "Unauthenticated."
	msgForbidden       = "This action is unauthorized."
	msgNotFound        = "Not found."
	msgServerError     = "Server Error"
)

// Unauthenticated aborts the request with 401.
func Unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: msgUnauthenticated})
}

// Forbidden aborts the request with 403.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: msgForbidden})
}

// NotFound aborts the request with 404.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Message: msgNotFound})
}

// ServerError aborts the request with 500. The cause is never exposed.
func ServerError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: msgServerError})
}

// BadRequest aborts the request with 400 and the given message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// Invalid aborts the request with 422 and the per-field messages of err.
func Invalid(c *gin.Context, err *validation.Error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, err.Response())
}

// BindError renders a failure returned by validation.Validator.BindJSON.
func BindError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		Invalid(c, verr)
	case errors.Is(err, validation.ErrMalformedBody):
		BadRequest(c, "Malformed JSON body.")
	default:
		ServerError(c)
	}
}
