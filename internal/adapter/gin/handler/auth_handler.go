package handler

import (
	"errors"
	"net/http"

	"user-account-service/internal/usecase/auth"

	apperrors "user-account-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP authentication requests
type AuthHandler struct {
	authenticator *auth.Authenticator
	log           *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authenticator *auth.Authenticator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		log:           log,
	}
}

// AuthenticateRequest represents the HTTP request body for authentication
type AuthenticateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthenticateResponse carries the signed bearer token for a session
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// Authenticate handles POST /v1/users/authenticate
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid authenticate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	signed, err := h.authenticator.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: err.Error(),
			})
			return
		}

		var statuser apperrors.HTTPStatuser
		if errors.As(err, &statuser) {
			c.JSON(statuser.HTTPStatus(), ErrorResponse{
				Error:   errorCode(statuser.HTTPStatus()),
				Message: err.Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	c.JSON(http.StatusOK, AuthenticateResponse{Token: signed})
}
