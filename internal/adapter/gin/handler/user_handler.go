package handler

import (
	"errors"
	"net/http"

	"user-account-service/internal/usecase/user"

	apperrors "user-account-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user directory operations
type UserHandler struct {
	directory user.Directory
	log       *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(directory user.Directory, log *zap.Logger) *UserHandler {
	return &UserHandler{
		directory: directory,
		log:       log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for replacing a user
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// UserResponse represents the HTTP response for user data.
// The password hash is intentionally never serialized.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.directory.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{ID: resp.ID, Email: resp.Email})
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.directory.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{ID: u.ID, Email: u.Email}
	}
	c.JSON(http.StatusOK, ListUsersResponse{Users: users})
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	resp, err := h.directory.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{ID: resp.ID, Email: resp.Email})
}

// UpdateUser handles PUT /v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	_, err := h.directory.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:       c.Param("id"),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser handles DELETE /v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.directory.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleError maps usecase errors onto HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	h.log.Warn("request failed", zap.Error(err))

	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status := statuser.HTTPStatus()
		c.JSON(status, ErrorResponse{
			Error:   errorCode(status),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// errorCode returns the machine-readable error kind for a status code
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "duplicate_email"
	case http.StatusServiceUnavailable:
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
