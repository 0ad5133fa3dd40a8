package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"useradmin/internal/database/repository"
	"useradmin/internal/database/service"
)

// UserHandler handles the administrative user CRUD endpoints
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// Request DTOs
type StoreUserRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" binding:"required,oneof=admin user"`
}

// UpdateUserRequest carries a partial update; absent fields are left
// untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin user"`
}

// List handles GET /api/users; soft-deleted users are included
func (h *UserHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	users, total, err := h.users.List(page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       newUserResponses(users),
		"pagination": newPagination(total, page, len(users)),
	})
}

// Store handles POST /api/users
func (h *UserHandler) Store(c *gin.Context) {
	var req StoreUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [UserHandler] Invalid store request", "error", err)
		respondValidationError(c, err)
		return
	}

	user, err := h.users.CreateOrResurrect(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newUserResponse(user),
		"message": "User created successfully",
	})
}

// Show handles GET /api/users/:id
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newUserResponse(user),
	})
}

// Update handles PUT/PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	// A request without a body is a valid empty subset: nothing to update.
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("⚠️ [UserHandler] Invalid update request", "user_id", id, "error", err)
		respondValidationError(c, err)
		return
	}

	user, err := h.users.Update(id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newUserResponse(user),
		"message": "User updated successfully",
	})
}

// Destroy handles DELETE /api/users/:id (soft delete)
func (h *UserHandler) Destroy(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.users.SoftDelete(id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

// Restore handles POST /api/users/:id/restore
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if _, err := h.users.Restore(id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User restored successfully",
	})
}

// userID parses the :id route parameter; an unparseable id behaves like a
// missing user.
func (h *UserHandler) userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service errors to HTTP responses
func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	case errors.Is(err, service.ErrEmailTaken):
		respondFieldError(c, "email", "The email has already been taken.")
	case errors.Is(err, service.ErrUserNotDeleted):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User is not deleted"})
	default:
		h.logger.Error("❌ [UserHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
