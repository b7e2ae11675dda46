package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adventurestreak/territory-backend-go/internal/middleware"
	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/repository"
	"github.com/adventurestreak/territory-backend-go/internal/service"
	"github.com/adventurestreak/territory-backend-go/pkg/response"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	users         *repository.UserRepository
	notifications *repository.NotificationRepository
	territories   *service.TerritoryService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *repository.UserRepository, notifications *repository.NotificationRepository, territories *service.TerritoryService) *UserHandler {
	return &UserHandler{users: users, notifications: notifications, territories: territories}
}

// Get handles GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get user", err)
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	owned, err := h.territories.OwnedCount(user.ID)
	if err != nil {
		response.InternalError(c, "Failed to count territories", err)
		return
	}
	response.Success(c, gin.H{"user": user, "owned_cells": owned})
}

// Upsert handles PUT /api/v1/users/:id
func (h *UserHandler) Upsert(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		response.BadRequest(c, "Invalid user payload", err)
		return
	}
	user.ID = c.Param("id")

	if auth := middleware.AuthUser(c); auth != "" && auth != user.ID {
		response.Error(c, http.StatusForbidden, "Token subject does not match user id", nil)
		return
	}
	if user.Level < 1 {
		user.Level = 1
	}

	if err := h.users.Upsert(&user); err != nil {
		response.InternalError(c, "Failed to save user", err)
		return
	}
	response.Success(c, user)
}

// Notifications handles GET /api/v1/users/:id/notifications
func (h *UserHandler) Notifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notifications, err := h.notifications.ListForUser(c.Param("id"), limit)
	if err != nil {
		response.InternalError(c, "Failed to get notifications", err)
		return
	}
	response.Success(c, gin.H{"data": notifications, "count": len(notifications)})
}
