package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// Me returns the authenticated user's details.
// @Summary Current user details
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=model.User}
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, middleware.CurrentUser(c))
}

type updateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
}

// UpdateMe changes the authenticated user's username.
// @Summary Update user details
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateUserRequest true "new username"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.users.UpdateUsername(c.Request.Context(), user.ID, req.Username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "details updated successfully"})
}

// DeleteMe hard-deletes the authenticated account.
// @Summary Delete account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [delete]
func (h *Handler) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.users.Delete(c.Request.Context(), user.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "account deleted successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword re-authenticates and replaces the password.
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body changePasswordRequest true "current and new password"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/users/me/change_password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.users.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password changed successfully"})
}

// Subscribe adds a category to the user's feed subscriptions.
// @Summary Subscribe to a category
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param category_id path string true "category id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/me/subscriptions/{category_id} [put]
func (h *Handler) Subscribe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.users.Subscribe(c.Request.Context(), user.ID, c.Param("category_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "subscribed"})
}

// Unsubscribe removes a category from the user's feed subscriptions.
// @Summary Unsubscribe from a category
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param category_id path string true "category id"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me/subscriptions/{category_id} [delete]
func (h *Handler) Unsubscribe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.users.Unsubscribe(c.Request.Context(), user.ID, c.Param("category_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "unsubscribed"})
}
