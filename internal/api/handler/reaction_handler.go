package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// ListReactions pages through reactions on a post or comment.
// @Summary List reactions on a target
// @Tags reactions
// @Produce json
// @Param target_id path string true "post or comment id"
// @Param is_like query bool false "filter by like/dislike"
// @Param page_number query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=[]model.Reaction}
// @Router /api/v1/posts_comments/{target_id}/reactions [get]
func (h *Handler) ListReactions(c *gin.Context) {
	page, pageSize := pageParams(c)
	var isLike *bool
	if v, ok := c.GetQuery("is_like"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "is_like must be a boolean")
			return
		}
		isLike = &parsed
	}
	reactions, err := h.reactions.List(c.Request.Context(), c.Param("target_id"), isLike, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reactions)
}

// GetReaction returns one reaction by id.
// @Summary Get reaction
// @Tags reactions
// @Produce json
// @Param target_id path string true "post or comment id"
// @Param reaction_id path string true "reaction id"
// @Success 200 {object} response.Response{data=model.Reaction}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts_comments/{target_id}/reactions/{reaction_id} [get]
func (h *Handler) GetReaction(c *gin.Context) {
	reaction, err := h.reactions.Get(c.Request.Context(), c.Param("target_id"), c.Param("reaction_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reaction)
}

type reactRequest struct {
	IsLike *bool `json:"is_like" binding:"required"`
}

// React adds or replaces the acting user's reaction to a post or comment.
// @Summary React to a post or comment
// @Tags reactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param target_id path string true "post or comment id"
// @Param request body reactRequest true "reaction value"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts_comments/{target_id}/reactions [post]
func (h *Handler) React(c *gin.Context) {
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	reaction, err := h.reactions.React(c.Request.Context(), middleware.CurrentUser(c),
		c.Param("target_id"), *req.IsLike)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": reaction.ID})
}

// Unreact removes the acting user's reaction from a target.
// @Summary Remove own reaction
// @Tags reactions
// @Produce json
// @Security BearerAuth
// @Param target_id path string true "post or comment id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts_comments/{target_id}/reactions/me [delete]
func (h *Handler) Unreact(c *gin.Context) {
	if err := h.reactions.Unreact(c.Request.Context(), middleware.CurrentUser(c), c.Param("target_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "removed reaction successfully"})
}
