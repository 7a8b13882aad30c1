package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// GeneralFeed returns the public ranked feed.
// @Summary General post feed
// @Tags feed
// @Produce json
// @Param category_id query string false "filter by category"
// @Param category_topic query string false "filter by topic"
// @Param sort_by query string false "ranking strategy" Enums(hot, new, top) default(hot)
// @Param page_number query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/posts/general_feed [get]
func (h *Handler) GeneralFeed(c *gin.Context) {
	var q sortQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "sort_by must be one of hot, new, top")
		return
	}
	page, pageSize := pageParams(c)
	posts, err := h.feed.General(c.Request.Context(),
		c.Query("category_id"), c.Query("category_topic"), q.Sort(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// UserFeed returns the ranked feed restricted to the user's subscribed
// categories; with no subscriptions it matches the general feed.
// @Summary Personalized post feed
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param sort_by query string false "ranking strategy" Enums(hot, new, top) default(hot)
// @Param page_number query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/posts/user_feed [get]
func (h *Handler) UserFeed(c *gin.Context) {
	var q sortQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "sort_by must be one of hot, new, top")
		return
	}
	page, pageSize := pageParams(c)
	posts, err := h.feed.ForUser(c.Request.Context(), middleware.CurrentUser(c), q.Sort(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
