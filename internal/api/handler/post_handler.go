package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/internal/service"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// GetPost returns one post by id.
// @Summary Get post
// @Tags posts
// @Produce json
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// ListOwnPosts pages through the acting user's posts, newest first.
// @Summary List own posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param category_id query string false "filter by category"
// @Param category_topic query string false "filter by topic"
// @Param page_number query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/v1/posts [get]
func (h *Handler) ListOwnPosts(c *gin.Context) {
	page, pageSize := pageParams(c)
	posts, err := h.posts.ListOwn(c.Request.Context(), middleware.CurrentUser(c),
		c.Query("category_id"), c.Query("category_topic"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// CreatePost accepts a multipart form: post fields plus an optional image. The
// image lands in the media store; only its reference path is persisted.
// @Summary Create post
// @Tags posts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param category_id formData string true "category id"
// @Param category_topic formData string true "topic within the category"
// @Param title formData string true "title"
// @Param content formData string true "content"
// @Param post_image formData file false "post image"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req struct {
		CategoryID    string `form:"category_id" binding:"required"`
		CategoryTopic string `form:"category_topic" binding:"required"`
		Title         string `form:"title" binding:"required,max=255"`
		Content       string `form:"content" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.CurrentUser(c), service.PostInput{
		CategoryID:    req.CategoryID,
		CategoryTopic: req.CategoryTopic,
		Title:         req.Title,
		Content:       req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if fileHeader, err := c.FormFile("post_image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.InternalError(c, err)
			return
		}
		defer file.Close()
		if _, err := h.posts.AttachImage(c.Request.Context(), post.ID, fileHeader.Filename, file, fileHeader.Size); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Created(c, gin.H{"id": post.ID})
}

// DeletePost removes one of the acting user's posts.
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("post_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "removed post successfully"})
}
