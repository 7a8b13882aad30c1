package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/internal/service"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// ListComments pages through a post's comments, newest first. Without a
// reply_to_id filter only top-level comments are returned.
// @Summary List comments on a post
// @Tags comments
// @Produce json
// @Param post_id path string true "post id"
// @Param reply_to_id query string false "list replies to this comment"
// @Param page_number query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=[]model.Comment}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	page, pageSize := pageParams(c)
	var replyToID *string
	if v, ok := c.GetQuery("reply_to_id"); ok {
		replyToID = &v
	}
	comments, err := h.comments.List(c.Request.Context(), c.Param("post_id"), replyToID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// GetComment returns one comment by id.
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param post_id path string true "post id"
// @Param comment_id path string true "comment id"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments/{comment_id} [get]
func (h *Handler) GetComment(c *gin.Context) {
	comment, err := h.comments.Get(c.Request.Context(), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

type commentRequest struct {
	ReplyToID *string `json:"reply_to_id"`
	Content   string  `json:"content" binding:"required"`
}

// CreateComment adds a comment (or threaded reply) to a post.
// @Summary Create comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id path string true "post id"
// @Param request body commentRequest true "comment"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), middleware.CurrentUser(c), service.CommentInput{
		PostID:    c.Param("post_id"),
		ReplyToID: req.ReplyToID,
		Content:   req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": comment.ID})
}

// DeleteComment tombstones one of the acting user's comments.
// @Summary Delete own comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param post_id path string true "post id"
// @Param comment_id path string true "comment id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	err := h.comments.Delete(c.Request.Context(), middleware.CurrentUser(c),
		c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "removed comment successfully"})
}
