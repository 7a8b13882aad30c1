// Package handler contains the gin handlers. Handlers bind and validate wire
// payloads, delegate to services, and translate errors exactly once.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/service"
)

type Handler struct {
	users      service.UserService
	categories service.CategoryService
	posts      service.PostService
	comments   service.CommentService
	reactions  service.ReactionService
	feed       service.FeedService
}

func New(users service.UserService, categories service.CategoryService, posts service.PostService,
	comments service.CommentService, reactions service.ReactionService, feed service.FeedService) *Handler {
	return &Handler{
		users:      users,
		categories: categories,
		posts:      posts,
		comments:   comments,
		reactions:  reactions,
		feed:       feed,
	}
}

// RegisterValidators installs custom binding rules on gin's validator engine.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("postsort", func(fl validator.FieldLevel) bool {
		switch model.PostSort(fl.Field().String()) {
		case model.SortHot, model.SortNew, model.SortTop:
			return true
		}
		return false
	})
}

// pageParams reads 1-based pagination from the query string.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page_number", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}

// sortQuery binds the ranking strategy; unknown values are a client error.
type sortQuery struct {
	SortBy string `form:"sort_by,default=hot" binding:"postsort"`
}

func (q sortQuery) Sort() model.PostSort { return model.PostSort(q.SortBy) }
