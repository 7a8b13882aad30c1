package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/internal/service"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// ListCategories pages through all categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page_number query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := pageParams(c)
	categories, err := h.categories.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategory returns one category by id.
// @Summary Get category
// @Tags categories
// @Produce json
// @Param category_id path string true "category id"
// @Success 200 {object} response.Response{data=model.Category}
// @Failure 404 {object} response.Response
// @Router /api/v1/categories/{category_id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.categories.Get(c.Request.Context(), c.Param("category_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

type categoryRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=128"`
	Description string   `json:"description"`
	Topics      []string `json:"topics" binding:"required,min=1,dive,min=1"`
}

// CreateCategory adds a category (admin only).
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body categoryRequest true "category"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.categories.Create(c.Request.Context(), middleware.CurrentUser(c), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Topics:      req.Topics,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": category.ID})
}

type categoryUpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=128"`
	Description *string  `json:"description"`
	Topics      []string `json:"topics" binding:"omitempty,dive,min=1"`
}

// UpdateCategory patches a category; topics merge by default, replace with
// ?replace_topics=true (admin only).
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category_id path string true "category id"
// @Param replace_topics query bool false "replace topic set instead of merging"
// @Param request body categoryUpdateRequest true "fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/categories/{category_id} [patch]
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	replaceTopics, _ := strconv.ParseBool(c.DefaultQuery("replace_topics", "false"))
	err := h.categories.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("category_id"), service.CategoryUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Topics:        req.Topics,
		ReplaceTopics: replaceTopics,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "updated category successfully"})
}

// DeleteCategory removes a category (admin only).
// @Summary Delete category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param category_id path string true "category id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/categories/{category_id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("category_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "removed category successfully"})
}
