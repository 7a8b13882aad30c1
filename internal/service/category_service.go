package service

import (
	"context"
	"sort"

	"gorm.io/datatypes"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

type CategoryInput struct {
	Name        string
	Description string
	Topics      []string
}

type CategoryUpdate struct {
	Name        *string
	Description *string
	Topics      []string
	// ReplaceTopics swaps the topic set wholesale; the default merges (union)
	// with the existing topics.
	ReplaceTopics bool
}

type CategoryService interface {
	Create(ctx context.Context, actor *model.User, in CategoryInput) (*model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Category, error)
	Update(ctx context.Context, actor *model.User, id string, in CategoryUpdate) error
	Delete(ctx context.Context, actor *model.User, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, actor *model.User, in CategoryInput) (*model.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("admin role required")
	}
	category := &model.Category{
		Name:        in.Name,
		Description: in.Description,
		Topics:      datatypes.NewJSONSlice(in.Topics),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context, page, pageSize int) ([]*model.Category, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.categories.List(ctx, (page-1)*pageSize, pageSize)
}

func (s *categoryService) Update(ctx context.Context, actor *model.User, id string, in CategoryUpdate) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("admin role required")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch := map[string]interface{}{}
	if in.Name != nil {
		patch["name"] = *in.Name
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if in.Topics != nil {
		topics := in.Topics
		if !in.ReplaceTopics {
			topics = mergeTopics(category.Topics, in.Topics)
		}
		patch["topics"] = datatypes.NewJSONSlice(topics)
	}
	if len(patch) == 0 {
		return nil
	}
	return s.categories.Update(ctx, id, patch)
}

func (s *categoryService) Delete(ctx context.Context, actor *model.User, id string) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("admin role required")
	}
	return s.categories.Delete(ctx, id)
}

// mergeTopics unions both sets, sorted so the stored order is stable.
func mergeTopics(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, t := range existing {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	for _, t := range incoming {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	sort.Strings(merged)
	return merged
}
