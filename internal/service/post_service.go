package service

import (
	"context"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/d60-Lab/buzzboard/internal/media"
	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
	"github.com/d60-Lab/buzzboard/pkg/logger"
)

type PostInput struct {
	CategoryID    string
	CategoryTopic string
	Title         string
	Content       string
}

type PostService interface {
	// Create gates on category existence and topic membership before any write.
	Create(ctx context.Context, actor *model.User, in PostInput) (*model.Post, error)
	// AttachImage uploads to the media store and patches the image reference.
	AttachImage(ctx context.Context, postID, fileName string, file io.Reader, size int64) (string, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	ListOwn(ctx context.Context, actor *model.User, categoryID, topic string, page, pageSize int) ([]*model.Post, error)
	Delete(ctx context.Context, actor *model.User, id string) error
}

type postService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	images     media.Store
}

func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository, images media.Store) PostService {
	return &postService{posts: posts, categories: categories, images: images}
}

func (s *postService) Create(ctx context.Context, actor *model.User, in PostInput) (*model.Post, error) {
	if !actor.IsVerified() {
		return nil, apperr.Forbidden("user account not verified")
	}
	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.HasTopic(in.CategoryTopic) {
		return nil, apperr.NotFound("category topic")
	}

	post := &model.Post{
		UserID:        actor.ID,
		CategoryID:    in.CategoryID,
		CategoryTopic: in.CategoryTopic,
		Title:         in.Title,
		Content:       in.Content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) AttachImage(ctx context.Context, postID, fileName string, file io.Reader, size int64) (string, error) {
	if s.images == nil {
		return "", apperr.InvalidInput("image uploads are not enabled")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return "", err
	}
	if ext := filepath.Ext(fileName); ext == "" {
		return "", apperr.InvalidInput("image file name has no extension")
	}
	ref, err := s.images.Upload(ctx, postID, fileName, file, size)
	if err != nil {
		return "", err
	}
	if err := s.posts.Update(ctx, postID, map[string]interface{}{"post_image_url": ref}); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *postService) ListOwn(ctx context.Context, actor *model.User, categoryID, topic string, page, pageSize int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.posts.ListByUser(ctx, actor.ID, categoryID, topic, (page-1)*pageSize, pageSize)
}

func (s *postService) Delete(ctx context.Context, actor *model.User, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.posts.DeleteOwned(ctx, id, actor.ID); err != nil {
		return err
	}
	if s.images != nil && post.PostImageURL != "" {
		// best effort; an orphaned object is not worth failing the delete
		if err := s.images.Delete(ctx, post.PostImageURL); err != nil {
			logger.Warn("remove post image", zap.String("post_id", id), zap.Error(err))
		}
	}
	return nil
}
