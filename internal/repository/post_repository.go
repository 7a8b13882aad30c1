package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

var postImmutable = map[string]struct{}{
	"id":          {},
	"user_id":     {},
	"category_id": {},
}

var postCounterColumns = map[string]struct{}{
	"likes":    {},
	"dislikes": {},
	"comments": {},
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// FindByID returns (nil, nil) when no post matches; used for target probing.
	FindByID(ctx context.Context, id string) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	ListByUser(ctx context.Context, userID, categoryID, topic string, offset, limit int) ([]*model.Post, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	// DeleteOwned removes a post only when userID owns it.
	DeleteOwned(ctx context.Context, id, userID string) error
	// AddCounter atomically shifts a derived counter (likes/dislikes/comments)
	// in a single statement, clamped at zero, and stamps date_modified.
	AddCounter(ctx context.Context, id, column string, delta int64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	post.DateCreated = now
	post.DateModified = now
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post")
	}
	return post, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID, categoryID, topic string, offset, limit int) ([]*model.Post, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if topic != "" {
		q = q.Where("category_topic = ?", topic)
	}
	var posts []*model.Post
	err := q.Order("date_created DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	prepared, err := preparePatch("post", postImmutable, patch)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(prepared)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post")
	}
	return nil
}

func (r *postRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post")
	}
	return nil
}

func (r *postRepository) AddCounter(ctx context.Context, id, column string, delta int64) error {
	if _, ok := postCounterColumns[column]; !ok {
		return fmt.Errorf("post counter %q not allowed", column)
	}
	res := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		column:          counterExpr(column, delta),
		"date_modified": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post")
	}
	return nil
}
