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

var commentImmutable = map[string]struct{}{
	"id":      {},
	"user_id": {},
	"post_id": {},
}

var commentCounterColumns = map[string]struct{}{
	"likes":    {},
	"dislikes": {},
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// FindByID returns (nil, nil) when no comment matches; used for target probing.
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByPost filters by reply_to_id when replyToID is non-nil; a nil
	// replyToID lists top-level comments only.
	ListByPost(ctx context.Context, postID string, replyToID *string, offset, limit int) ([]*model.Comment, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	// Tombstone soft-deletes: content and user_id are overwritten with the
	// removal marker and the record is retained for reply threads.
	Tombstone(ctx context.Context, id, postID, userID string) error
	AddCounter(ctx context.Context, id, column string, delta int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	comment.DateCreated = now
	comment.DateModified = now
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFound("comment")
	}
	return comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, replyToID *string, offset, limit int) ([]*model.Comment, error) {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if replyToID != nil {
		q = q.Where("reply_to_id = ?", *replyToID)
	} else {
		q = q.Where("reply_to_id IS NULL")
	}
	var comments []*model.Comment
	err := q.Order("date_created DESC, id DESC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	prepared, err := preparePatch("comment", commentImmutable, patch)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Updates(prepared)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

func (r *commentRepository) Tombstone(ctx context.Context, id, postID, userID string) error {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND post_id = ? AND user_id = ?", id, postID, userID).
		Updates(map[string]interface{}{
			"content":       model.TombstoneMarker,
			"user_id":       model.TombstoneMarker,
			"date_modified": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

func (r *commentRepository) AddCounter(ctx context.Context, id, column string, delta int64) error {
	if _, ok := commentCounterColumns[column]; !ok {
		return fmt.Errorf("comment counter %q not allowed", column)
	}
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Updates(map[string]interface{}{
		column:          counterExpr(column, delta),
		"date_modified": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}
