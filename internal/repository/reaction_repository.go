package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

var reactionImmutable = map[string]struct{}{
	"id":        {},
	"user_id":   {},
	"target_id": {},
}

type ReactionRepository interface {
	// Create fails with Conflict when a reaction for (user, target) already
	// exists; callers wanting upsert semantics use FindByUserTarget + Update.
	Create(ctx context.Context, reaction *model.Reaction) error
	// FindByUserTarget returns (nil, nil) when the pair has no reaction.
	FindByUserTarget(ctx context.Context, userID, targetID string) (*model.Reaction, error)
	GetByID(ctx context.Context, id, targetID string) (*model.Reaction, error)
	ListByTarget(ctx context.Context, targetID string, isLike *bool, offset, limit int) ([]*model.Reaction, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteByUserTarget(ctx context.Context, userID, targetID string) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository { return &reactionRepository{db: db} }

func (r *reactionRepository) Create(ctx context.Context, reaction *model.Reaction) error {
	if reaction.ID == "" {
		reaction.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	reaction.DateCreated = now
	reaction.DateModified = now
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("reaction", "reaction already exists for this target")
		}
		return err
	}
	return nil
}

func (r *reactionRepository) FindByUserTarget(ctx context.Context, userID, targetID string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) GetByID(ctx context.Context, id, targetID string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND target_id = ?", id, targetID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("reaction")
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByTarget(ctx context.Context, targetID string, isLike *bool, offset, limit int) ([]*model.Reaction, error) {
	q := r.db.WithContext(ctx).Where("target_id = ?", targetID)
	if isLike != nil {
		q = q.Where("is_like = ?", *isLike)
	}
	var reactions []*model.Reaction
	err := q.Order("date_created DESC, id DESC").Offset(offset).Limit(limit).Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	prepared, err := preparePatch("reaction", reactionImmutable, patch)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.Reaction{}).Where("id = ?", id).Updates(prepared)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("reaction")
	}
	return nil
}

func (r *reactionRepository) DeleteByUserTarget(ctx context.Context, userID, targetID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Delete(&model.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("reaction")
	}
	return nil
}
