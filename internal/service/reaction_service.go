package service

import (
	"context"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

// ReactionService keeps the denormalized like/dislike counters on posts and
// comments equal to the live reaction set. Counter writes are single-statement
// atomic increments; the counters are never recomputed from a full scan.
type ReactionService interface {
	// React is an upsert: a first reaction is created, a repeated reaction
	// with the same value is a no-op, and a flipped value moves one count
	// from the old counter to the new one.
	React(ctx context.Context, actor *model.User, targetID string, isLike bool) (*model.Reaction, error)
	// Unreact removes the actor's reaction and decrements the matching counter.
	Unreact(ctx context.Context, actor *model.User, targetID string) error
	Get(ctx context.Context, targetID, id string) (*model.Reaction, error)
	List(ctx context.Context, targetID string, isLike *bool, page, pageSize int) ([]*model.Reaction, error)
}

type reactionService struct {
	reactions repository.ReactionRepository
	posts     repository.PostRepository
	comments  repository.CommentRepository
}

func NewReactionService(reactions repository.ReactionRepository, posts repository.PostRepository, comments repository.CommentRepository) ReactionService {
	return &reactionService{reactions: reactions, posts: posts, comments: comments}
}

// resolveTarget probes posts then comments and tags the result. A target id
// matching neither is a client error, not a storage error.
func (s *reactionService) resolveTarget(ctx context.Context, targetID string) (model.TargetRef, error) {
	post, err := s.posts.FindByID(ctx, targetID)
	if err != nil {
		return model.TargetRef{}, err
	}
	if post != nil {
		return model.TargetRef{Kind: model.TargetPost, ID: post.ID}, nil
	}
	comment, err := s.comments.FindByID(ctx, targetID)
	if err != nil {
		return model.TargetRef{}, err
	}
	if comment != nil {
		return model.TargetRef{Kind: model.TargetComment, ID: comment.ID}, nil
	}
	return model.TargetRef{}, apperr.InvalidInput("reaction target not found")
}

func (s *reactionService) addCounter(ctx context.Context, target model.TargetRef, isLike bool, delta int64) error {
	column := "dislikes"
	if isLike {
		column = "likes"
	}
	if target.Kind == model.TargetPost {
		return s.posts.AddCounter(ctx, target.ID, column, delta)
	}
	return s.comments.AddCounter(ctx, target.ID, column, delta)
}

func (s *reactionService) React(ctx context.Context, actor *model.User, targetID string, isLike bool) (*model.Reaction, error) {
	target, err := s.resolveTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reactions.FindByUserTarget(ctx, actor.ID, targetID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		reaction := &model.Reaction{UserID: actor.ID, TargetID: targetID, IsLike: isLike}
		if err := s.reactions.Create(ctx, reaction); err != nil {
			return nil, err
		}
		if err := s.addCounter(ctx, target, isLike, 1); err != nil {
			return nil, err
		}
		return reaction, nil
	}

	if existing.IsLike == isLike {
		// repeated identical reaction leaves the counters alone
		return existing, nil
	}

	if err := s.reactions.Update(ctx, existing.ID, map[string]interface{}{"is_like": isLike}); err != nil {
		return nil, err
	}
	if err := s.addCounter(ctx, target, existing.IsLike, -1); err != nil {
		return nil, err
	}
	if err := s.addCounter(ctx, target, isLike, 1); err != nil {
		return nil, err
	}
	existing.IsLike = isLike
	return existing, nil
}

func (s *reactionService) Unreact(ctx context.Context, actor *model.User, targetID string) error {
	target, err := s.resolveTarget(ctx, targetID)
	if err != nil {
		return err
	}
	existing, err := s.reactions.FindByUserTarget(ctx, actor.ID, targetID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("reaction")
	}
	if err := s.reactions.DeleteByUserTarget(ctx, actor.ID, targetID); err != nil {
		return err
	}
	return s.addCounter(ctx, target, existing.IsLike, -1)
}

func (s *reactionService) Get(ctx context.Context, targetID, id string) (*model.Reaction, error) {
	return s.reactions.GetByID(ctx, id, targetID)
}

func (s *reactionService) List(ctx context.Context, targetID string, isLike *bool, page, pageSize int) ([]*model.Reaction, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.reactions.ListByTarget(ctx, targetID, isLike, (page-1)*pageSize, pageSize)
}
