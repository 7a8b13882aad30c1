package service

import (
	"context"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

type CommentInput struct {
	PostID    string
	ReplyToID *string
	Content   string
}

type CommentService interface {
	// Create verifies the parent post first, then bumps post.comments.
	Create(ctx context.Context, actor *model.User, in CommentInput) (*model.Comment, error)
	Get(ctx context.Context, postID, id string) (*model.Comment, error)
	List(ctx context.Context, postID string, replyToID *string, page, pageSize int) ([]*model.Comment, error)
	// Delete tombstones the comment; the record stays so replies keep their
	// parent, and post.comments is left as a record count.
	Delete(ctx context.Context, actor *model.User, postID, id string) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) Create(ctx context.Context, actor *model.User, in CommentInput) (*model.Comment, error) {
	if !actor.IsVerified() {
		return nil, apperr.Forbidden("user account not verified")
	}
	if _, err := s.posts.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		UserID:    actor.ID,
		PostID:    in.PostID,
		ReplyToID: in.ReplyToID,
		Content:   in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.posts.AddCounter(ctx, in.PostID, "comments", 1); err != nil {
		// comment exists but the counter write failed; surfaced, not rolled back
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, postID, id string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, apperr.NotFound("comment")
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, postID string, replyToID *string, page, pageSize int) ([]*model.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.comments.ListByPost(ctx, postID, replyToID, (page-1)*pageSize, pageSize)
}

func (s *commentService) Delete(ctx context.Context, actor *model.User, postID, id string) error {
	return s.comments.Tombstone(ctx, id, postID, actor.ID)
}
