package service

import (
	"context"
	"time"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
)

type FeedService interface {
	// General returns the public feed, optionally narrowed by category/topic.
	General(ctx context.Context, categoryID, topic string, sort model.PostSort, page, pageSize int) ([]*model.Post, error)
	// ForUser restricts candidates to the user's subscribed categories. An
	// empty subscription set means "no preference", not "no results".
	ForUser(ctx context.Context, user *model.User, sort model.PostSort, page, pageSize int) ([]*model.Post, error)
}

type feedService struct {
	feed repository.FeedRepository
}

func NewFeedService(feed repository.FeedRepository) FeedService { return &feedService{feed: feed} }

func (s *feedService) General(ctx context.Context, categoryID, topic string, sort model.PostSort, page, pageSize int) ([]*model.Post, error) {
	return s.feed.List(ctx, repository.FeedQuery{
		CategoryID: categoryID,
		Topic:      topic,
		Sort:       sort,
		Page:       page,
		PageSize:   pageSize,
		Now:        time.Now().UTC(),
	})
}

func (s *feedService) ForUser(ctx context.Context, user *model.User, sort model.PostSort, page, pageSize int) ([]*model.Post, error) {
	return s.feed.List(ctx, repository.FeedQuery{
		CategoryIn: user.Subscribed,
		Sort:       sort,
		Page:       page,
		PageSize:   pageSize,
		Now:        time.Now().UTC(),
	})
}
