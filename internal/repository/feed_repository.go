package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/buzzboard/internal/model"
)

// FeedQuery is one ranking request. Now is evaluated once by the caller so the
// hot score is consistent across every candidate in the request.
type FeedQuery struct {
	CategoryID string
	Topic      string
	// CategoryIn restricts candidates to the given category ids (personalized
	// feed). Empty means no restriction.
	CategoryIn []string
	Sort       model.PostSort
	Page       int
	PageSize   int
	Now        time.Time
}

func (q *FeedQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}
}

type FeedRepository interface {
	List(ctx context.Context, q FeedQuery) ([]*model.Post, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository { return &feedRepository{db: db} }

// List executes the ranking-specific query plan. Ties are broken by
// date_created DESC then id DESC so pages are stable across requests.
func (r *feedRepository) List(ctx context.Context, q FeedQuery) ([]*model.Post, error) {
	q.normalize()
	offset := (q.Page - 1) * q.PageSize

	tx := r.db.WithContext(ctx).Model(&model.Post{})
	if len(q.CategoryIn) > 0 {
		tx = tx.Where("category_id IN ?", q.CategoryIn)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.Topic != "" {
		tx = tx.Where("category_topic = ?", q.Topic)
	}

	switch q.Sort {
	case model.SortNew:
		tx = tx.Order("date_created DESC, id DESC")
	case model.SortTop:
		tx = tx.Order("(likes - dislikes) DESC, date_created DESC, id DESC")
	default: // hot
		tx = tx.Clauses(clause.OrderBy{Expression: r.hotOrder(q.Now)})
	}

	var posts []*model.Post
	err := tx.Offset(offset).Limit(q.PageSize).Find(&posts).Error
	return posts, err
}

// hotOrder ranks by net likes decayed by age in seconds. Elapsed time is
// floored at one second so brand-new posts do not divide by zero.
func (r *feedRepository) hotOrder(now time.Time) clause.Expression {
	if r.db.Dialector.Name() == "postgres" {
		return gorm.Expr(
			"((likes - dislikes)::numeric / GREATEST(EXTRACT(EPOCH FROM (?::timestamptz - date_created)), 1)) DESC, date_created DESC, id DESC",
			now,
		)
	}
	// sqlite: julianday returns fractional days
	return gorm.Expr(
		"((likes - dislikes) * 1.0 / MAX((julianday(?) - julianday(date_created)) * 86400.0, 1.0)) DESC, date_created DESC, id DESC",
		now,
	)
}
