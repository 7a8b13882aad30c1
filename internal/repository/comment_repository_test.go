package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

func TestCommentListByPost_TopLevelAndReplies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := seedPost(t, db, model.Post{})
	parent := seedComment(t, db, model.Comment{PostID: post.ID})
	seedComment(t, db, model.Comment{PostID: post.ID})
	seedComment(t, db, model.Comment{PostID: post.ID, ReplyToID: &parent.ID})

	topLevel, err := repo.ListByPost(ctx, post.ID, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, topLevel, 2)

	replies, err := repo.ListByPost(ctx, post.ID, &parent.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	require.Equal(t, parent.ID, *replies[0].ReplyToID)
}

func TestCommentTombstone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := seedPost(t, db, model.Post{})
	comment := seedComment(t, db, model.Comment{PostID: post.ID, UserID: "author", Content: "hot take"})

	// only the author on the right post may tombstone
	require.True(t, apperr.IsNotFound(repo.Tombstone(ctx, comment.ID, post.ID, "someone-else")))
	require.True(t, apperr.IsNotFound(repo.Tombstone(ctx, comment.ID, "wrong-post", "author")))

	require.NoError(t, repo.Tombstone(ctx, comment.ID, post.ID, "author"))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.True(t, got.IsTombstone())
	require.Equal(t, model.TombstoneMarker, got.Content)
	require.Equal(t, model.TombstoneMarker, got.UserID)
	// the record survives so replies keep a parent
	require.Equal(t, post.ID, got.PostID)
}

func TestCommentUpdate_ImmutableOwnerRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := seedComment(t, db, model.Comment{PostID: "p1", UserID: "author"})

	err := repo.Update(ctx, comment.ID, map[string]interface{}{"user_id": "hijacker"})
	require.True(t, apperr.IsInvalidField(err))

	err = repo.Update(ctx, comment.ID, map[string]interface{}{"post_id": "other"})
	require.True(t, apperr.IsInvalidField(err))
}

func TestCommentAddCounter_ClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := seedComment(t, db, model.Comment{PostID: "p1"})

	require.NoError(t, repo.AddCounter(ctx, comment.ID, "likes", 1))
	require.NoError(t, repo.AddCounter(ctx, comment.ID, "likes", -1))
	require.NoError(t, repo.AddCounter(ctx, comment.ID, "likes", -1))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.Likes)
}
