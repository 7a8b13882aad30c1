package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

func TestPostCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.verifiedUser(t, "author@example.com")
	category := f.category(t, "programming", "go", "rust")

	post, err := f.postSvc.Create(ctx, author, PostInput{
		CategoryID:    category.ID,
		CategoryTopic: "go",
		Title:         "generics in practice",
		Content:       "body",
	})
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)
	require.EqualValues(t, 0, post.Likes)
	require.EqualValues(t, 0, post.Comments)
}

func TestPostCreate_UnverifiedForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.category(t, "programming", "go")

	unverified := &model.User{Username: "new", Email: "new@example.com", Password: "hash", Status: model.UserStatusUnverified}
	require.NoError(t, f.users.Create(ctx, unverified))

	_, err := f.postSvc.Create(ctx, unverified, PostInput{CategoryID: category.ID, CategoryTopic: "go", Title: "t", Content: "c"})
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestPostCreate_UnknownTopicCreatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.verifiedUser(t, "author@example.com")
	category := f.category(t, "programming", "go")

	_, err := f.postSvc.Create(ctx, author, PostInput{
		CategoryID:    category.ID,
		CategoryTopic: "cooking",
		Title:         "t",
		Content:       "c",
	})
	require.True(t, apperr.IsNotFound(err))

	posts, err := f.postSvc.ListOwn(ctx, author, "", "", 1, 10)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPostCreate_MissingCategory(t *testing.T) {
	f := newFixture(t)
	author := f.verifiedUser(t, "author@example.com")

	_, err := f.postSvc.Create(context.Background(), author, PostInput{
		CategoryID:    "missing",
		CategoryTopic: "go",
		Title:         "t",
		Content:       "c",
	})
	require.True(t, apperr.IsNotFound(err))
}

func TestPostDelete_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.verifiedUser(t, "author@example.com")
	other := f.verifiedUser(t, "other@example.com")
	category := f.category(t, "programming", "go")
	post := f.post(t, author, category, "go")

	err := f.postSvc.Delete(ctx, other, post.ID)
	require.True(t, apperr.IsNotFound(err))

	require.NoError(t, f.postSvc.Delete(ctx, author, post.ID))
	_, err = f.postSvc.Get(ctx, post.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestPostAttachImage_Disabled(t *testing.T) {
	f := newFixture(t)
	author := f.verifiedUser(t, "author@example.com")
	category := f.category(t, "programming", "go")
	post := f.post(t, author, category, "go")

	_, err := f.postSvc.AttachImage(context.Background(), post.ID, "pic.png", nil, 0)
	require.True(t, apperr.IsInvalidInput(err), "nil media store must refuse uploads")
}
