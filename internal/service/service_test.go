package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
)

// fixture wires every service against one in-memory database so tests can
// exercise cross-service flows (comment counters, reaction targets).
type fixture struct {
	db         *gorm.DB
	users      repository.UserRepository
	categories repository.CategoryRepository
	posts      repository.PostRepository
	comments   repository.CommentRepository
	reactions  repository.ReactionRepository
	feed       repository.FeedRepository

	tokens *auth.TokenManager
	mail   *stubMailer

	userSvc     UserService
	categorySvc CategoryService
	postSvc     PostService
	commentSvc  CommentService
	reactionSvc ReactionService
	feedSvc     FeedService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
	), "migrate")

	f := &fixture{
		db:         db,
		users:      repository.NewUserRepository(db),
		categories: repository.NewCategoryRepository(db),
		posts:      repository.NewPostRepository(db),
		comments:   repository.NewCommentRepository(db),
		reactions:  repository.NewReactionRepository(db),
		feed:       repository.NewFeedRepository(db),
		tokens: auth.NewTokenManager(config.Auth{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
			VerifyTokenTTL: time.Hour,
			ResetTokenTTL:  time.Hour,
		}),
		mail: &stubMailer{},
	}
	f.userSvc = NewUserService(f.users, f.categories, f.tokens, f.mail)
	f.categorySvc = NewCategoryService(f.categories)
	f.postSvc = NewPostService(f.posts, f.categories, nil)
	f.commentSvc = NewCommentService(f.comments, f.posts)
	f.reactionSvc = NewReactionService(f.reactions, f.posts, f.comments)
	f.feedSvc = NewFeedService(f.feed)
	return f
}

func (f *fixture) verifiedUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Username: email, Email: email, Password: "hash", Status: model.UserStatusVerified, Role: model.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) adminUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Username: email, Email: email, Password: "hash", Status: model.UserStatusVerified, Role: model.RoleAdmin}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) category(t *testing.T, name string, topics ...string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Topics: datatypes.NewJSONSlice(topics)}
	require.NoError(t, f.categories.Create(context.Background(), category))
	return category
}

func (f *fixture) post(t *testing.T, actor *model.User, category *model.Category, topic string) *model.Post {
	t.Helper()
	post, err := f.postSvc.Create(context.Background(), actor, PostInput{
		CategoryID:    category.ID,
		CategoryTopic: topic,
		Title:         "a post",
		Content:       "post body",
	})
	require.NoError(t, err)
	return post
}

func (f *fixture) postLikes(t *testing.T, id string) (likes, dislikes, comments int64) {
	t.Helper()
	post, err := f.posts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return post.Likes, post.Dislikes, post.Comments
}

func (f *fixture) commentLikes(t *testing.T, id string) (likes, dislikes int64) {
	t.Helper()
	comment, err := f.comments.GetByID(context.Background(), id)
	require.NoError(t, err)
	return comment.Likes, comment.Dislikes
}

// stubMailer records outgoing mail instead of talking to a relay.
type stubMailer struct {
	verifyTokens map[string]string
	resetTokens  map[string]string
	fail         error
}

func (m *stubMailer) SendVerification(_ context.Context, email, token string) error {
	if m.fail != nil {
		return m.fail
	}
	if m.verifyTokens == nil {
		m.verifyTokens = map[string]string{}
	}
	m.verifyTokens[email] = token
	return nil
}

func (m *stubMailer) SendPasswordReset(_ context.Context, email, token string) error {
	if m.fail != nil {
		return m.fail
	}
	if m.resetTokens == nil {
		m.resetTokens = map[string]string{}
	}
	m.resetTokens[email] = token
	return nil
}
