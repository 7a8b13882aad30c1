package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
)

func authRouter(t *testing.T) (*gin.Engine, *auth.TokenManager, repository.UserRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	users := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager(config.Auth{Secret: "test-secret", AccessTokenTTL: time.Hour})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(tokens, users), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).ID)
	})
	r.GET("/admin", Auth(tokens, users), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r, tokens, users
}

func doAuthed(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r, tokens, users := authRouter(t)

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "hash", Status: model.UserStatusVerified}
	require.NoError(t, users.Create(context.Background(), user))
	token, err := tokens.IssueAccess(user.ID, user.Email)
	require.NoError(t, err)

	w := doAuthed(r, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, user.ID, w.Body.String())
}

func TestAuth_MissingHeader(t *testing.T) {
	r, _, _ := authRouter(t)

	w := doAuthed(r, "/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongTokenType(t *testing.T) {
	r, tokens, users := authRouter(t)

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "hash", Status: model.UserStatusVerified}
	require.NoError(t, users.Create(context.Background(), user))
	token, err := tokens.IssueEmailVerification(user.ID, user.Email)
	require.NoError(t, err)

	w := doAuthed(r, "/me", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_DeletedUser(t *testing.T) {
	r, tokens, users := authRouter(t)

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "hash", Status: model.UserStatusVerified}
	require.NoError(t, users.Create(context.Background(), user))
	token, err := tokens.IssueAccess(user.ID, user.Email)
	require.NoError(t, err)
	require.NoError(t, users.Delete(context.Background(), user.ID))

	w := doAuthed(r, "/me", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_DisabledAccount(t *testing.T) {
	r, tokens, users := authRouter(t)

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "hash", Status: model.UserStatusDisabled}
	require.NoError(t, users.Create(context.Background(), user))
	token, err := tokens.IssueAccess(user.ID, user.Email)
	require.NoError(t, err)

	w := doAuthed(r, "/me", token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r, tokens, users := authRouter(t)
	ctx := context.Background()

	regular := &model.User{Username: "user", Email: "user@example.com", Password: "hash", Status: model.UserStatusVerified, Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, regular))
	admin := &model.User{Username: "admin", Email: "admin@example.com", Password: "hash", Status: model.UserStatusVerified, Role: model.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))

	userToken, err := tokens.IssueAccess(regular.ID, regular.Email)
	require.NoError(t, err)
	adminToken, err := tokens.IssueAccess(admin.ID, admin.Email)
	require.NoError(t, err)

	require.Equal(t, http.StatusForbidden, doAuthed(r, "/admin", userToken).Code)
	require.Equal(t, http.StatusOK, doAuthed(r, "/admin", adminToken).Code)
}
