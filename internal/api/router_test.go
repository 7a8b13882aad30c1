package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/buzzboard/internal/api/handler"
	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/internal/service"
)

type capturedMail struct {
	verifyTokens map[string]string
	resetTokens  map[string]string
}

func (m *capturedMail) SendVerification(_ context.Context, email, token string) error {
	m.verifyTokens[email] = token
	return nil
}

func (m *capturedMail) SendPasswordReset(_ context.Context, email, token string) error {
	m.resetTokens[email] = token
	return nil
}

type apiServer struct {
	engine *gin.Engine
	mail   *capturedMail
	users  repository.UserRepository
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Post{}, &model.Comment{}, &model.Reaction{},
	))

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	feedRepo := repository.NewFeedRepository(db)

	tokens := auth.NewTokenManager(config.Auth{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
		VerifyTokenTTL: time.Hour,
		ResetTokenTTL:  time.Hour,
	})
	mail := &capturedMail{verifyTokens: map[string]string{}, resetTokens: map[string]string{}}

	h := handler.New(
		service.NewUserService(userRepo, categoryRepo, tokens, mail),
		service.NewCategoryService(categoryRepo),
		service.NewPostService(postRepo, categoryRepo, nil),
		service.NewCommentService(commentRepo, postRepo),
		service.NewReactionService(reactionRepo, postRepo, commentRepo),
		service.NewFeedService(feedRepo),
	)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	engine := NewRouter(cfg, h, tokens, userRepo, nil)
	return &apiServer{engine: engine, mail: mail, users: userRepo}
}

func (s *apiServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	// identity encoding keeps response bodies readable past the gzip middleware
	req.Header.Set("Accept-Encoding", "identity")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// doForm posts a multipart form, matching how post creation is wired.
func (s *apiServer) doForm(t *testing.T, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept-Encoding", "identity")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

// signUp registers, verifies and logs a user in, returning the bearer token.
func (s *apiServer) signUp(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/register", "", gin.H{
		"username": "user-" + email,
		"email":    email,
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/register/verify", "", gin.H{
		"verification_token": s.mail.verifyTokens[email],
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/login", "", gin.H{
		"email":    email,
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeData(t, w)["access_token"].(string)
}

func (s *apiServer) promote(t *testing.T, email string) {
	t.Helper()
	user, err := s.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NoError(t, s.users.Update(context.Background(), user.ID, map[string]interface{}{
		"role": model.RoleAdmin,
	}))
}

func TestHealth(t *testing.T) {
	s := newAPIServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFullPostingFlow(t *testing.T) {
	s := newAPIServer(t)

	adminToken := s.signUp(t, "admin@example.com")
	s.promote(t, "admin@example.com")
	readerToken := s.signUp(t, "reader@example.com")

	// category creation is admin-only
	w := s.do(t, http.MethodPost, "/api/v1/categories", readerToken, gin.H{
		"name": "programming", "topics": []string{"go"},
	})
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/categories", adminToken, gin.H{
		"name": "programming", "topics": []string{"go"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID := decodeData(t, w)["id"].(string)

	w = s.doForm(t, "/api/v1/posts", adminToken, map[string]string{
		"category_id":    categoryID,
		"category_topic": "go",
		"title":          "generics in practice",
		"content":        "long body",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postID := decodeData(t, w)["id"].(string)

	// anonymous read
	w = s.do(t, http.MethodGet, "/api/v1/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// react and check the denormalized counter through the public view
	w = s.do(t, http.MethodPost, "/api/v1/posts_comments/"+postID+"/reactions", readerToken, gin.H{
		"is_like": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, decodeData(t, w)["likes"])

	// comment bumps the comment counter
	w = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/comments", readerToken, gin.H{
		"content": "great read",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/posts/"+postID, "", nil)
	require.EqualValues(t, 1, decodeData(t, w)["comments"])

	// the post shows up in the general feed
	w = s.do(t, http.MethodGet, "/api/v1/posts/general_feed?sort_by=hot", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	s := newAPIServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/register", "", gin.H{
		"username": "x", "email": "not-an-email", "password": "sup3rsecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newAPIServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/posts/user_feed", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGeneralFeedRejectsUnknownSort(t *testing.T) {
	s := newAPIServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/posts/general_feed?sort_by=bogus", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
