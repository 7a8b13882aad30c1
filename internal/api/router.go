// Package api assembles the gin engine: middleware chain, route table and the
// swagger/health endpoints.
package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/buzzboard/docs"
	"github.com/d60-Lab/buzzboard/internal/api/handler"
	"github.com/d60-Lab/buzzboard/internal/api/middleware"
	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// NewRouter wires the full HTTP surface. rdb may be nil; rate limiting then
// degrades to per-process buckets.
func NewRouter(cfg *config.Config, h *handler.Handler, tokens *auth.TokenManager,
	users repository.UserRepository, rdb *redis.Client) *gin.Engine {

	gin.SetMode(cfg.Server.Mode)
	handler.RegisterValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLog(),
		otelgin.Middleware("buzzboard"),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(rdb, cfg.RateLimit),
	)
	if cfg.Observability.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := middleware.Auth(tokens, users)
	admin := middleware.RequireAdmin()

	v1 := r.Group("/api/v1")
	{
		v1.POST("/register", h.Register)
		v1.POST("/register/verify", h.VerifyEmail)
		v1.POST("/register/verify/resend", h.ResendVerification)
		v1.POST("/login", h.Login)
		v1.POST("/password_reset", h.RequestPasswordReset)
		v1.POST("/password_reset/redeem", h.ResetPassword)

		users := v1.Group("/users", authed)
		{
			users.GET("/me", h.Me)
			users.PATCH("/me", h.UpdateMe)
			users.DELETE("/me", h.DeleteMe)
			users.POST("/me/change_password", h.ChangePassword)
			users.PUT("/me/subscriptions/:category_id", h.Subscribe)
			users.DELETE("/me/subscriptions/:category_id", h.Unsubscribe)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.GET("/:category_id", h.GetCategory)
			categories.POST("", authed, admin, h.CreateCategory)
			categories.PATCH("/:category_id", authed, admin, h.UpdateCategory)
			categories.DELETE("/:category_id", authed, admin, h.DeleteCategory)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("/general_feed", h.GeneralFeed)
			posts.GET("/user_feed", authed, h.UserFeed)
			posts.GET("", authed, h.ListOwnPosts)
			posts.POST("", authed, h.CreatePost)
			posts.GET("/:post_id", h.GetPost)
			posts.DELETE("/:post_id", authed, h.DeletePost)

			posts.GET("/:post_id/comments", h.ListComments)
			posts.GET("/:post_id/comments/:comment_id", h.GetComment)
			posts.POST("/:post_id/comments", authed, h.CreateComment)
			posts.DELETE("/:post_id/comments/:comment_id", authed, h.DeleteComment)
		}

		reactions := v1.Group("/posts_comments/:target_id/reactions")
		{
			reactions.GET("", h.ListReactions)
			reactions.GET("/:reaction_id", h.GetReaction)
			reactions.POST("", authed, h.React)
			reactions.DELETE("/me", authed, h.Unreact)
		}
	}

	return r
}
