package main

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/buzzboard/internal/api"
	"github.com/d60-Lab/buzzboard/internal/api/handler"
	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/internal/database"
	"github.com/d60-Lab/buzzboard/internal/mailer"
	"github.com/d60-Lab/buzzboard/internal/media"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/internal/service"
	"github.com/d60-Lab/buzzboard/internal/tracing"
	"github.com/d60-Lab/buzzboard/pkg/logger"
)

// @title BuzzBoard API
// @version 1.0
// @description Forum backend: categories, posts, comments, reactions and ranked feeds.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if err := logger.Init(cfg.Observability.LogLevel, cfg.Observability.Development); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	if cfg.Observability.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Observability.SentryDSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracing, err := tracing.Setup(context.Background(), "buzzboard", cfg.Observability.OTLPEndpoint)
	if err != nil {
		logger.Fatal("tracing setup", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var imageStore media.Store
	if cfg.Minio.Endpoint != "" {
		store, err := media.NewMinioStore(cfg.Minio)
		if err != nil {
			logger.Fatal("minio store", zap.Error(err))
		}
		imageStore = store
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	feedRepo := repository.NewFeedRepository(db)

	tokens := auth.NewTokenManager(cfg.Auth)
	mail := mailer.NewSMTPMailer(cfg.SMTP)

	h := handler.New(
		service.NewUserService(userRepo, categoryRepo, tokens, mail),
		service.NewCategoryService(categoryRepo),
		service.NewPostService(postRepo, categoryRepo, imageStore),
		service.NewCommentService(commentRepo, postRepo),
		service.NewReactionService(reactionRepo, postRepo, commentRepo),
		service.NewFeedService(feedRepo),
	)

	r := api.NewRouter(cfg, h, tokens, userRepo, rdb)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
