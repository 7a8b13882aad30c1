package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/buzzboard/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// seedPost writes directly so tests control ids, counters and timestamps.
func seedPost(t *testing.T, db *gorm.DB, p model.Post) model.Post {
	t.Helper()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.UserID == "" {
		p.UserID = "u1"
	}
	if p.CategoryID == "" {
		p.CategoryID = "c1"
	}
	if p.CategoryTopic == "" {
		p.CategoryTopic = "general"
	}
	if p.Title == "" {
		p.Title = "title"
	}
	if p.Content == "" {
		p.Content = "content"
	}
	if p.DateCreated.IsZero() {
		p.DateCreated = time.Now().UTC()
	}
	if p.DateModified.IsZero() {
		p.DateModified = p.DateCreated
	}
	require.NoError(t, db.Create(&p).Error, "seed post")
	return p
}

func seedComment(t *testing.T, db *gorm.DB, c model.Comment) model.Comment {
	t.Helper()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.UserID == "" {
		c.UserID = "u1"
	}
	if c.Content == "" {
		c.Content = "a comment"
	}
	if c.DateCreated.IsZero() {
		c.DateCreated = time.Now().UTC()
	}
	if c.DateModified.IsZero() {
		c.DateModified = c.DateCreated
	}
	require.NoError(t, db.Create(&c).Error, "seed comment")
	return c
}
