package model

import "time"

type PostSort string

const (
	SortHot PostSort = "hot"
	SortNew PostSort = "new"
	SortTop PostSort = "top"
)

// Post content body. Likes/Dislikes/Comments are derived counters owned by the
// reaction and comment services; clients never set them.
type Post struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string    `gorm:"type:varchar(36);index:idx_post_user;not null" json:"user_id"`
	CategoryID    string    `gorm:"type:varchar(36);index:idx_post_category;not null" json:"category_id"`
	CategoryTopic string    `gorm:"type:varchar(128);index:idx_post_topic;not null" json:"category_topic"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	PostImageURL  string    `gorm:"type:varchar(255)" json:"post_image_url,omitempty"`
	Likes         int64     `gorm:"not null;default:0" json:"likes"`
	Dislikes      int64     `gorm:"not null;default:0" json:"dislikes"`
	Comments      int64     `gorm:"not null;default:0" json:"comments"`
	DateCreated   time.Time `gorm:"column:date_created;index:idx_post_created" json:"date_created"`
	DateModified  time.Time `gorm:"column:date_modified" json:"date_modified"`
}

func (Post) TableName() string { return "posts" }
