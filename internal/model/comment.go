package model

import "time"

// TombstoneMarker replaces content and user id when a comment is soft-deleted.
// The record itself is retained so reply threads keep their parents.
const TombstoneMarker = "REMOVED"

type Comment struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       string    `gorm:"type:varchar(36);index:idx_comment_user;not null" json:"user_id"`
	PostID       string    `gorm:"type:varchar(36);index:idx_comment_post;not null" json:"post_id"`
	ReplyToID    *string   `gorm:"type:varchar(36);index:idx_comment_reply" json:"reply_to_id,omitempty"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Likes        int64     `gorm:"not null;default:0" json:"likes"`
	Dislikes     int64     `gorm:"not null;default:0" json:"dislikes"`
	DateCreated  time.Time `gorm:"column:date_created;index:idx_comment_created" json:"date_created"`
	DateModified time.Time `gorm:"column:date_modified" json:"date_modified"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) IsTombstone() bool {
	return c.Content == TombstoneMarker && c.UserID == TombstoneMarker
}
