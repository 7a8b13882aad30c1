package model

import "time"

// Reaction is a user's like or dislike of a post or comment.
// 复合唯一键: one reaction per (user, target).
type Reaction struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       string    `gorm:"type:varchar(36);index:idx_reaction_user;uniqueIndex:ux_reaction_user_target;not null" json:"user_id"`
	TargetID     string    `gorm:"type:varchar(36);index:idx_reaction_target;uniqueIndex:ux_reaction_user_target;not null" json:"target_id"`
	IsLike       bool      `gorm:"not null" json:"is_like"`
	DateCreated  time.Time `gorm:"column:date_created" json:"date_created"`
	DateModified time.Time `gorm:"column:date_modified" json:"date_modified"`
}

func (Reaction) TableName() string { return "reactions" }

// TargetKind tags what a reaction target resolved to.
type TargetKind uint8

const (
	TargetPost TargetKind = iota + 1
	TargetComment
)

// TargetRef is a resolved reaction target: the id plus which table it lives in.
// Resolution happens once, at the service boundary.
type TargetRef struct {
	Kind TargetKind
	ID   string
}
