package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserStatus string

const (
	UserStatusUnverified UserStatus = "unverified"
	UserStatusVerified   UserStatus = "verified"
	UserStatusDisabled   UserStatus = "disabled"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// User account. Password holds the bcrypt hash, never the raw secret.
type User struct {
	ID           string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string                      `gorm:"type:varchar(64);not null" json:"username"`
	Email        string                      `gorm:"type:varchar(255);uniqueIndex:ux_user_email;not null" json:"email"`
	Password     string                      `gorm:"type:varchar(128);not null" json:"-"`
	Status       UserStatus                  `gorm:"type:varchar(16);not null;default:unverified" json:"status"`
	Role         UserRole                    `gorm:"type:varchar(16);not null;default:user" json:"role"`
	Subscribed   datatypes.JSONSlice[string] `json:"subscribed"`
	DateCreated  time.Time                   `gorm:"column:date_created;index:idx_user_created" json:"date_created"`
	DateModified time.Time                   `gorm:"column:date_modified" json:"date_modified"`
}

func (User) TableName() string { return "users" }

// IsAdmin covers both admin tiers; there is no finer hierarchy.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin || u.Role == RoleSuperAdmin }

func (u *User) IsVerified() bool { return u.Status == UserStatusVerified }
