package model

import (
	"time"

	"gorm.io/datatypes"
)

// Category groups posts; Topics is the set of allowed category_topic values
// for posts created under it.
type Category struct {
	ID           string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string                      `gorm:"type:varchar(128);uniqueIndex:ux_category_name;not null" json:"name"`
	Description  string                      `gorm:"type:text" json:"description"`
	Topics       datatypes.JSONSlice[string] `json:"topics"`
	DateCreated  time.Time                   `gorm:"column:date_created" json:"date_created"`
	DateModified time.Time                   `gorm:"column:date_modified" json:"date_modified"`
}

func (Category) TableName() string { return "categories" }

// HasTopic reports whether topic is currently part of the category.
func (c *Category) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
