package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

func ValidVisibility(v string) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Category is a node in the product category tree. ParentID is nil for
// root categories.
type Category struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	Value      string         `gorm:"type:text;not null" json:"value"`
	Handle     string         `gorm:"type:text;not null;uniqueIndex" json:"handle"`
	ParentID   *snowflake.ID  `gorm:"index" json:"parent_id,omitempty"`
	Status     string         `gorm:"type:text;not null;default:active" json:"status"`
	Visibility string         `gorm:"type:text;not null;default:public" json:"visibility"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string { return "categories" }
