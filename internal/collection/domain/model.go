package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Collection struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Title     string            `gorm:"type:text;not null" json:"title"`
	Handle    string            `gorm:"type:text;not null;uniqueIndex" json:"handle"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Collection) TableName() string { return "collections" }
