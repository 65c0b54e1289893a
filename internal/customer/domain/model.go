package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	FirstName *string           `gorm:"type:text" json:"first_name,omitempty"`
	LastName  *string           `gorm:"type:text" json:"last_name,omitempty"`
	Email     string            `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone     *string           `gorm:"type:text" json:"phone,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Customer) TableName() string { return "customers" }
