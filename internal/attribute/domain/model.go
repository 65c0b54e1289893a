package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttributeGroup struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (AttributeGroup) TableName() string { return "attribute_groups" }

type Attribute struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Attribute) TableName() string { return "attributes" }

// AttributeGroupAttribute assigns an attribute to a group. An attribute may
// belong to multiple groups.
type AttributeGroupAttribute struct {
	AttributeGroupID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"attribute_group_id"`
	AttributeID      snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"attribute_id"`
}

func (AttributeGroupAttribute) TableName() string { return "attribute_group_attributes" }

// Pair identifies a (group, attribute) assignment.
type Pair struct {
	GroupID     snowflake.ID
	AttributeID snowflake.ID
}
