package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PriceSet is an anonymous price container. It has no foreign key to its
// owner; the owning variant id is recorded in the metadata tag.
type PriceSet struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (PriceSet) TableName() string { return "price_sets" }

// MetadataVariantKey is the metadata tag linking a price set to a variant.
const MetadataVariantKey = "variant_id"

type Price struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	PriceSetID   snowflake.ID   `gorm:"not null;index" json:"price_set_id"`
	Amount       int64          `gorm:"not null" json:"amount"`
	CurrencyCode string         `gorm:"type:text;not null" json:"currency_code"`
	MinQuantity  *int           `json:"min_quantity,omitempty"`
	MaxQuantity  *int           `json:"max_quantity,omitempty"`
	PriceListID  *snowflake.ID  `json:"price_list_id,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Price) TableName() string { return "prices" }
