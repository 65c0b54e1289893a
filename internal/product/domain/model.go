package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusProposed  = "proposed"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// ValidStatus reports whether s is a known product status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusProposed, StatusPublished, StatusRejected:
		return true
	default:
		return false
	}
}

type Product struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Title        string            `gorm:"type:text;not null" json:"title"`
	Handle       string            `gorm:"type:text;not null;uniqueIndex" json:"handle"`
	Subtitle     *string           `gorm:"type:text" json:"subtitle,omitempty"`
	Description  *string           `gorm:"type:text" json:"description,omitempty"`
	Status       string            `gorm:"type:text;not null;default:draft" json:"status"`
	Thumbnail    *string           `gorm:"type:text" json:"thumbnail,omitempty"`
	Discountable bool              `gorm:"not null;default:true" json:"discountable"`
	IsGiftcard   bool              `gorm:"not null;default:false" json:"is_giftcard"`
	ExternalID   *string           `gorm:"type:text" json:"external_id,omitempty"`
	CategoryID   *snowflake.ID     `gorm:"index" json:"category_id,omitempty"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

// Option is a global selectable axis (e.g. "Size"), shared across products
// and deduplicated by case-insensitive title.
type Option struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"type:text;not null" json:"title"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Option) TableName() string { return "options" }

// OptionValue is scoped per product even though its Option is global.
type OptionValue struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Value     string         `gorm:"type:text;not null" json:"value"`
	OptionID  snowflake.ID   `gorm:"not null;index" json:"option_id"`
	ProductID snowflake.ID   `gorm:"not null;index" json:"product_id"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OptionValue) TableName() string { return "option_values" }

type Variant struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	Title           string            `gorm:"type:text;not null" json:"title"`
	ProductID       snowflake.ID      `gorm:"not null;index" json:"product_id"`
	SKU             *string           `gorm:"type:text" json:"sku,omitempty"`
	Barcode         *string           `gorm:"type:text" json:"barcode,omitempty"`
	EAN             *string           `gorm:"type:text;column:ean" json:"ean,omitempty"`
	UPC             *string           `gorm:"type:text;column:upc" json:"upc,omitempty"`
	AllowBackorder  bool              `gorm:"not null;default:false" json:"allow_backorder"`
	ManageInventory bool              `gorm:"not null;default:true" json:"manage_inventory"`
	VariantRank     int               `gorm:"not null;default:0" json:"variant_rank"`
	Thumbnail       *string           `gorm:"type:text" json:"thumbnail,omitempty"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Variant) TableName() string { return "variants" }

// VariantOption links a variant to one option value of its product.
type VariantOption struct {
	VariantID     snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"variant_id"`
	OptionValueID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"option_value_id"`
}

func (VariantOption) TableName() string { return "variant_options" }

type ProductTag struct {
	ProductID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	TagID     snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
}

func (ProductTag) TableName() string { return "product_tags" }

type ProductCollection struct {
	ProductID    snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	CollectionID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"collection_id"`
}

func (ProductCollection) TableName() string { return "product_collections" }

type ProductSalesChannel struct {
	ProductID      snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	SalesChannelID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"sales_channel_id"`
}

func (ProductSalesChannel) TableName() string { return "product_sales_channels" }

// ProductAttributeGroup opts a product into an attribute group.
type ProductAttributeGroup struct {
	ProductID        snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	AttributeGroupID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"attribute_group_id"`
	Required         bool         `gorm:"not null;default:false" json:"required"`
	Rank             int          `gorm:"not null;default:0" json:"rank"`
}

func (ProductAttributeGroup) TableName() string { return "product_attribute_groups" }

// ProductAttributeValue records a value for an attribute within one of the
// product's linked groups. Replaced wholesale on update, like the pivots.
type ProductAttributeValue struct {
	ProductID        snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	AttributeGroupID snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"attribute_group_id"`
	AttributeID      snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"attribute_id"`
	Value            string       `gorm:"type:text;not null" json:"value"`
}

func (ProductAttributeValue) TableName() string { return "product_attribute_values" }
