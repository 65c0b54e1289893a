package domain

import (
	"context"
	"errors"
	"time"

	pricedomain "github.com/smallbiznis/storefront/internal/price/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	// CreateBatch creates every product in one transaction. The whole batch
	// fails together; handles within the batch never collide.
	CreateBatch(ctx context.Context, reqs []CreateRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	UpdateBatch(ctx context.Context, reqs []UpdateRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Delete(ctx context.Context, ids []string) error
}

type OptionInput struct {
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

type VariantInput struct {
	Title           string              `json:"title"`
	SKU             *string             `json:"sku"`
	Barcode         *string             `json:"barcode"`
	EAN             *string             `json:"ean"`
	UPC             *string             `json:"upc"`
	AllowBackorder  *bool               `json:"allow_backorder"`
	ManageInventory *bool               `json:"manage_inventory"`
	Thumbnail       *string             `json:"thumbnail"`
	Metadata        map[string]any      `json:"metadata"`
	Options         map[string]string   `json:"options"`
	Prices          []pricedomain.Input `json:"prices"`
}

type AttributeGroupInput struct {
	GroupID  string `json:"group_id"`
	Required *bool  `json:"required"`
	Rank     *int   `json:"rank"`
}

type AttributeValueInput struct {
	GroupID     string `json:"group_id"`
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

type CreateRequest struct {
	Title           string                `json:"title"`
	Handle          *string               `json:"handle"`
	Subtitle        *string               `json:"subtitle"`
	Description     *string               `json:"description"`
	Status          *string               `json:"status"`
	Thumbnail       *string               `json:"thumbnail"`
	Discountable    *bool                 `json:"discountable"`
	IsGiftcard      *bool                 `json:"is_giftcard"`
	ExternalID      *string               `json:"external_id"`
	CategoryID      *string               `json:"category_id"`
	Metadata        map[string]any        `json:"metadata"`
	Options         []OptionInput         `json:"options"`
	Variants        []VariantInput        `json:"variants"`
	TagIDs          []string              `json:"tag_ids"`
	CollectionIDs   []string              `json:"collection_ids"`
	SalesChannelIDs []string              `json:"sales_channel_ids"`
	AttributeGroups []AttributeGroupInput `json:"attribute_groups"`
	AttributeValues []AttributeValueInput `json:"attribute_values"`
}

// UpdateRequest patches a product. Nil relation slices leave the relation
// untouched; empty non-nil slices clear it.
type UpdateRequest struct {
	ID              string                `json:"-"`
	Title           *string               `json:"title"`
	Handle          *string               `json:"handle"`
	Subtitle        *string               `json:"subtitle"`
	Description     *string               `json:"description"`
	Status          *string               `json:"status"`
	Thumbnail       *string               `json:"thumbnail"`
	Discountable    *bool                 `json:"discountable"`
	IsGiftcard      *bool                 `json:"is_giftcard"`
	ExternalID      *string               `json:"external_id"`
	CategoryID      *string               `json:"category_id"`
	Metadata        map[string]any        `json:"metadata"`
	Variants        []VariantInput        `json:"variants"`
	TagIDs          []string              `json:"tag_ids"`
	CollectionIDs   []string              `json:"collection_ids"`
	SalesChannelIDs []string              `json:"sales_channel_ids"`
	AttributeGroups []AttributeGroupInput `json:"attribute_groups"`
	AttributeValues []AttributeValueInput `json:"attribute_values"`
}

type ListRequest struct {
	Title        string
	Handle       string
	Status       string
	CategoryID   string
	CollectionID string
	TagID        string
	SortBy       string
	OrderBy      string
	Page         int
	Limit        int
}

type OptionResponse struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

type VariantResponse struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	SKU             *string                `json:"sku,omitempty"`
	Barcode         *string                `json:"barcode,omitempty"`
	EAN             *string                `json:"ean,omitempty"`
	UPC             *string                `json:"upc,omitempty"`
	AllowBackorder  bool                   `json:"allow_backorder"`
	ManageInventory bool                   `json:"manage_inventory"`
	VariantRank     int                    `json:"variant_rank"`
	Thumbnail       *string                `json:"thumbnail,omitempty"`
	Metadata        map[string]any         `json:"metadata,omitempty"`
	Options         map[string]string      `json:"options,omitempty"`
	Prices          []pricedomain.Response `json:"prices,omitempty"`
}

type AttributeGroupResponse struct {
	GroupID  string `json:"group_id"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Rank     int    `json:"rank"`
}

type AttributeValueResponse struct {
	GroupID     string `json:"group_id"`
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

type Response struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Handle          string                   `json:"handle"`
	Subtitle        *string                  `json:"subtitle,omitempty"`
	Description     *string                  `json:"description,omitempty"`
	Status          string                   `json:"status"`
	Thumbnail       *string                  `json:"thumbnail,omitempty"`
	Discountable    bool                     `json:"discountable"`
	IsGiftcard      bool                     `json:"is_giftcard"`
	ExternalID      *string                  `json:"external_id,omitempty"`
	CategoryID      *string                  `json:"category_id,omitempty"`
	Metadata        map[string]any           `json:"metadata,omitempty"`
	Options         []OptionResponse         `json:"options,omitempty"`
	Variants        []VariantResponse        `json:"variants,omitempty"`
	TagIDs          []string                 `json:"tag_ids,omitempty"`
	CollectionIDs   []string                 `json:"collection_ids,omitempty"`
	SalesChannelIDs []string                 `json:"sales_channel_ids,omitempty"`
	AttributeGroups []AttributeGroupResponse `json:"attribute_groups,omitempty"`
	AttributeValues []AttributeValueResponse `json:"attribute_values,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

var (
	ErrInvalidTitle            = errors.New("invalid_title")
	ErrInvalidStatus           = errors.New("invalid_status")
	ErrInvalidID               = errors.New("invalid_id")
	ErrNotFound                = errors.New("product_not_found")
	ErrBatchTooLarge           = errors.New("batch_too_large")
	ErrOptionNotFound          = errors.New("product_option_not_found")
	ErrOptionValueNotFound     = errors.New("product_option_value_not_found")
	ErrCategoryNotFound        = errors.New("product_category_not_found")
	ErrTagNotFound             = errors.New("product_tag_not_found")
	ErrCollectionNotFound      = errors.New("product_collection_not_found")
	ErrSalesChannelNotFound    = errors.New("product_sales_channel_not_found")
	ErrAttributeGroupNotFound  = errors.New("product_attribute_group_not_found")
	ErrAttributeGroupNotLinked = errors.New("product_attribute_group_not_linked")
	ErrAttributePairUnknown    = errors.New("product_attribute_pair_unknown")
)
