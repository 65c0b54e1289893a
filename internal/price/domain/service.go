package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Writer maintains the price rows of variants. Every method expects the
// caller's transaction handle; prices are never written outside the owning
// product's transaction.
type Writer interface {
	// CreatePrices creates the variant's price set and bulk-inserts its rows.
	CreatePrices(ctx context.Context, tx *gorm.DB, variantID snowflake.ID, prices []Input) error
	// SyncPrices replaces the variant's full price list. A missing price set
	// is created; prices is allowed to be empty, leaving zero rows.
	SyncPrices(ctx context.Context, tx *gorm.DB, variantID snowflake.ID, prices []Input) error
	// DeleteForVariants removes price sets and rows for the given variants.
	DeleteForVariants(ctx context.Context, tx *gorm.DB, variantIDs []snowflake.ID) error
	// ListForVariants loads the current price rows per variant.
	ListForVariants(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) (map[snowflake.ID][]Response, error)
}

type Input struct {
	Amount       int64   `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
	MinQuantity  *int    `json:"min_quantity"`
	MaxQuantity  *int    `json:"max_quantity"`
	PriceListID  *string `json:"price_list_id"`
}

type Response struct {
	ID           string  `json:"id"`
	Amount       int64   `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
	MinQuantity  *int    `json:"min_quantity,omitempty"`
	MaxQuantity  *int    `json:"max_quantity,omitempty"`
	PriceListID  *string `json:"price_list_id,omitempty"`
}

var (
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidID       = errors.New("invalid_id")
)
