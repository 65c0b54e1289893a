package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateSet(ctx context.Context, db *gorm.DB, set *PriceSet) error
	// FindSetByVariant resolves the price set tagged with the variant id.
	// Returns nil when the variant has no set yet.
	FindSetByVariant(ctx context.Context, db *gorm.DB, variantID snowflake.ID) (*PriceSet, error)
	CreatePrices(ctx context.Context, db *gorm.DB, prices []Price) error
	DeletePricesOfSets(ctx context.Context, db *gorm.DB, setIDs []snowflake.ID) error
	DeleteSets(ctx context.Context, db *gorm.DB, setIDs []snowflake.ID) error
	PricesOfSets(ctx context.Context, db *gorm.DB, setIDs []snowflake.ID) ([]Price, error)
}
