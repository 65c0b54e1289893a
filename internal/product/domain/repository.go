package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Product, error)
	SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error

	// FindOptionsByTitles matches global options case-insensitively; the
	// returned map is keyed by lowercased title.
	FindOptionsByTitles(ctx context.Context, db *gorm.DB, titles []string) (map[string]Option, error)
	CreateOptions(ctx context.Context, db *gorm.DB, options []Option) error
	FindOptionsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]Option, error)

	OptionValuesOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]OptionValue, error)
	CreateOptionValues(ctx context.Context, db *gorm.DB, values []OptionValue) error
	DeleteOptionValuesOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) error

	VariantsOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]Variant, error)
	CreateVariants(ctx context.Context, db *gorm.DB, variants []Variant) error
	UpdateVariant(ctx context.Context, db *gorm.DB, variant *Variant) error
	DeleteVariants(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) error

	VariantOptionsOf(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) ([]VariantOption, error)
	CreateVariantOptions(ctx context.Context, db *gorm.DB, links []VariantOption) error
	DeleteVariantOptionsOf(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) error

	TagLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]ProductTag, error)
	ReplaceTagLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, tagIDs []snowflake.ID) error

	CollectionLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]ProductCollection, error)
	ReplaceCollectionLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, collectionIDs []snowflake.ID) error

	SalesChannelLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]ProductSalesChannel, error)
	ReplaceSalesChannelLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, channelIDs []snowflake.ID) error

	AttributeGroupLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]ProductAttributeGroup, error)
	ReplaceAttributeGroupLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, links []ProductAttributeGroup) error

	AttributeValuesOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]ProductAttributeValue, error)
	ReplaceAttributeValues(ctx context.Context, db *gorm.DB, productID snowflake.ID, values []ProductAttributeValue) error

	// DeleteRelationsOf hard-deletes every pivot row of the given products.
	DeleteRelationsOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) error
}
