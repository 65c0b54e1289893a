package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	Update(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Category, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Category, error)
	SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error

	// ChildrenOf returns the ids of the direct children of the given parents.
	ChildrenOf(ctx context.Context, db *gorm.DB, parentIDs []snowflake.ID) ([]snowflake.ID, error)

	// Reparent moves every child of parentID under newParent. A nil newParent
	// promotes the children to roots.
	Reparent(ctx context.Context, db *gorm.DB, parentID snowflake.ID, newParent *snowflake.ID) error

	// UnlinkProducts clears category_id on every product referencing one of
	// the given categories.
	UnlinkProducts(ctx context.Context, db *gorm.DB, categoryIDs []snowflake.ID) error
	CountProductsReferencing(ctx context.Context, db *gorm.DB, categoryIDs []snowflake.ID) (int64, error)
}
