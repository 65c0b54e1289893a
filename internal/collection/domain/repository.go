package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, collection *Collection) error
	Update(ctx context.Context, db *gorm.DB, collection *Collection) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Collection, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Collection, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Collection, error)
	SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error

	// LinkProducts inserts pivot rows, ignoring duplicate (product, collection)
	// pairs. UnlinkProducts deletes the given pairs.
	LinkProducts(ctx context.Context, db *gorm.DB, collectionID snowflake.ID, productIDs []snowflake.ID) error
	UnlinkProducts(ctx context.Context, db *gorm.DB, collectionID snowflake.ID, productIDs []snowflake.ID) error
	UnlinkAll(ctx context.Context, db *gorm.DB, collectionIDs []snowflake.ID) error
}
