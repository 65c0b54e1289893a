package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, channel *SalesChannel) error
	Update(ctx context.Context, db *gorm.DB, channel *SalesChannel) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SalesChannel, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]SalesChannel, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*SalesChannel, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]SalesChannel, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
