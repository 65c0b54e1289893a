package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, tag *Tag) error
	Update(ctx context.Context, db *gorm.DB, tag *Tag) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tag, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Tag, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Tag, error)
	SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error
}
