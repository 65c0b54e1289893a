package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/saleschannel/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, channel *domain.SalesChannel) error {
	return db.WithContext(ctx).Create(channel).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, channel *domain.SalesChannel) error {
	if channel == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(channel).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SalesChannel, error) {
	var channel domain.SalesChannel
	err := db.WithContext(ctx).First(&channel, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.SalesChannel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var channels []domain.SalesChannel
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.SalesChannel, error) {
	var channel domain.SalesChannel
	err := db.WithContext(ctx).First(&channel, "name = ?", name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.SalesChannel, error) {
	var channels []domain.SalesChannel
	stmt := db.WithContext(ctx).Model(&domain.SalesChannel{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	})).Apply(stmt)
	stmt = option.ApplyPagination(option.Pagination{Page: filter.Page, Limit: filter.Limit}).Apply(stmt)
	if err := stmt.Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.SalesChannel{}).Error
}
