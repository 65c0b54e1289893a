package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/category/domain"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", category.ID).
		Select("value", "handle", "parent_id", "status", "visibility", "updated_at").
		Updates(category).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Category, error) {
	var category domain.Category
	err := db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Category, error) {
	var categories []domain.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Category, error) {
	var categories []domain.Category
	stmt := db.WithContext(ctx).Model(&domain.Category{})
	if filter.Value != "" {
		stmt = stmt.Where("value = ?", filter.Value)
	}
	if filter.ParentID != "" {
		if filter.ParentID == "null" {
			stmt = stmt.Where("parent_id IS NULL")
		} else if id, err := snowflake.ParseString(filter.ParentID); err == nil {
			stmt = stmt.Where("parent_id = ?", id)
		}
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Visibility != "" {
		stmt = stmt.Where("visibility = ?", filter.Visibility)
	}
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"value":      true,
	})).Apply(stmt)
	stmt = option.ApplyPagination(option.Pagination{Page: filter.Page, Limit: filter.Limit}).Apply(stmt)
	if err := stmt.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Category{}).Error
}

func (r *repo) ChildrenOf(ctx context.Context, db *gorm.DB, parentIDs []snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	if len(parentIDs) == 0 {
		return ids, nil
	}
	err := db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) Reparent(ctx context.Context, db *gorm.DB, parentID snowflake.ID, newParent *snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("parent_id = ?", parentID).
		Update("parent_id", newParent).Error
}

func (r *repo) UnlinkProducts(ctx context.Context, db *gorm.DB, categoryIDs []snowflake.ID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&productdomain.Product{}).
		Where("category_id IN ?", categoryIDs).
		Update("category_id", nil).Error
}

func (r *repo) CountProductsReferencing(ctx context.Context, db *gorm.DB, categoryIDs []snowflake.ID) (int64, error) {
	var count int64
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	err := db.WithContext(ctx).
		Model(&productdomain.Product{}).
		Where("category_id IN ?", categoryIDs).
		Count(&count).Error
	return count, err
}
