package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/collection/domain"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, collection *domain.Collection) error {
	return db.WithContext(ctx).Create(collection).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, collection *domain.Collection) error {
	if collection == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(collection).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Collection, error) {
	var collection domain.Collection
	err := db.WithContext(ctx).First(&collection, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var collections []domain.Collection
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Collection, error) {
	var collections []domain.Collection
	stmt := db.WithContext(ctx).Model(&domain.Collection{})
	if filter.Title != "" {
		stmt = stmt.Where("title = ?", filter.Title)
	}
	if filter.Handle != "" {
		stmt = stmt.Where("handle = ?", filter.Handle)
	}
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
		"handle":     true,
	})).Apply(stmt)
	stmt = option.ApplyPagination(option.Pagination{Page: filter.Page, Limit: filter.Limit}).Apply(stmt)
	if err := stmt.Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Collection{}).Error
}

func (r *repo) LinkProducts(ctx context.Context, db *gorm.DB, collectionID snowflake.ID, productIDs []snowflake.ID) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([]productdomain.ProductCollection, 0, len(productIDs))
	for _, productID := range productIDs {
		rows = append(rows, productdomain.ProductCollection{
			ProductID:    productID,
			CollectionID: collectionID,
		})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *repo) UnlinkProducts(ctx context.Context, db *gorm.DB, collectionID snowflake.ID, productIDs []snowflake.ID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("collection_id = ? AND product_id IN ?", collectionID, productIDs).
		Delete(&productdomain.ProductCollection{}).Error
}

func (r *repo) UnlinkAll(ctx context.Context, db *gorm.DB, collectionIDs []snowflake.ID) error {
	if len(collectionIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("collection_id IN ?", collectionIDs).
		Delete(&productdomain.ProductCollection{}).Error
}
