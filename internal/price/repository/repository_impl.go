package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/price/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateSet(ctx context.Context, db *gorm.DB, set *domain.PriceSet) error {
	return db.WithContext(ctx).Create(set).Error
}

func (r *repo) FindSetByVariant(ctx context.Context, db *gorm.DB, variantID snowflake.ID) (*domain.PriceSet, error) {
	var sets []domain.PriceSet
	err := db.WithContext(ctx).
		Model(&domain.PriceSet{}).
		Where(datatypes.JSONQuery("metadata").Equals(variantID.String(), domain.MetadataVariantKey)).
		Limit(1).
		Find(&sets).Error
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return &sets[0], nil
}

func (r *repo) CreatePrices(ctx context.Context, db *gorm.DB, prices []domain.Price) error {
	if len(prices) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&prices).Error
}

func (r *repo) DeletePricesOfSets(ctx context.Context, db *gorm.DB, setIDs []snowflake.ID) error {
	if len(setIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("price_set_id IN ?", setIDs).
		Delete(&domain.Price{}).Error
}

func (r *repo) DeleteSets(ctx context.Context, db *gorm.DB, setIDs []snowflake.ID) error {
	if len(setIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", setIDs).Delete(&domain.PriceSet{}).Error
}

func (r *repo) PricesOfSets(ctx context.Context, db *gorm.DB, setIDs []snowflake.ID) ([]domain.Price, error) {
	if len(setIDs) == 0 {
		return nil, nil
	}
	var prices []domain.Price
	err := db.WithContext(ctx).
		Where("price_set_id IN ?", setIDs).
		Order("currency_code asc, id asc").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}
