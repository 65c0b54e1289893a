package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Select(
			"title", "handle", "subtitle", "description", "status", "thumbnail",
			"discountable", "is_giftcard", "external_id", "category_id",
			"metadata", "updated_at",
		).
		Updates(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Product, error) {
	var products []domain.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Product, error) {
	var products []domain.Product
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if filter.Title != "" {
		stmt = stmt.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Handle != "" {
		stmt = stmt.Where("handle = ?", filter.Handle)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		if id, err := snowflake.ParseString(filter.CategoryID); err == nil {
			stmt = stmt.Where("category_id = ?", id)
		}
	}
	if filter.CollectionID != "" {
		if id, err := snowflake.ParseString(filter.CollectionID); err == nil {
			stmt = stmt.Where(
				"id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).
					Model(&domain.ProductCollection{}).
					Select("product_id").
					Where("collection_id = ?", id),
			)
		}
	}
	if filter.TagID != "" {
		if id, err := snowflake.ParseString(filter.TagID); err == nil {
			stmt = stmt.Where(
				"id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).
					Model(&domain.ProductTag{}).
					Select("product_id").
					Where("tag_id = ?", id),
			)
		}
	}
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
		"status":     true,
	})).Apply(stmt)
	stmt = option.ApplyPagination(option.Pagination{Page: filter.Page, Limit: filter.Limit}).Apply(stmt)
	if err := stmt.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Product{}).Error
}

func (r *repo) FindOptionsByTitles(ctx context.Context, db *gorm.DB, titles []string) (map[string]domain.Option, error) {
	byTitle := make(map[string]domain.Option, len(titles))
	if len(titles) == 0 {
		return byTitle, nil
	}
	lowered := make([]string, 0, len(titles))
	for _, t := range titles {
		lowered = append(lowered, strings.ToLower(t))
	}
	var options []domain.Option
	err := db.WithContext(ctx).
		Where("LOWER(title) IN ?", lowered).
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	for _, o := range options {
		byTitle[strings.ToLower(o.Title)] = o
	}
	return byTitle, nil
}

func (r *repo) CreateOptions(ctx context.Context, db *gorm.DB, options []domain.Option) error {
	if len(options) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&options).Error
}

func (r *repo) FindOptionsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]domain.Option, error) {
	byID := make(map[snowflake.ID]domain.Option, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var options []domain.Option
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	for _, o := range options {
		byID[o.ID] = o
	}
	return byID, nil
}

func (r *repo) OptionValuesOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.OptionValue, error) {
	var values []domain.OptionValue
	if len(productIDs) == 0 {
		return values, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repo) CreateOptionValues(ctx context.Context, db *gorm.DB, values []domain.OptionValue) error {
	if len(values) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&values).Error
}

func (r *repo) DeleteOptionValuesOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Unscoped().
		Where("product_id IN ?", productIDs).
		Delete(&domain.OptionValue{}).Error
}

func (r *repo) VariantsOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.Variant, error) {
	var variants []domain.Variant
	if len(productIDs) == 0 {
		return variants, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("variant_rank ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *repo) CreateVariants(ctx context.Context, db *gorm.DB, variants []domain.Variant) error {
	if len(variants) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&variants).Error
}

func (r *repo) UpdateVariant(ctx context.Context, db *gorm.DB, variant *domain.Variant) error {
	return db.WithContext(ctx).
		Model(&domain.Variant{}).
		Where("id = ?", variant.ID).
		Select(
			"title", "sku", "barcode", "ean", "upc", "allow_backorder",
			"manage_inventory", "variant_rank", "thumbnail", "metadata",
			"updated_at",
		).
		Updates(variant).Error
}

func (r *repo) DeleteVariants(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) error {
	if len(variantIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", variantIDs).Delete(&domain.Variant{}).Error
}

func (r *repo) VariantOptionsOf(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) ([]domain.VariantOption, error) {
	var links []domain.VariantOption
	if len(variantIDs) == 0 {
		return links, nil
	}
	err := db.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) CreateVariantOptions(ctx context.Context, db *gorm.DB, links []domain.VariantOption) error {
	if len(links) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}

func (r *repo) DeleteVariantOptionsOf(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) error {
	if len(variantIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Delete(&domain.VariantOption{}).Error
}

func (r *repo) TagLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.ProductTag, error) {
	var links []domain.ProductTag
	if len(productIDs) == 0 {
		return links, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) ReplaceTagLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, tagIDs []snowflake.ID) error {
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.ProductTag{}).Error
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]domain.ProductTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, domain.ProductTag{ProductID: productID, TagID: id})
	}
	return db.WithContext(ctx).Create(&links).Error
}

func (r *repo) CollectionLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.ProductCollection, error) {
	var links []domain.ProductCollection
	if len(productIDs) == 0 {
		return links, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) ReplaceCollectionLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, collectionIDs []snowflake.ID) error {
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.ProductCollection{}).Error
	if err != nil {
		return err
	}
	if len(collectionIDs) == 0 {
		return nil
	}
	links := make([]domain.ProductCollection, 0, len(collectionIDs))
	for _, id := range collectionIDs {
		links = append(links, domain.ProductCollection{ProductID: productID, CollectionID: id})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}

func (r *repo) SalesChannelLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.ProductSalesChannel, error) {
	var links []domain.ProductSalesChannel
	if len(productIDs) == 0 {
		return links, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) ReplaceSalesChannelLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, channelIDs []snowflake.ID) error {
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.ProductSalesChannel{}).Error
	if err != nil {
		return err
	}
	if len(channelIDs) == 0 {
		return nil
	}
	links := make([]domain.ProductSalesChannel, 0, len(channelIDs))
	for _, id := range channelIDs {
		links = append(links, domain.ProductSalesChannel{ProductID: productID, SalesChannelID: id})
	}
	return db.WithContext(ctx).Create(&links).Error
}

func (r *repo) AttributeGroupLinksOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.ProductAttributeGroup, error) {
	var links []domain.ProductAttributeGroup
	if len(productIDs) == 0 {
		return links, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("rank ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) ReplaceAttributeGroupLinks(ctx context.Context, db *gorm.DB, productID snowflake.ID, links []domain.ProductAttributeGroup) error {
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.ProductAttributeGroup{}).Error
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&links).Error
}

func (r *repo) AttributeValuesOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) ([]domain.ProductAttributeValue, error) {
	var values []domain.ProductAttributeValue
	if len(productIDs) == 0 {
		return values, nil
	}
	err := db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repo) ReplaceAttributeValues(ctx context.Context, db *gorm.DB, productID snowflake.ID, values []domain.ProductAttributeValue) error {
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.ProductAttributeValue{}).Error
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&values).Error
}

func (r *repo) DeleteRelationsOf(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) error {
	if len(productIDs) == 0 {
		return nil
	}
	pivots := []any{
		&domain.ProductTag{},
		&domain.ProductCollection{},
		&domain.ProductSalesChannel{},
		&domain.ProductAttributeGroup{},
		&domain.ProductAttributeValue{},
	}
	for _, pivot := range pivots {
		err := db.WithContext(ctx).
			Where("product_id IN ?", productIDs).
			Delete(pivot).Error
		if err != nil {
			return err
		}
	}
	return nil
}
