package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/attribute/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateGroup(ctx context.Context, db *gorm.DB, group *domain.AttributeGroup) error {
	return db.WithContext(ctx).Create(group).Error
}

func (r *repo) FindGroupByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AttributeGroup, error) {
	var group domain.AttributeGroup
	err := db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *repo) FindGroupsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.AttributeGroup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var groups []domain.AttributeGroup
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repo) ListGroups(ctx context.Context, db *gorm.DB, filter domain.ListGroupsRequest) ([]domain.AttributeGroup, error) {
	var groups []domain.AttributeGroup
	stmt := db.WithContext(ctx).Model(&domain.AttributeGroup{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	})).Apply(stmt)
	stmt = option.ApplyPagination(option.Pagination{Page: filter.Page, Limit: filter.Limit}).Apply(stmt)
	if err := stmt.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repo) SoftDeleteGroups(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.AttributeGroup{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("attribute_group_id IN ?", ids).
		Delete(&domain.AttributeGroupAttribute{}).Error
}

func (r *repo) CreateAttribute(ctx context.Context, db *gorm.DB, attribute *domain.Attribute) error {
	return db.WithContext(ctx).Create(attribute).Error
}

func (r *repo) FindAttributesByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var attributes []domain.Attribute
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}

func (r *repo) ListAttributes(ctx context.Context, db *gorm.DB, filter domain.ListAttributesRequest) ([]domain.Attribute, error) {
	var attributes []domain.Attribute
	stmt := db.WithContext(ctx).Model(&domain.Attribute{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	})).Apply(stmt)
	stmt = option.ApplyPagination(option.Pagination{Page: filter.Page, Limit: filter.Limit}).Apply(stmt)
	if err := stmt.Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

func (r *repo) Assign(ctx context.Context, db *gorm.DB, groupID snowflake.ID, attributeIDs []snowflake.ID) error {
	if len(attributeIDs) == 0 {
		return nil
	}
	rows := make([]domain.AttributeGroupAttribute, 0, len(attributeIDs))
	for _, id := range attributeIDs {
		rows = append(rows, domain.AttributeGroupAttribute{
			AttributeGroupID: groupID,
			AttributeID:      id,
		})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *repo) Unassign(ctx context.Context, db *gorm.DB, groupID snowflake.ID, attributeIDs []snowflake.ID) error {
	if len(attributeIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("attribute_group_id = ? AND attribute_id IN ?", groupID, attributeIDs).
		Delete(&domain.AttributeGroupAttribute{}).Error
}

func (r *repo) AttributesOfGroups(ctx context.Context, db *gorm.DB, groupIDs []snowflake.ID) (map[snowflake.ID][]domain.Attribute, error) {
	out := make(map[snowflake.ID][]domain.Attribute, len(groupIDs))
	if len(groupIDs) == 0 {
		return out, nil
	}

	var links []domain.AttributeGroupAttribute
	if err := db.WithContext(ctx).Where("attribute_group_id IN ?", groupIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return out, nil
	}

	attributeIDs := make([]snowflake.ID, 0, len(links))
	for _, link := range links {
		attributeIDs = append(attributeIDs, link.AttributeID)
	}
	attributes, err := r.FindAttributesByIDs(ctx, db, attributeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[snowflake.ID]domain.Attribute, len(attributes))
	for _, a := range attributes {
		byID[a.ID] = a
	}

	for _, link := range links {
		if a, ok := byID[link.AttributeID]; ok {
			out[link.AttributeGroupID] = append(out[link.AttributeGroupID], a)
		}
	}
	return out, nil
}

func (r *repo) ExistingPairs(ctx context.Context, db *gorm.DB, pairs []domain.Pair) (map[domain.Pair]bool, error) {
	out := make(map[domain.Pair]bool, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	groupIDs := make([]snowflake.ID, 0, len(pairs))
	for _, p := range pairs {
		groupIDs = append(groupIDs, p.GroupID)
	}
	var links []domain.AttributeGroupAttribute
	if err := db.WithContext(ctx).Where("attribute_group_id IN ?", groupIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	known := make(map[domain.Pair]bool, len(links))
	for _, link := range links {
		known[domain.Pair{GroupID: link.AttributeGroupID, AttributeID: link.AttributeID}] = true
	}
	for _, p := range pairs {
		if known[p] {
			out[p] = true
		}
	}
	return out, nil
}
