package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateGroup(ctx context.Context, db *gorm.DB, group *AttributeGroup) error
	FindGroupByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AttributeGroup, error)
	FindGroupsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]AttributeGroup, error)
	ListGroups(ctx context.Context, db *gorm.DB, filter ListGroupsRequest) ([]AttributeGroup, error)
	SoftDeleteGroups(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error

	CreateAttribute(ctx context.Context, db *gorm.DB, attribute *Attribute) error
	FindAttributesByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Attribute, error)
	ListAttributes(ctx context.Context, db *gorm.DB, filter ListAttributesRequest) ([]Attribute, error)

	Assign(ctx context.Context, db *gorm.DB, groupID snowflake.ID, attributeIDs []snowflake.ID) error
	Unassign(ctx context.Context, db *gorm.DB, groupID snowflake.ID, attributeIDs []snowflake.ID) error
	AttributesOfGroups(ctx context.Context, db *gorm.DB, groupIDs []snowflake.ID) (map[snowflake.ID][]Attribute, error)

	// ExistingPairs reports which of the given (group, attribute) pairs are
	// present in the assignment pivot.
	ExistingPairs(ctx context.Context, db *gorm.DB, pairs []Pair) (map[Pair]bool, error)
}
