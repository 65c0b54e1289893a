package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/attribute/domain"
	"github.com/smallbiznis/storefront/internal/attribute/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAttributeService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.AttributeGroup{},
		&domain.Attribute{},
		&domain.AttributeGroupAttribute{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func TestAttributeGroupCreateWithAttributes(t *testing.T) {
	svc, _, _ := setupAttributeService(t)
	ctx := context.Background()

	material, err := svc.CreateAttribute(ctx, domain.CreateAttributeRequest{Name: "Material"})
	require.NoError(t, err)

	group, err := svc.CreateGroup(ctx, domain.CreateGroupRequest{
		Name:         "Fabric",
		AttributeIDs: []string{material.ID},
	})
	require.NoError(t, err)
	require.Len(t, group.Attributes, 1)
	assert.Equal(t, "Material", group.Attributes[0].Name)
}

func TestAttributeGroupAssignUnknownAttribute(t *testing.T) {
	svc, _, node := setupAttributeService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, domain.CreateGroupRequest{Name: "Fabric"})
	require.NoError(t, err)

	_, err = svc.AssignAttributes(ctx, group.ID, []string{node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrAttributeNotFound)
}

func TestAttributeGroupAssignAndUnassign(t *testing.T) {
	svc, db, _ := setupAttributeService(t)
	ctx := context.Background()

	material, err := svc.CreateAttribute(ctx, domain.CreateAttributeRequest{Name: "Material"})
	require.NoError(t, err)
	group, err := svc.CreateGroup(ctx, domain.CreateGroupRequest{Name: "Fabric"})
	require.NoError(t, err)

	assigned, err := svc.AssignAttributes(ctx, group.ID, []string{material.ID})
	require.NoError(t, err)
	require.Len(t, assigned.Attributes, 1)

	// Assigning the same pair twice stays a single link.
	assigned, err = svc.AssignAttributes(ctx, group.ID, []string{material.ID})
	require.NoError(t, err)
	require.Len(t, assigned.Attributes, 1)

	require.NoError(t, svc.UnassignAttributes(ctx, group.ID, []string{material.ID}))

	var links int64
	require.NoError(t, db.Model(&domain.AttributeGroupAttribute{}).Count(&links).Error)
	assert.Zero(t, links)
}

func TestAttributeGroupDelete(t *testing.T) {
	svc, _, _ := setupAttributeService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, domain.CreateGroupRequest{Name: "Fabric"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(ctx, group.ID))
	_, err = svc.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
