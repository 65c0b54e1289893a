package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/tag/domain"
	"github.com/smallbiznis/storefront/internal/tag/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTagService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Tag{},
		&productdomain.ProductTag{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func TestTagCreateTrimsValue(t *testing.T) {
	svc, _ := setupTagService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, domain.CreateRequest{Value: "  summer  "})
	require.NoError(t, err)
	assert.Equal(t, "summer", resp.Value)

	_, err = svc.Create(ctx, domain.CreateRequest{Value: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestTagUpdateValueAndMetadata(t *testing.T) {
	svc, db := setupTagService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		Value:    "summer",
		Metadata: map[string]any{"season": "2026"},
	})
	require.NoError(t, err)

	value := "winter"
	resp, err := svc.Update(ctx, domain.UpdateRequest{
		ID:       created.ID,
		Value:    &value,
		Metadata: map[string]any{"season": "2027"},
	})
	require.NoError(t, err)
	assert.Equal(t, "winter", resp.Value)
	assert.Equal(t, "2027", resp.Metadata["season"])

	var stored domain.Tag
	require.NoError(t, db.First(&stored, "id = ?", resp.ID).Error)
	assert.Equal(t, "winter", stored.Value)

	// Omitted fields stay untouched.
	resp, err = svc.Update(ctx, domain.UpdateRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "winter", resp.Value)
	assert.Equal(t, "2027", resp.Metadata["season"])
}

func TestTagUpdateRejectsBadInput(t *testing.T) {
	svc, _ := setupTagService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Value: "summer"})
	require.NoError(t, err)

	empty := " "
	_, err = svc.Update(ctx, domain.UpdateRequest{ID: created.ID, Value: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = svc.Update(ctx, domain.UpdateRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Update(ctx, domain.UpdateRequest{ID: "123456789"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagDeleteDropsProductLinks(t *testing.T) {
	svc, db := setupTagService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Value: "summer"})
	require.NoError(t, err)

	id, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&productdomain.ProductTag{ProductID: 42, TagID: id}).Error)

	require.NoError(t, svc.Delete(ctx, []string{created.ID}))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var links int64
	require.NoError(t, db.Model(&productdomain.ProductTag{}).Count(&links).Error)
	assert.Zero(t, links)
}
