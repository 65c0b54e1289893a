package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/collection/domain"
	"github.com/smallbiznis/storefront/internal/collection/repository"
	"github.com/smallbiznis/storefront/internal/config"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCollectionService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Collection{},
		&productdomain.Product{},
		&productdomain.ProductCollection{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(),
		Catalog: config.StaticCatalogConfigHolder(config.DefaultCatalogConfig()),
	})
	return svc, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, title string) snowflake.ID {
	t.Helper()
	product := productdomain.Product{
		ID:     node.Generate(),
		Title:  title,
		Handle: title,
		Status: productdomain.StatusDraft,
	}
	require.NoError(t, db.Create(&product).Error)
	return product.ID
}

func TestCollectionCreateGeneratesHandle(t *testing.T) {
	svc, _, _ := setupCollectionService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRequest{Title: "Summer Sale"})
	require.NoError(t, err)
	assert.Equal(t, "summer-sale", first.Handle)

	second, err := svc.Create(ctx, domain.CreateRequest{Title: "Summer Sale"})
	require.NoError(t, err)
	assert.Equal(t, "summer-sale-1", second.Handle)
}

func TestCollectionLinkProductsIgnoresExistingPairs(t *testing.T) {
	svc, db, node := setupCollectionService(t)
	ctx := context.Background()

	coll, err := svc.Create(ctx, domain.CreateRequest{Title: "Featured"})
	require.NoError(t, err)

	productID := seedProduct(t, db, node, "shirt")

	require.NoError(t, svc.LinkProducts(ctx, coll.ID, []string{productID.String()}))
	// Linking the same pair again is a no-op, not an error.
	require.NoError(t, svc.LinkProducts(ctx, coll.ID, []string{productID.String()}))

	var links int64
	require.NoError(t, db.Model(&productdomain.ProductCollection{}).Count(&links).Error)
	assert.Equal(t, int64(1), links)
}

func TestCollectionLinkUnknownProduct(t *testing.T) {
	svc, _, node := setupCollectionService(t)
	ctx := context.Background()

	coll, err := svc.Create(ctx, domain.CreateRequest{Title: "Featured"})
	require.NoError(t, err)

	err = svc.LinkProducts(ctx, coll.ID, []string{node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCollectionUnlinkProducts(t *testing.T) {
	svc, db, node := setupCollectionService(t)
	ctx := context.Background()

	coll, err := svc.Create(ctx, domain.CreateRequest{Title: "Featured"})
	require.NoError(t, err)

	keep := seedProduct(t, db, node, "shirt")
	drop := seedProduct(t, db, node, "mug")
	require.NoError(t, svc.LinkProducts(ctx, coll.ID, []string{keep.String(), drop.String()}))

	require.NoError(t, svc.UnlinkProducts(ctx, coll.ID, []string{drop.String()}))

	var links []productdomain.ProductCollection
	require.NoError(t, db.Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, keep, links[0].ProductID)
}

func TestCollectionDeleteRemovesLinks(t *testing.T) {
	svc, db, node := setupCollectionService(t)
	ctx := context.Background()

	coll, err := svc.Create(ctx, domain.CreateRequest{Title: "Featured"})
	require.NoError(t, err)
	productID := seedProduct(t, db, node, "shirt")
	require.NoError(t, svc.LinkProducts(ctx, coll.ID, []string{productID.String()}))

	require.NoError(t, svc.Delete(ctx, []string{coll.ID}))

	_, err = svc.Get(ctx, coll.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var links int64
	require.NoError(t, db.Model(&productdomain.ProductCollection{}).Count(&links).Error)
	assert.Zero(t, links)
}
