package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/category/domain"
	"github.com/smallbiznis/storefront/internal/category/repository"
	"github.com/smallbiznis/storefront/internal/config"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCategoryService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &productdomain.Product{}))

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

func createCategory(t *testing.T, svc domain.Service, value string, parentID *string) *domain.Response {
	t.Helper()
	resp, err := svc.Create(context.Background(), domain.CreateRequest{Value: value, ParentID: parentID})
	require.NoError(t, err)
	return resp
}

func TestCategoryCreateGeneratesHandle(t *testing.T) {
	svc, _, _ := setupCategoryService(t)

	first := createCategory(t, svc, "Winter Wear", nil)
	assert.Equal(t, "winter-wear", first.Handle)

	second := createCategory(t, svc, "Winter Wear", nil)
	assert.Equal(t, "winter-wear-1", second.Handle)
}

func TestCategoryCreateUnknownParent(t *testing.T) {
	svc, _, node := setupCategoryService(t)

	missing := node.Generate().String()
	_, err := svc.Create(context.Background(), domain.CreateRequest{Value: "Shoes", ParentID: &missing})
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestCategoryUpdateRejectsCycle(t *testing.T) {
	svc, _, _ := setupCategoryService(t)
	ctx := context.Background()

	root := createCategory(t, svc, "Apparel", nil)
	mid := createCategory(t, svc, "Shirts", &root.ID)
	leaf := createCategory(t, svc, "Tees", &mid.ID)

	// Moving the root under its own grandchild would close a loop.
	_, err := svc.Update(ctx, domain.UpdateRequest{ID: root.ID, ParentID: &leaf.ID})
	assert.ErrorIs(t, err, domain.ErrCircularParent)

	_, err = svc.Update(ctx, domain.UpdateRequest{ID: root.ID, ParentID: &root.ID})
	assert.ErrorIs(t, err, domain.ErrCircularParent)

	// Reparenting a leaf elsewhere in the tree stays legal.
	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: leaf.ID, ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, root.ID, *updated.ParentID)
}

func TestCategoryUpdateClearsParent(t *testing.T) {
	svc, _, _ := setupCategoryService(t)

	root := createCategory(t, svc, "Apparel", nil)
	child := createCategory(t, svc, "Shirts", &root.ID)

	empty := ""
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{ID: child.ID, ParentID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func TestCategoryDeleteUnlinksProductsAndReparentsChildren(t *testing.T) {
	svc, db, node := setupCategoryService(t)
	ctx := context.Background()

	root := createCategory(t, svc, "Apparel", nil)
	mid := createCategory(t, svc, "Shirts", &root.ID)
	leaf := createCategory(t, svc, "Tees", &mid.ID)

	midID, err := snowflake.ParseString(mid.ID)
	require.NoError(t, err)
	product := productdomain.Product{
		ID:         node.Generate(),
		Title:      "Basic Tee",
		Handle:     "basic-tee",
		Status:     productdomain.StatusDraft,
		CategoryID: &midID,
	}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, svc.Delete(ctx, []string{mid.ID}))

	var reloaded productdomain.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	// The orphaned child is promoted to root, not re-hung on the
	// deleted node's parent.
	leafResp, err := svc.Get(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Nil(t, leafResp.ParentID)

	_, err = svc.Get(ctx, mid.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDeleteSubtreePromotesSurvivorToRoot(t *testing.T) {
	svc, _, _ := setupCategoryService(t)
	ctx := context.Background()

	root := createCategory(t, svc, "Apparel", nil)
	mid := createCategory(t, svc, "Shirts", &root.ID)
	inner := createCategory(t, svc, "Tees", &mid.ID)
	leaf := createCategory(t, svc, "Graphic Tees", &inner.ID)

	// Deleting two adjacent levels must not leave the survivor pointing at a
	// deleted row; it lands at root level.
	require.NoError(t, svc.Delete(ctx, []string{mid.ID, inner.ID}))

	leafResp, err := svc.Get(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Nil(t, leafResp.ParentID)

	// The untouched branch keeps its parent.
	rootResp, err := svc.Get(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, rootResp.ParentID)
}

func TestCategoryDeleteUnknownID(t *testing.T) {
	svc, _, node := setupCategoryService(t)

	err := svc.Delete(context.Background(), []string{node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
