package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	attrrepository "github.com/smallbiznis/storefront/internal/attribute/repository"
	categorydomain "github.com/smallbiznis/storefront/internal/category/domain"
	categoryrepository "github.com/smallbiznis/storefront/internal/category/repository"
	collectiondomain "github.com/smallbiznis/storefront/internal/collection/domain"
	collectionrepository "github.com/smallbiznis/storefront/internal/collection/repository"
	"github.com/smallbiznis/storefront/internal/config"
	pricedomain "github.com/smallbiznis/storefront/internal/price/domain"
	pricerepository "github.com/smallbiznis/storefront/internal/price/repository"
	priceservice "github.com/smallbiznis/storefront/internal/price/service"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/product/repository"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	saleschannelrepository "github.com/smallbiznis/storefront/internal/saleschannel/repository"
	tagdomain "github.com/smallbiznis/storefront/internal/tag/domain"
	tagrepository "github.com/smallbiznis/storefront/internal/tag/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productFixture struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	ctx   context.Context
	limit int
}

func setupProductService(t *testing.T, batchMax int) *productFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Product{},
		&domain.Option{},
		&domain.OptionValue{},
		&domain.Variant{},
		&domain.VariantOption{},
		&domain.ProductTag{},
		&domain.ProductCollection{},
		&domain.ProductSalesChannel{},
		&domain.ProductAttributeGroup{},
		&domain.ProductAttributeValue{},
		&tagdomain.Tag{},
		&collectiondomain.Collection{},
		&saleschanneldomain.SalesChannel{},
		&attrdomain.AttributeGroup{},
		&attrdomain.Attribute{},
		&attrdomain.AttributeGroupAttribute{},
		&categorydomain.Category{},
		&pricedomain.PriceSet{},
		&pricedomain.Price{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	catalog := config.DefaultCatalogConfig()
	if batchMax > 0 {
		catalog.BatchMaxProducts = batchMax
	}

	writer := priceservice.New(priceservice.Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  pricerepository.Provide(),
	})

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		Catalog:     config.StaticCatalogConfigHolder(catalog),
		Prices:      writer,
		Tags:        tagrepository.Provide(),
		Collections: collectionrepository.Provide(),
		Channels:    saleschannelrepository.Provide(),
		Attributes:  attrrepository.Provide(),
		Categories:  categoryrepository.Provide(),
	})
	return &productFixture{svc: svc, db: db, node: node, ctx: context.Background(), limit: catalog.BatchMaxProducts}
}

func (f *productFixture) seedTag(t *testing.T, value string) string {
	t.Helper()
	tag := tagdomain.Tag{ID: f.node.Generate(), Value: value}
	require.NoError(t, f.db.Create(&tag).Error)
	return tag.ID.String()
}

func (f *productFixture) seedGroup(t *testing.T, name string, attributes ...string) (string, []string) {
	t.Helper()
	group := attrdomain.AttributeGroup{ID: f.node.Generate(), Name: name}
	require.NoError(t, f.db.Create(&group).Error)

	attrIDs := make([]string, 0, len(attributes))
	for _, attrName := range attributes {
		attr := attrdomain.Attribute{ID: f.node.Generate(), Name: attrName}
		require.NoError(t, f.db.Create(&attr).Error)
		require.NoError(t, f.db.Create(&attrdomain.AttributeGroupAttribute{
			AttributeGroupID: group.ID,
			AttributeID:      attr.ID,
		}).Error)
		attrIDs = append(attrIDs, attr.ID.String())
	}
	return group.ID.String(), attrIDs
}

func shirtCreateRequest() domain.CreateRequest {
	return domain.CreateRequest{
		Title: "Shirt",
		Options: []domain.OptionInput{
			{Title: "Size", Values: []string{"S", "M"}},
			{Title: "Color", Values: []string{"Black"}},
		},
		Variants: []domain.VariantInput{
			{
				Title:   "S / Black",
				Options: map[string]string{"Size": "S", "Color": "Black"},
				Prices:  []pricedomain.Input{{Amount: 2500, CurrencyCode: "usd"}},
			},
			{
				Title:   "M / Black",
				Options: map[string]string{"Size": "M", "Color": "Black"},
				Prices:  []pricedomain.Input{{Amount: 2500, CurrencyCode: "usd"}},
			},
		},
	}
}

func TestProductCreateBuildsVariantGraph(t *testing.T) {
	f := setupProductService(t, 0)

	resp, err := f.svc.Create(f.ctx, shirtCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "shirt", resp.Handle)
	assert.Equal(t, domain.StatusDraft, resp.Status)
	assert.True(t, resp.Discountable)

	require.Len(t, resp.Options, 2)
	assert.Equal(t, "Size", resp.Options[0].Title)
	assert.ElementsMatch(t, []string{"S", "M"}, resp.Options[0].Values)
	assert.Equal(t, "Color", resp.Options[1].Title)

	require.Len(t, resp.Variants, 2)
	byTitle := map[string]domain.VariantResponse{}
	for _, v := range resp.Variants {
		byTitle[v.Title] = v
	}
	small := byTitle["S / Black"]
	assert.Equal(t, "S", small.Options["Size"])
	assert.Equal(t, "Black", small.Options["Color"])
	require.Len(t, small.Prices, 1)
	assert.Equal(t, int64(2500), small.Prices[0].Amount)
	assert.True(t, small.ManageInventory)

	// Ranks follow input order.
	assert.Equal(t, 0, byTitle["S / Black"].VariantRank)
	assert.Equal(t, 1, byTitle["M / Black"].VariantRank)
}

func TestProductOptionsDedupeCaseInsensitive(t *testing.T) {
	f := setupProductService(t, 0)

	_, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title:    "Shirt",
		Options:  []domain.OptionInput{{Title: "Size", Values: []string{"S"}}},
		Variants: []domain.VariantInput{{Title: "S", Options: map[string]string{"Size": "S"}}},
	})
	require.NoError(t, err)

	resp, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title:    "Mug",
		Options:  []domain.OptionInput{{Title: "size", Values: []string{"Large"}}},
		Variants: []domain.VariantInput{{Title: "Large", Options: map[string]string{"SIZE": "Large"}}},
	})
	require.NoError(t, err)

	var options int64
	require.NoError(t, f.db.Model(&domain.Option{}).Count(&options).Error)
	assert.Equal(t, int64(1), options, "options sharing a title must share one row")

	// The global row keeps its original casing; values stay per product.
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "Size", resp.Options[0].Title)
	assert.Equal(t, []string{"Large"}, resp.Options[0].Values)
}

func TestProductCreateMergesRepeatedOptionDeclarations(t *testing.T) {
	f := setupProductService(t, 0)

	// Both Size blocks feed the same declared option; variants may pick
	// values from either one.
	resp, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title: "Shirt",
		Options: []domain.OptionInput{
			{Title: "Size", Values: []string{"S"}},
			{Title: "size", Values: []string{"S", "M"}},
		},
		Variants: []domain.VariantInput{
			{Title: "S", Options: map[string]string{"Size": "S"}},
			{Title: "M", Options: map[string]string{"Size": "M"}},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Options, 1)
	assert.ElementsMatch(t, []string{"S", "M"}, resp.Options[0].Values)

	var values int64
	require.NoError(t, f.db.Model(&domain.OptionValue{}).Count(&values).Error)
	assert.Equal(t, int64(2), values, "repeated value must not insert twice")
}

func TestProductCreateUnknownOptionValue(t *testing.T) {
	f := setupProductService(t, 0)

	_, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title:    "Shirt",
		Options:  []domain.OptionInput{{Title: "Size", Values: []string{"S"}}},
		Variants: []domain.VariantInput{{Title: "XL", Options: map[string]string{"Size": "XL"}}},
	})
	assert.ErrorIs(t, err, domain.ErrOptionValueNotFound)

	_, err = f.svc.Create(f.ctx, domain.CreateRequest{
		Title:    "Shirt",
		Options:  []domain.OptionInput{{Title: "Size", Values: []string{"S"}}},
		Variants: []domain.VariantInput{{Title: "S", Options: map[string]string{"Material": "Cotton"}}},
	})
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)
}

func TestCreateBatchAssignsDistinctHandles(t *testing.T) {
	f := setupProductService(t, 0)

	resps, err := f.svc.CreateBatch(f.ctx, []domain.CreateRequest{
		{Title: "Shirt"},
		{Title: "Shirt"},
		{Title: "Shirt"},
	})
	require.NoError(t, err)
	require.Len(t, resps, 3)

	seen := map[string]bool{}
	for _, resp := range resps {
		assert.False(t, seen[resp.Handle], "handle %q assigned twice", resp.Handle)
		seen[resp.Handle] = true
	}
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	f := setupProductService(t, 0)

	missingTag := f.node.Generate().String()
	_, err := f.svc.CreateBatch(f.ctx, []domain.CreateRequest{
		{Title: "Good Shirt"},
		{Title: "Bad Shirt", TagIDs: []string{missingTag}},
	})
	require.ErrorIs(t, err, domain.ErrTagNotFound)

	var products int64
	require.NoError(t, f.db.Model(&domain.Product{}).Count(&products).Error)
	assert.Zero(t, products, "failed batch must not persist any product")
}

func TestCreateBatchTooLarge(t *testing.T) {
	f := setupProductService(t, 2)

	_, err := f.svc.CreateBatch(f.ctx, []domain.CreateRequest{
		{Title: "One"}, {Title: "Two"}, {Title: "Three"},
	})
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
}

func TestProductUpdateRelationsFullReplace(t *testing.T) {
	f := setupProductService(t, 0)

	tagA := f.seedTag(t, "summer")
	tagB := f.seedTag(t, "sale")
	tagC := f.seedTag(t, "new")

	created, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title:  "Shirt",
		TagIDs: []string{tagA, tagB},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tagA, tagB}, created.TagIDs)

	// Non-nil slice replaces the full link set.
	updated, err := f.svc.Update(f.ctx, domain.UpdateRequest{
		ID:     created.ID,
		TagIDs: []string{tagB, tagC},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tagB, tagC}, updated.TagIDs)

	// Nil slice leaves links untouched.
	title := "Renamed Shirt"
	updated, err = f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, Title: &title})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tagB, tagC}, updated.TagIDs)

	// Empty non-nil slice clears them.
	updated, err = f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, TagIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.TagIDs)
}

func TestProductUpdateUnknownRelation(t *testing.T) {
	f := setupProductService(t, 0)

	created, err := f.svc.Create(f.ctx, domain.CreateRequest{Title: "Shirt"})
	require.NoError(t, err)

	missing := f.node.Generate().String()
	_, err = f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, CollectionIDs: []string{missing}})
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

	_, err = f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, SalesChannelIDs: []string{missing}})
	assert.ErrorIs(t, err, domain.ErrSalesChannelNotFound)

	_, err = f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, CategoryID: &missing})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestProductAttributeBinding(t *testing.T) {
	f := setupProductService(t, 0)

	groupID, attrIDs := f.seedGroup(t, "Fabric", "Material")

	// A value for a group missing from the explicit list still links the group.
	resp, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title: "Shirt",
		AttributeValues: []domain.AttributeValueInput{
			{GroupID: groupID, AttributeID: attrIDs[0], Value: "Cotton"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.AttributeGroups, 1)
	assert.Equal(t, groupID, resp.AttributeGroups[0].GroupID)
	assert.Equal(t, "Fabric", resp.AttributeGroups[0].Name)
	require.Len(t, resp.AttributeValues, 1)
	assert.Equal(t, "Cotton", resp.AttributeValues[0].Value)
}

func TestProductAttributeBindingRejectsUnknownPair(t *testing.T) {
	f := setupProductService(t, 0)

	groupID, _ := f.seedGroup(t, "Fabric", "Material")
	_, otherAttrs := f.seedGroup(t, "Care", "Wash")

	_, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Title: "Shirt",
		AttributeValues: []domain.AttributeValueInput{
			{GroupID: groupID, AttributeID: otherAttrs[0], Value: "Cold"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrAttributePairUnknown)
}

func TestProductAttributeValuesRequireLinkedGroup(t *testing.T) {
	f := setupProductService(t, 0)

	groupID, attrIDs := f.seedGroup(t, "Fabric", "Material")

	created, err := f.svc.Create(f.ctx, domain.CreateRequest{Title: "Shirt"})
	require.NoError(t, err)

	// Values-only update validates against the existing (empty) link set.
	_, err = f.svc.Update(f.ctx, domain.UpdateRequest{
		ID: created.ID,
		AttributeValues: []domain.AttributeValueInput{
			{GroupID: groupID, AttributeID: attrIDs[0], Value: "Linen"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrAttributeGroupNotLinked)
}

func TestProductUpdateVariantsMatchesByTitle(t *testing.T) {
	f := setupProductService(t, 0)

	created, err := f.svc.Create(f.ctx, shirtCreateRequest())
	require.NoError(t, err)

	sku := "SHIRT-S-BLK"
	updated, err := f.svc.Update(f.ctx, domain.UpdateRequest{
		ID: created.ID,
		Variants: []domain.VariantInput{
			{
				// Matching is case-insensitive on the title.
				Title:  "s / black",
				SKU:    &sku,
				Prices: []pricedomain.Input{{Amount: 2900, CurrencyCode: "usd"}},
			},
			{Title: "XXL / Green"}, // no such variant, skipped
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 2, "unmatched input must not add variants")

	byTitle := map[string]domain.VariantResponse{}
	for _, v := range updated.Variants {
		byTitle[v.Title] = v
	}
	small := byTitle["S / Black"]
	require.NotNil(t, small.SKU)
	assert.Equal(t, sku, *small.SKU)
	require.Len(t, small.Prices, 1)
	assert.Equal(t, int64(2900), small.Prices[0].Amount)

	// The sibling variant's prices survive untouched.
	medium := byTitle["M / Black"]
	require.Len(t, medium.Prices, 1)
	assert.Equal(t, int64(2500), medium.Prices[0].Amount)
}

func TestProductDeleteCascades(t *testing.T) {
	f := setupProductService(t, 0)

	tagID := f.seedTag(t, "summer")
	req := shirtCreateRequest()
	req.TagIDs = []string{tagID}

	created, err := f.svc.Create(f.ctx, req)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(f.ctx, []string{created.ID}))

	_, err = f.svc.Get(f.ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	counts := map[string]any{
		"variants":        &domain.Variant{},
		"variant options": &domain.VariantOption{},
		"option values":   &domain.OptionValue{},
		"tag links":       &domain.ProductTag{},
		"price rows":      &pricedomain.Price{},
	}
	for name, model := range counts {
		var n int64
		require.NoError(t, f.db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%s must be removed with the product", name)
	}

	// Global option rows outlive the product that introduced them.
	var options int64
	require.NoError(t, f.db.Model(&domain.Option{}).Count(&options).Error)
	assert.Equal(t, int64(2), options)
}
