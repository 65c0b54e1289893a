package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/price/domain"
	"github.com/smallbiznis/storefront/internal/price/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPriceWriter(t *testing.T) (domain.Writer, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.PriceSet{}, &domain.Price{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	writer := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return writer, db, node
}

func TestCreatePricesTagsSetWithVariant(t *testing.T) {
	writer, db, node := setupPriceWriter(t)
	ctx := context.Background()
	variantID := node.Generate()

	err := writer.CreatePrices(ctx, db, variantID, []domain.Input{
		{Amount: 2500, CurrencyCode: "USD"},
		{Amount: 2100, CurrencyCode: "eur"},
	})
	require.NoError(t, err)

	prices, err := writer.ListForVariants(ctx, db, []snowflake.ID{variantID})
	require.NoError(t, err)
	require.Len(t, prices[variantID], 2)

	currencies := map[string]int64{}
	for _, p := range prices[variantID] {
		currencies[p.CurrencyCode] = p.Amount
	}
	assert.Equal(t, int64(2500), currencies["usd"])
	assert.Equal(t, int64(2100), currencies["eur"])
}

func TestCreatePricesRejectsBadInput(t *testing.T) {
	writer, db, node := setupPriceWriter(t)
	ctx := context.Background()

	err := writer.CreatePrices(ctx, db, node.Generate(), []domain.Input{{Amount: -1, CurrencyCode: "usd"}})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = writer.CreatePrices(ctx, db, node.Generate(), []domain.Input{{Amount: 100, CurrencyCode: "  "}})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestSyncPricesReplacesFullList(t *testing.T) {
	writer, db, node := setupPriceWriter(t)
	ctx := context.Background()
	variantID := node.Generate()

	require.NoError(t, writer.CreatePrices(ctx, db, variantID, []domain.Input{
		{Amount: 2500, CurrencyCode: "usd"},
		{Amount: 2100, CurrencyCode: "eur"},
	}))

	require.NoError(t, writer.SyncPrices(ctx, db, variantID, []domain.Input{
		{Amount: 2700, CurrencyCode: "usd"},
	}))

	prices, err := writer.ListForVariants(ctx, db, []snowflake.ID{variantID})
	require.NoError(t, err)
	require.Len(t, prices[variantID], 1)
	assert.Equal(t, int64(2700), prices[variantID][0].Amount)
	assert.Equal(t, "usd", prices[variantID][0].CurrencyCode)

	// The set survives the replace; only its rows turn over.
	var sets int64
	require.NoError(t, db.Model(&domain.PriceSet{}).Count(&sets).Error)
	assert.Equal(t, int64(1), sets)
}

func TestSyncPricesEmptyLeavesZeroRows(t *testing.T) {
	writer, db, node := setupPriceWriter(t)
	ctx := context.Background()
	variantID := node.Generate()

	require.NoError(t, writer.CreatePrices(ctx, db, variantID, []domain.Input{
		{Amount: 2500, CurrencyCode: "usd"},
	}))
	require.NoError(t, writer.SyncPrices(ctx, db, variantID, nil))

	prices, err := writer.ListForVariants(ctx, db, []snowflake.ID{variantID})
	require.NoError(t, err)
	assert.Empty(t, prices[variantID])
}

func TestSyncPricesCreatesMissingSet(t *testing.T) {
	writer, db, node := setupPriceWriter(t)
	ctx := context.Background()
	variantID := node.Generate()

	require.NoError(t, writer.SyncPrices(ctx, db, variantID, []domain.Input{
		{Amount: 900, CurrencyCode: "usd"},
	}))

	prices, err := writer.ListForVariants(ctx, db, []snowflake.ID{variantID})
	require.NoError(t, err)
	require.Len(t, prices[variantID], 1)
}

func TestDeleteForVariantsRemovesSetsAndRows(t *testing.T) {
	writer, db, node := setupPriceWriter(t)
	ctx := context.Background()
	keep := node.Generate()
	drop := node.Generate()

	require.NoError(t, writer.CreatePrices(ctx, db, keep, []domain.Input{{Amount: 100, CurrencyCode: "usd"}}))
	require.NoError(t, writer.CreatePrices(ctx, db, drop, []domain.Input{{Amount: 200, CurrencyCode: "usd"}}))

	require.NoError(t, writer.DeleteForVariants(ctx, db, []snowflake.ID{drop}))

	prices, err := writer.ListForVariants(ctx, db, []snowflake.ID{keep, drop})
	require.NoError(t, err)
	assert.Len(t, prices[keep], 1)
	assert.Empty(t, prices[drop])
}
