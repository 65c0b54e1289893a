package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/order/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupOrderService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Order{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db, node
}

func seedOrder(t *testing.T, db *gorm.DB, node *snowflake.Node, displayID int64, status string) snowflake.ID {
	t.Helper()
	order := domain.Order{
		ID:           node.Generate(),
		DisplayID:    displayID,
		Email:        "jane@example.com",
		Status:       status,
		CurrencyCode: "usd",
		Total:        4200,
	}
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func TestOrderUpdateStatus(t *testing.T) {
	svc, db, node := setupOrderService(t)
	ctx := context.Background()

	orderID := seedOrder(t, db, node, 1001, domain.StatusPending)

	resp, err := svc.UpdateStatus(ctx, orderID.String(), domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Status)

	reloaded, err := svc.Get(ctx, orderID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, reloaded.Status)
}

func TestOrderUpdateStatusRejectsUnknown(t *testing.T) {
	svc, db, node := setupOrderService(t)
	ctx := context.Background()

	orderID := seedOrder(t, db, node, 1002, domain.StatusPending)

	_, err := svc.UpdateStatus(ctx, orderID.String(), "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, node.Generate().String(), domain.StatusCanceled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderListFiltersByStatus(t *testing.T) {
	svc, db, node := setupOrderService(t)
	ctx := context.Background()

	seedOrder(t, db, node, 1003, domain.StatusPending)
	seedOrder(t, db, node, 1004, domain.StatusCompleted)

	pending, err := svc.List(ctx, domain.ListRequest{Status: domain.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1003), pending[0].DisplayID)
}
