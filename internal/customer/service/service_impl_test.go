package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCustomerService(t *testing.T) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCustomerCreateNormalizesEmail(t *testing.T) {
	svc := setupCustomerService(t)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{Email: " Jane@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.Email)
}

func TestCustomerCreateRejectsBadEmail(t *testing.T) {
	svc := setupCustomerService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCustomerCreateDuplicateEmail(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestCustomerUpdateAndDelete(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Email: "jane@example.com"})
	require.NoError(t, err)

	name := "Jane"
	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: created.ID, FirstName: &name})
	require.NoError(t, err)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Jane", *updated.FirstName)

	require.NoError(t, svc.Delete(ctx, []string{created.ID}))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
